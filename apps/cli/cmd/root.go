package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/xunit/packages/core/config"
	"github.com/abdul-hamid-achik/xunit/packages/core/logging"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	configFlag  string
	envFileFlag string

	cfg    = config.DefaultConfig()
	logger = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "xunit",
	Short: "Lifecycle test suites for Go types.",
	Long: `xunit runs test suites declared on Go types. A suite marks one setup
method, one teardown method and any number of prioritized test methods;
xunit validates the markers, orders the tests by priority and runs
setup, tests and teardown on a single fresh instance.

Suites are compiled into the binary and registered by name.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI with args and returns the exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	return executeContext(context.Background(), args, stdout, stderr)
}

func executeContext(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		red := color.New(color.FgRed).SprintFunc()
		fmt.Fprintf(stderr, "%s %v\n", red("Error:"), err)
	}
	return exitCode(err)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (default: ./.xunit.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFileFlag, "env-file", "", "Path to .env file loaded before XUNIT_* variables are read")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print every invoked method and log at debug level (env: XUNIT_VERBOSE)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors (env: XUNIT_QUIET)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output (env: XUNIT_NO_COLOR)")
	rootCmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "Log format: text, json (env: XUNIT_LOG_FORMAT)")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error (env: XUNIT_LOG_LEVEL)")

	_ = rootCmd.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{logging.FormatText, logging.FormatJSON}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &exitError{code: ExitUsageError, err: err}
	})

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
}

// loadConfig builds cfg and logger from config file, environment and flags.
func loadConfig(cmd *cobra.Command, _ []string) error {
	switch cmd.Name() {
	case "help", "completion", "__complete", "version":
		return nil
	}

	loaded, err := config.Load(config.Options{
		File:    configFlag,
		EnvFile: envFileFlag,
		Flags:   cmd.Flags(),
	})
	if err != nil {
		return &exitError{code: ExitConfigError, err: err}
	}
	cfg = loaded

	level := cfg.LogLevel
	if cfg.Verbose {
		level = "debug"
	}
	l, err := logging.New(cmd.ErrOrStderr(), level, cfg.LogFormat)
	if err != nil {
		return &exitError{code: ExitConfigError, err: err}
	}
	logger = l.With("cmd", cmd.Name())
	color.NoColor = color.NoColor || cfg.NoColor

	if cfg.File != "" {
		logger.Debug("config loaded", "file", cfg.File)
	}
	return nil
}
