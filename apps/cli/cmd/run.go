package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/xunit/packages/core/runner"
	"github.com/abdul-hamid-achik/xunit/packages/output"
)

var runCmd = &cobra.Command{
	Use:   "run [suite...]",
	Short: "Run suites",
	Long: `Run one or more registered suites. Each suite gets a fresh instance:
setup, then the tests from highest to lowest priority, then teardown.
The first failing method ends that suite; remaining suites still run.

Without arguments the suites listed under "suites" in the config file
(or XUNIT_SUITES) are run.

Examples:
  xunit run calculatortest.CalculatorTest
  xunit run -v github.com/acme/app/suites.LoginTest
  xunit run --watch`,
	RunE: runCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	watchFlag   bool
	timingsFlag bool
)

func init() {
	runCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Re-run when the config file or env file changes")
	runCmd.Flags().BoolVar(&timingsFlag, "timings", false, "Show method durations")
}

// suiteNames returns args, or the configured suites when args is empty.
func suiteNames(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if len(cfg.Suites) > 0 {
		return cfg.Suites, nil
	}
	return nil, &exitError{
		code: ExitUsageError,
		err:  errors.New("no suites given: pass suite names or set suites in the config file"),
	}
}

func runCommand(cmd *cobra.Command, args []string) error {
	suites, err := suiteNames(args)
	if err != nil {
		return err
	}

	err = runSuites(cmd, suites)
	if !watchFlag {
		return err
	}
	return watchAndRun(cmd, args, err)
}

// runSuites runs every suite and reports the first failure. Each failure is
// printed as it happens.
func runSuites(cmd *cobra.Command, suites []string) error {
	formatter := output.NewConsoleFormatter(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithVerbose(cfg.Verbose),
		output.WithQuiet(cfg.Quiet),
		output.WithNoColor(cfg.NoColor),
		output.WithTimings(timingsFlag),
	)
	if cfg.Verbose {
		formatter.FormatHeader(version)
	}

	r := runner.NewRunner(&runner.Config{
		Logger:   logger,
		Observer: formatter,
	})

	var first error
	failed := 0
	for _, name := range suites {
		if _, err := r.Run(name); err != nil {
			formatter.FormatError(err)
			if first == nil {
				first = err
			}
			failed++
		}
	}

	if first == nil {
		return nil
	}
	return &exitError{
		code: exitCode(first),
		err:  fmt.Errorf("%d of %d suites failed", failed, len(suites)),
	}
}

// watchedFiles returns the files whose changes trigger a re-run.
func watchedFiles() []string {
	var files []string
	for _, f := range []string{cfg.File, envFileFlag} {
		if f == "" {
			continue
		}
		if abs, err := filepath.Abs(f); err == nil {
			f = abs
		}
		files = append(files, filepath.Clean(f))
	}
	return files
}

// watchAndRun re-runs the suites whenever a watched file changes, until the
// context is cancelled. It returns the error of the most recent run.
func watchAndRun(cmd *cobra.Command, args []string, last error) error {
	files := watchedFiles()
	if len(files) == 0 {
		return &exitError{code: ExitUsageError, err: errors.New("--watch needs a config file or --env-file to watch")}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch directories so files replaced by editors are still seen
	watchedDirs := make(map[string]bool)
	for _, file := range files {
		dir := filepath.Dir(file)
		if !watchedDirs[dir] {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			watchedDirs[dir] = true
		}
	}

	// subcommands keep the context of their first execution
	ctx, stop := signal.NotifyContext(cmd.Root().Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n\n")

	var debounce <-chan time.Time
	var changed string
	for {
		select {
		case <-ctx.Done():
			return last

		case event, ok := <-watcher.Events:
			if !ok {
				return last
			}
			if !isWatched(files, event) {
				continue
			}
			changed = event.Name
			debounce = time.After(WatchDebounceDelay)

		case <-debounce:
			debounce = nil
			fmt.Fprintf(cmd.OutOrStdout(), "\n\nFile changed: %s\nRe-running suites...\n\n", changed)
			last = rerun(cmd, args)
			fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")

		case err, ok := <-watcher.Errors:
			if !ok {
				return last
			}
			logger.Error("watcher error", "error", err)
		}
	}
}

func isWatched(files []string, event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(event.Name)
	for _, f := range files {
		if f == name {
			return true
		}
	}
	return false
}

// rerun reloads the configuration and runs the suites again. Failures are
// reported but do not end watch mode.
func rerun(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd, args); err != nil {
		output.NewConsoleFormatter(output.WithWriter(cmd.ErrOrStderr())).FormatError(err)
		return err
	}
	suites, err := suiteNames(args)
	if err != nil {
		output.NewConsoleFormatter(output.WithWriter(cmd.ErrOrStderr())).FormatError(err)
		return err
	}
	err = runSuites(cmd, suites)
	if err != nil {
		logger.Debug("re-run failed", "error", err)
	}
	return err
}
