package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/xunit/packages/core/config"
	"github.com/abdul-hamid-achik/xunit/packages/core/registry"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .xunit.yaml listing the registered suites",
	Long: `Create a .xunit.yaml in the current directory. Its suites list holds
every suite registered in this binary, so "xunit run" runs them all.

Examples:
  xunit init
  xunit init --force`,
	Args: cobra.NoArgs,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing config file")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, config.ConfigFilenames[0])
	if !forceInit {
		if _, err := os.Stat(configFile); err == nil {
			return fmt.Errorf("file already exists: %s (use --force to overwrite)", configFile)
		}
	}

	starter := config.DefaultConfig()
	for _, e := range registry.Default.Entries() {
		starter.Suites = append(starter.Suites, e.ShortName)
	}

	content, err := starter.YAML()
	if err != nil {
		return fmt.Errorf("rendering config: %w", err)
	}
	if err := os.WriteFile(configFile, content, 0644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)
	return nil
}
