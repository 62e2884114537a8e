package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after defaults, the config file, XUNIT_*
environment variables and flags have been merged, as YAML.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := cfg.YAML()
		if err != nil {
			return fmt.Errorf("rendering config: %w", err)
		}
		source := cfg.File
		if source == "" {
			source = "defaults"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# source: %s\n%s", source, out)
		return nil
	},
}
