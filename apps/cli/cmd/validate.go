package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/xunit/packages/core/runner"
)

var validateCmd = &cobra.Command{
	Use:   "validate [suite...]",
	Short: "Validate suite markers without running anything",
	Long: `Check that every suite resolves and that its markers are valid: at most
one marker per method, at most one setup and one teardown, and marked
methods that take no arguments and return nothing or an error.

Examples:
  xunit validate
  xunit validate calculatortest.CalculatorTest`,
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	suites := selectSuites(args)
	if len(suites) == 0 {
		return fmt.Errorf("no suites registered")
	}

	r := runner.NewRunner(&runner.Config{Logger: logger})

	var first error
	for _, name := range suites {
		plan, err := r.Plan(name)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error in %s: %v\n", name, err)
			if first == nil {
				first = err
			}
			continue
		}
		if !cfg.Quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s (%d methods)\n", name, plan.Len())
		}
	}

	if first != nil {
		return &exitError{code: exitCode(first), err: fmt.Errorf("validation failed")}
	}
	return nil
}
