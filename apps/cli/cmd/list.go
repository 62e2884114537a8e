package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/xunit/packages/core/registry"
	"github.com/abdul-hamid-achik/xunit/packages/core/runner"
	"github.com/abdul-hamid-achik/xunit/packages/output"
)

var listCmd = &cobra.Command{
	Use:   "list [suite...]",
	Short: "List suites and their invocation order",
	Long: `List suites with their setup, ordered tests and teardown. Nothing is
constructed or invoked.

Without arguments the configured suites are listed, or every registered
suite when none are configured.

Examples:
  xunit list
  xunit list calculatortest.CalculatorTest`,
	RunE: listCommand,
}

// selectSuites returns args, the configured suites, or every registered
// suite, whichever is non-empty first.
func selectSuites(args []string) []string {
	if len(args) > 0 {
		return args
	}
	if len(cfg.Suites) > 0 {
		return cfg.Suites
	}
	var names []string
	for _, e := range registry.Default.Entries() {
		names = append(names, e.ShortName)
	}
	return names
}

func listCommand(cmd *cobra.Command, args []string) error {
	r := runner.NewRunner(&runner.Config{Logger: logger})

	var rows []output.PlanRow
	var first error
	for _, name := range selectSuites(args) {
		plan, err := r.Plan(name)
		if err != nil && first == nil {
			first = err
		}
		rows = append(rows, output.PlanRow{Name: name, Plan: plan, Err: err})
	}

	if len(rows) > 0 {
		output.RenderPlans(cmd.OutOrStdout(), rows)
	}
	return first
}
