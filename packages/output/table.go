package output

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/abdul-hamid-achik/xunit/packages/core/runner"
)

// PlanRow is one suite in a plan listing. Err is set when the suite could
// not be planned.
type PlanRow struct {
	Name string
	Plan *runner.SuitePlan
	Err  error
}

// RenderPlans writes one table row per suite with its invocation order.
func RenderPlans(w io.Writer, rows []PlanRow) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Suite", "Setup", "Tests", "Teardown"})

	for _, r := range rows {
		if r.Err != nil {
			t.AppendRow(table.Row{r.Name, "-", "invalid: " + r.Err.Error(), "-"})
			continue
		}

		setup, teardown := "-", "-"
		if r.Plan.Setup != nil {
			setup = r.Plan.Setup.Name
		}
		if r.Plan.Teardown != nil {
			teardown = r.Plan.Teardown.Name
		}

		tests := make([]string, len(r.Plan.Tests))
		for i, m := range r.Plan.Tests {
			tests[i] = m.Name + " (" + m.Priority.String() + ")"
		}
		if len(tests) == 0 {
			tests = []string{"-"}
		}
		t.AppendRow(table.Row{r.Name, setup, strings.Join(tests, "\n"), teardown})
	}

	t.Render()
}
