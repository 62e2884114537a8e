package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/abdul-hamid-achik/xunit/packages/core/runner"
	"github.com/fatih/color"
)

// ConsoleFormatter prints suite progress to a terminal. It implements
// runner.Observer.
type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	quiet   bool
	noColor bool
	timings bool

	failed int
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

// WithVerbose prints a line for every invoked method.
func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

// WithQuiet suppresses everything except FormatError.
func WithQuiet(q bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.quiet = q
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// WithTimings appends durations to method and summary lines.
func WithTimings(t bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.timings = t
	}
}

func (f *ConsoleFormatter) SuiteStarted(run *runner.Run) {
	f.failed = 0
	if f.quiet || !f.verbose {
		return
	}
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(f.writer, "\n%s\n\n", bold("Running: "+run.Type))
}

func (f *ConsoleFormatter) MethodStarted(*runner.Run, runner.Phase, *runner.MethodDescriptor) {}

func (f *ConsoleFormatter) MethodFinished(run *runner.Run, phase runner.Phase, m *runner.MethodDescriptor, elapsed time.Duration, err error) {
	if err != nil {
		f.failed++
	}
	if f.quiet || (!f.verbose && err == nil) {
		return
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	label := string(phase)
	if phase == runner.PhaseTest {
		label += ", " + m.Priority.String()
	}

	symbol := green("✓")
	if err != nil {
		symbol = red("✗")
	}
	fmt.Fprintf(f.writer, "  %s %s (%s)", symbol, m.Name, label)
	if f.timings {
		fmt.Fprintf(f.writer, " %s", cyan(fmt.Sprintf("(%dms)", elapsed.Milliseconds())))
	}
	fmt.Fprintf(f.writer, "\n")
}

func (f *ConsoleFormatter) SuiteFinished(run *runner.Run) {
	if f.quiet {
		return
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	planned := 0
	if run.Plan != nil {
		planned = run.Plan.Len()
	}

	if !f.verbose {
		if run.Passed() {
			fmt.Fprintf(f.writer, "%s %s (%d methods)\n", green("✓"), run.Type, planned)
		} else {
			fmt.Fprintf(f.writer, "%s %s (%d of %d methods invoked)\n", red("✗"), run.Type, len(run.Invoked), planned)
		}
		return
	}

	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "Methods: ")
	passed := len(run.Invoked) - f.failed
	if passed > 0 {
		fmt.Fprintf(f.writer, "%s, ", green(fmt.Sprintf("%d passed", passed)))
	}
	if f.failed > 0 {
		fmt.Fprintf(f.writer, "%s, ", red(fmt.Sprintf("%d failed", f.failed)))
	}
	if skipped := planned - len(run.Invoked); skipped > 0 {
		fmt.Fprintf(f.writer, "%d not run, ", skipped)
	}
	fmt.Fprintf(f.writer, "%d planned\n", planned)
	if f.timings {
		fmt.Fprintf(f.writer, "Time:    %dms\n", run.Duration.Milliseconds())
	}
	fmt.Fprintf(f.writer, "\n")
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}

func (f *ConsoleFormatter) FormatHeader(version string) {
	if f.quiet {
		return
	}
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s\n", bold("xunit"), version)
}
