// Package calculatortest is an example xunit suite for package calculator.
//
// Importing it registers CalculatorTest under
// "calculatortest.CalculatorTest".
package calculatortest

import (
	"fmt"
	"io"
	"os"

	"github.com/abdul-hamid-achik/xunit/packages/core/annotation"
	"github.com/abdul-hamid-achik/xunit/packages/core/registry"
	"github.com/abdul-hamid-achik/xunit/packages/examples/calculator"
)

func init() {
	registry.RegisterFactory(New)
}

// Output receives everything the suite prints.
var Output io.Writer = os.Stdout

type CalculatorTest struct {
	calculator *calculator.Calculator
	out        io.Writer
}

func New() (*CalculatorTest, error) {
	return &CalculatorTest{out: Output}, nil
}

func (t *CalculatorTest) Annotations() []annotation.Mark {
	return []annotation.Mark{
		annotation.BeforeSuite((*CalculatorTest).start),
		annotation.AfterSuite((*CalculatorTest).end),
		annotation.Test("AddTest"),
		annotation.Test((*CalculatorTest).difTest),
		annotation.Test("MulTest", annotation.WithPriority(annotation.Priority6)),
		annotation.Test((*CalculatorTest).divTest, annotation.WithPriority(annotation.Priority10)),
		annotation.Test("M1", annotation.WithPriority(annotation.Priority7)),
		annotation.Test((*CalculatorTest).m2, annotation.WithPriority(annotation.Priority3)),
	}
}

func (t *CalculatorTest) start() {
	t.calculator = calculator.New()
	fmt.Fprintln(t.out, "Test begin")
}

func (t *CalculatorTest) end() {
	fmt.Fprintln(t.out, "Test end")
}

func (t *CalculatorTest) AddTest() {
	fmt.Fprintln(t.out, "addTest - priority =", annotation.Priority5)
	fmt.Fprintln(t.out, "5 + 5 =", t.calculator.Add(5, 5))
}

func (t *CalculatorTest) difTest() {
	fmt.Fprintln(t.out, "difTest - priority =", annotation.Priority5)
	fmt.Fprintln(t.out, "20 - 5 =", t.calculator.Dif(20, 5))
}

func (t *CalculatorTest) MulTest() {
	fmt.Fprintln(t.out, "mulTest - priority =", annotation.Priority6)
	fmt.Fprintln(t.out, "5 * 5 =", t.calculator.Mul(5, 5))
}

func (t *CalculatorTest) divTest() error {
	fmt.Fprintln(t.out, "divTest - priority =", annotation.Priority10)
	q, err := t.calculator.Div(15, 7)
	if err != nil {
		return err
	}
	fmt.Fprintf(t.out, "15 / 7 = %.4f\n", q)
	return nil
}

func (t *CalculatorTest) M1() {
	fmt.Fprintln(t.out, "m1 - priority =", annotation.Priority7)
}

func (t *CalculatorTest) m2() {
	fmt.Fprintln(t.out, "m2 - priority =", annotation.Priority3)
}

// M3 and M4 carry no marker and are never invoked.
func (t *CalculatorTest) M3() {
	fmt.Fprintln(t.out, "m3 - after suite")
}

func (t *CalculatorTest) M4() {
	fmt.Fprintln(t.out, "m4 - after suite")
}
