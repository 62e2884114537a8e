package calculatortest

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/xunit/packages/core/registry"
	"github.com/abdul-hamid-achik/xunit/packages/core/runner"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Output
	Output = &buf
	t.Cleanup(func() { Output = prev })
	return &buf
}

func TestCalculatorTest_Order(t *testing.T) {
	buf := captureOutput(t)

	run, err := runner.NewRunner(nil).Run("calculatortest.CalculatorTest")
	require.NoError(t, err)
	assert.Equal(t, []string{"start", "divTest", "M1", "MulTest", "AddTest", "difTest", "m2", "end"}, run.Invoked)

	assert.Equal(t, `Test begin
divTest - priority = PRIORITY_10
15 / 7 = 2.1429
m1 - priority = PRIORITY_7
mulTest - priority = PRIORITY_6
5 * 5 = 25
addTest - priority = PRIORITY_5
5 + 5 = 10
difTest - priority = PRIORITY_5
20 - 5 = 15
m2 - priority = PRIORITY_3
Test end
`, buf.String())
	assert.NotContains(t, buf.String(), "m3")
	assert.NotContains(t, buf.String(), "m4")
}

func TestCalculatorTest_Registered(t *testing.T) {
	entry, err := registry.Default.Lookup("github.com/abdul-hamid-achik/xunit/packages/examples/calculatortest.CalculatorTest")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[CalculatorTest](), entry.Type)
	assert.NotNil(t, entry.Factory)
}

func TestCalculatorTest_StartTwice(t *testing.T) {
	buf := captureOutput(t)

	require.NoError(t, runner.Start(CalculatorTest{}))
	require.NoError(t, runner.Start(&CalculatorTest{}))
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("Test begin")))
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("Test end")))
}
