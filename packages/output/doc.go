// Package output renders suite runs and plans for humans.
//
// ConsoleFormatter is a runner.Observer that prints colored progress to a
// terminal. RenderPlans prints the invocation order of registered suites
// as a table.
package output
