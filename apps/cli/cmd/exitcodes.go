package cmd

import (
	"errors"

	"github.com/abdul-hamid-achik/xunit/packages/core/config"
	"github.com/abdul-hamid-achik/xunit/packages/core/runner"
)

// Exit codes for xunit CLI
const (
	// ExitSuccess indicates every suite passed
	ExitSuccess = 0

	// ExitInvocationError indicates a setup, test or teardown method failed
	ExitInvocationError = 1

	// ExitResolutionError indicates a suite name that is not registered
	ExitResolutionError = 2

	// ExitConfigError indicates broken marker usage or an invalid config file
	ExitConfigError = 3

	// ExitConstructionError indicates a suite instance could not be built
	ExitConstructionError = 4

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

// exitError carries the exit code for an error that has a message of its own.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

// exitCode maps an error returned by a command to the process exit code.
func exitCode(err error) int {
	var ee *exitError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &ee):
		return ee.code
	case errors.Is(err, runner.ErrInvocation):
		return ExitInvocationError
	case errors.Is(err, runner.ErrResolution):
		return ExitResolutionError
	case errors.Is(err, runner.ErrConfiguration), errors.Is(err, config.ErrInvalid):
		return ExitConfigError
	case errors.Is(err, runner.ErrConstruction):
		return ExitConstructionError
	default:
		return ExitUsageError
	}
}
