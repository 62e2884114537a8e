// Package runner discovers, validates and executes xunit suites.
//
// A suite is a Go type implementing annotation.Annotated. For every run the
// runner:
//   - builds a MethodDescriptor per marked method
//   - validates marker usage and fails with a *ConfigurationError before
//     anything is constructed
//   - orders the tests by priority, highest first, keeping declaration order
//     for equal priorities
//   - constructs one instance and invokes setup, the tests and teardown on it
//
// The first method that returns an error or panics ends the run with an
// *InvocationError. Suites may be addressed by value, by reflect.Type or by
// the name they were registered under in package registry.
package runner
