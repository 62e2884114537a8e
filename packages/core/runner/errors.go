package runner

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration matches every *ConfigurationError.
	ErrConfiguration = errors.New("configuration error")
	// ErrResolution matches every *ResolutionError.
	ErrResolution = errors.New("resolution error")
	// ErrConstruction matches every *ConstructionError.
	ErrConstruction = errors.New("construction error")
	// ErrInvocation matches every *InvocationError.
	ErrInvocation = errors.New("invocation error")
)

// Rule names a marker usage constraint.
type Rule string

const (
	// RuleExclusivity: a method carries at most one marker.
	RuleExclusivity Rule = "exclusivity"
	// RuleCardinality: at most one @BeforeSuite and one @AfterSuite per type.
	RuleCardinality Rule = "cardinality"
	// RuleSignature: a marked method exists, takes no arguments and returns
	// nothing or an error.
	RuleSignature Rule = "signature"
	// RuleMetadata: the marker table itself is unusable.
	RuleMetadata Rule = "metadata"
)

// ConfigurationError reports broken marker usage. It is always returned
// before anything is constructed or invoked.
type ConfigurationError struct {
	Type    string
	Rule    Rule
	Methods []string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	if len(e.Methods) == 0 {
		return fmt.Sprintf("%s: %s rule violated: %s", e.Type, e.Rule, e.Reason)
	}
	return fmt.Sprintf("%s: %s rule violated by %s: %s", e.Type, e.Rule, strings.Join(e.Methods, ", "), e.Reason)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// ResolutionError reports a target that does not name a known type.
type ResolutionError struct {
	Name string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve %q: %v", e.Name, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

func (e *ResolutionError) Is(target error) bool { return target == ErrResolution }

// ConstructionError reports a suite instance that could not be built.
type ConstructionError struct {
	Type string
	Err  error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("cannot construct %s: %v", e.Type, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

func (e *ConstructionError) Is(target error) bool { return target == ErrConstruction }

// InvocationError reports a setup, test or teardown method that returned an
// error or panicked. The run stops at the failing method.
type InvocationError struct {
	Type     string
	Method   string
	Phase    Phase
	Panicked bool
	Err      error
}

func (e *InvocationError) Error() string {
	verb := "failed"
	if e.Panicked {
		verb = "panicked"
	}
	return fmt.Sprintf("%s: %s method %s %s: %v", e.Type, e.Phase, e.Method, verb, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

func (e *InvocationError) Is(target error) bool { return target == ErrInvocation }
