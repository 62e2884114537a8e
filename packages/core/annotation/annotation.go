package annotation

import (
	"reflect"
	"runtime"
	"strings"
)

// Kind identifies one of the three lifecycle markers.
type Kind int

const (
	KindBeforeSuite Kind = iota + 1
	KindAfterSuite
	KindTest
)

func (k Kind) String() string {
	switch k {
	case KindBeforeSuite:
		return "@BeforeSuite"
	case KindAfterSuite:
		return "@AfterSuite"
	case KindTest:
		return "@Test"
	default:
		return "@Unknown"
	}
}

// Mark applies one marker to one method of a suite type.
//
// A method is referenced either by its exported name, or by a method
// expression such as (*Suite).setup. Method expressions are how unexported
// methods are handed to the harness.
type Mark struct {
	Kind     Kind
	Method   string
	Func     any
	Priority Priority
}

// Annotated is implemented by suite types. Annotations is called on a zero
// value before the suite instance is constructed.
type Annotated interface {
	Annotations() []Mark
}

// TestOption configures a Test mark.
type TestOption func(*Mark)

// WithPriority sets the priority of a Test mark.
func WithPriority(p Priority) TestOption {
	return func(m *Mark) {
		m.Priority = p
	}
}

// BeforeSuite marks the setup method.
func BeforeSuite(method any) Mark {
	return newMark(KindBeforeSuite, method)
}

// AfterSuite marks the teardown method.
func AfterSuite(method any) Mark {
	return newMark(KindAfterSuite, method)
}

// Test marks a test method. Without WithPriority it runs at DefaultPriority.
func Test(method any, opts ...TestOption) Mark {
	m := newMark(KindTest, method)
	m.Priority = DefaultPriority
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// EffectivePriority returns the mark's priority, treating the zero value as
// DefaultPriority so hand-built Mark literals behave like Test(...).
func (m Mark) EffectivePriority() Priority {
	if m.Priority == 0 {
		return DefaultPriority
	}
	return m.Priority
}

func newMark(kind Kind, method any) Mark {
	m := Mark{Kind: kind}
	switch v := method.(type) {
	case string:
		m.Method = v
	case nil:
	default:
		m.Func = v
		m.Method = FuncName(v)
	}
	return m
}

// FuncName returns the bare method name of a method expression, e.g. "setup"
// for (*Suite).setup. It returns "" for values that are not functions.
func FuncName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return ""
	}
	name := rf.Name()
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	// method values are compiled as "name-fm" closures
	return strings.TrimSuffix(name, "-fm")
}
