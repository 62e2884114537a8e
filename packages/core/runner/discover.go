package runner

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/abdul-hamid-achik/xunit/packages/core/annotation"
)

var (
	annotatedType = reflect.TypeFor[annotation.Annotated]()
	errorType     = reflect.TypeFor[error]()
)

// MethodDescriptor is one marked method of a suite type. Descriptors are
// built on every discovery and never cached.
type MethodDescriptor struct {
	Name     string
	Index    int
	Kinds    []annotation.Kind
	Priority annotation.Priority

	fn       reflect.Value
	byValue  bool
	problem  string
	metadata string
}

// Has reports whether the method carries the given marker.
func (m *MethodDescriptor) Has(kind annotation.Kind) bool {
	for _, k := range m.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func (m *MethodDescriptor) receiver(instance reflect.Value) reflect.Value {
	if m.byValue {
		return instance.Elem()
	}
	return instance
}

// marks returns the marker table of t, or nil if t is not Annotated.
func marks(t reflect.Type) (table []annotation.Mark, err error) {
	if t.Kind() == reflect.Interface {
		return nil, nil
	}
	zero := reflect.New(t)
	if !zero.Type().Implements(annotatedType) || promoted(t, "Annotations") {
		return nil, nil
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = &ConfigurationError{
				Type:   typeName(t),
				Rule:   RuleMetadata,
				Reason: fmt.Sprintf("Annotations panicked: %v", rec),
			}
		}
	}()
	return zero.Interface().(annotation.Annotated).Annotations(), nil
}

// discover groups the marker table of t by method, in order of first
// appearance. Binding problems are recorded on the descriptor and reported
// by validate.
func discover(t reflect.Type) ([]*MethodDescriptor, error) {
	table, err := marks(t)
	if err != nil {
		return nil, err
	}

	var descriptors []*MethodDescriptor
	byName := make(map[string]*MethodDescriptor)

	for i, mark := range table {
		name := mark.Method
		if mark.Func != nil {
			name, _ = methodName(t, mark.Func)
		}
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}

		d, ok := byName[name]
		if !ok {
			d = &MethodDescriptor{Name: name, Index: len(descriptors)}
			bind(t, d, mark)
			byName[name] = d
			descriptors = append(descriptors, d)
		}
		d.Kinds = append(d.Kinds, mark.Kind)

		switch {
		case mark.Kind < annotation.KindBeforeSuite || mark.Kind > annotation.KindTest:
			d.metadata = fmt.Sprintf("unknown marker kind %d", int(mark.Kind))
		case mark.Kind == annotation.KindTest:
			p := mark.EffectivePriority()
			if !p.Valid() {
				d.metadata = fmt.Sprintf("invalid priority %s", p)
			}
			d.Priority = p
		}
	}
	return descriptors, nil
}

// bind resolves the function a mark refers to and checks the call contract:
// one receiver of type T or *T, no other parameters, and either no result or
// a single error.
func bind(t reflect.Type, d *MethodDescriptor, mark annotation.Mark) {
	ptr := reflect.PointerTo(t)

	var fn reflect.Value
	if mark.Func != nil {
		fn = reflect.ValueOf(mark.Func)
		if fn.Kind() != reflect.Func || fn.IsNil() {
			d.problem = fmt.Sprintf("%T is not a method expression", mark.Func)
			return
		}
	} else {
		if mark.Method == "" {
			d.problem = "mark names no method"
			return
		}
		m, ok := ptr.MethodByName(mark.Method)
		if !ok {
			d.problem = fmt.Sprintf("no exported method %s on %s", mark.Method, ptr)
			return
		}
		if promoted(t, mark.Method) {
			d.problem = fmt.Sprintf("%s is promoted from an embedded field of %s", mark.Method, t)
			return
		}
		fn = m.Func
	}

	ft := fn.Type()
	switch {
	case ft.NumIn() == 0:
		d.problem = "method values are not supported, use a method expression"
		return
	case ft.In(0) != t && ft.In(0) != ptr:
		d.problem = fmt.Sprintf("receiver is %s, want %s or %s", ft.In(0), t, ptr)
		return
	case ft.NumIn() > 1 || ft.IsVariadic():
		d.problem = fmt.Sprintf("takes %d parameters, want none", ft.NumIn()-1)
		return
	case ft.NumOut() > 1 || (ft.NumOut() == 1 && ft.Out(0) != errorType):
		d.problem = fmt.Sprintf("returns %s, want nothing or error", results(ft))
		return
	}
	if mark.Func != nil {
		if _, ok := methodName(t, mark.Func); !ok {
			d.problem = fmt.Sprintf("%s is not a method of %s", d.Name, t)
			return
		}
	}

	d.fn = fn
	d.byValue = ft.In(0) == t
}

func results(ft reflect.Type) string {
	s := "("
	for i := 0; i < ft.NumOut(); i++ {
		if i > 0 {
			s += ", "
		}
		s += ft.Out(i).String()
	}
	return s + ")"
}

// methodName returns the method a method expression refers to. ok is false
// when fn is not declared with a T or *T receiver; name is then the
// package-relative function name, so closures from different functions stay
// distinct.
func methodName(t reflect.Type, fn any) (name string, ok bool) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return "", false
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return "", false
	}

	full := strings.ReplaceAll(rf.Name(), "[...]", "")
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}
	parts := strings.Split(strings.TrimSuffix(full, "-fm"), ".")
	if len(parts) < 2 {
		return full, false
	}
	name = strings.Join(parts[1:], ".")
	if len(parts) != 3 {
		return name, false
	}

	recv := strings.TrimSuffix(strings.TrimPrefix(parts[1], "(*"), ")")
	base, _, _ := strings.Cut(t.Name(), "[")
	if recv != base {
		return name, false
	}
	return parts[2], true
}

// promoted reports whether the exported method name of t or *t comes from an
// embedded field rather than being declared on t itself.
func promoted(t reflect.Type, name string) bool {
	if t.Kind() != reflect.Struct || !embeds(t, name) {
		return false
	}

	m, ok := t.MethodByName(name)
	if !ok {
		if m, ok = reflect.PointerTo(t).MethodByName(name); !ok {
			return false
		}
	}
	// A method declared on t shadows the embedded one. Promoted methods are
	// compiler-generated wrappers.
	pc := m.Func.Pointer()
	rf := runtime.FuncForPC(pc)
	if rf == nil {
		return true
	}
	file, _ := rf.FileLine(pc)
	return file == "<autogenerated>"
}

func embeds(t reflect.Type, name string) bool {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := f.Type
		if _, ok := ft.MethodByName(name); ok {
			return true
		}
		if ft.Kind() != reflect.Pointer && ft.Kind() != reflect.Interface {
			if _, ok := reflect.PointerTo(ft).MethodByName(name); ok {
				return true
			}
		}
	}
	return false
}
