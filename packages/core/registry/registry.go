package registry

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

var (
	// ErrNotFound is returned when no type is registered under a name.
	ErrNotFound = errors.New("type not registered")
	// ErrAmbiguous is returned when a short name matches several types.
	ErrAmbiguous = errors.New("ambiguous type name")
)

// Factory builds a new suite instance. It must return a pointer.
type Factory func() (any, error)

// Entry is one registered type.
type Entry struct {
	Name      string // fully-qualified name
	ShortName string // package-qualified name
	Type      reflect.Type
	Factory   Factory // nil means the zero value is used
}

// Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	short   map[string][]string
}

// Default is the process-wide registry used by Register and RegisterFactory.
var Default = New()

func New() *Registry {
	return &Registry{
		entries: make(map[string]*Entry),
		short:   make(map[string][]string),
	}
}

// TypeName returns the fully-qualified name of t, dereferencing pointers.
func TypeName(t reflect.Type) string {
	t = Indirect(t)
	if t.PkgPath() == "" || t.Name() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// Indirect strips pointer levels from t.
func Indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// Add registers t with an optional factory.
func (r *Registry) Add(t reflect.Type, factory Factory) error {
	if t == nil {
		return fmt.Errorf("cannot register nil type")
	}
	t = Indirect(t)
	name := TypeName(t)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("type %s already registered", name)
	}

	entry := &Entry{
		Name:      name,
		ShortName: t.String(),
		Type:      t,
		Factory:   factory,
	}
	r.entries[name] = entry
	if entry.ShortName != name {
		r.short[entry.ShortName] = append(r.short[entry.ShortName], name)
	}
	return nil
}

// MustAdd is Add that panics, for use from init functions.
func (r *Registry) MustAdd(t reflect.Type, factory Factory) {
	if err := r.Add(t, factory); err != nil {
		panic(err)
	}
}

// Lookup resolves a full or short type name.
func (r *Registry) Lookup(name string) (*Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry, ok := r.entries[name]; ok {
		return entry, nil
	}

	switch full := r.short[name]; len(full) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	case 1:
		return r.entries[full[0]], nil
	default:
		sorted := append([]string(nil), full...)
		sort.Strings(sorted)
		return nil, fmt.Errorf("%w: %s matches %v", ErrAmbiguous, name, sorted)
	}
}

// Find returns the entry registered for t, if any.
func (r *Registry) Find(t reflect.Type) (*Entry, bool) {
	if t == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[TypeName(t)]
	if !ok || entry.Type != Indirect(t) {
		return nil, false
	}
	return entry, true
}

// Entries returns every registered entry sorted by short name, then full name.
func (r *Registry) Entries() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].ShortName != entries[j].ShortName {
			return entries[i].ShortName < entries[j].ShortName
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// Register adds T to the default registry. Instances are zero values.
func Register[T any]() {
	Default.MustAdd(reflect.TypeFor[T](), nil)
}

// RegisterFactory adds T to the default registry with a constructor.
func RegisterFactory[T any](fn func() (*T, error)) {
	Default.MustAdd(reflect.TypeFor[T](), FactoryFor(fn))
}

// FactoryFor adapts a typed constructor to a Factory.
func FactoryFor[T any](fn func() (*T, error)) Factory {
	return func() (any, error) {
		v, err := fn()
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, fmt.Errorf("constructor returned nil %s", reflect.TypeFor[*T]())
		}
		return v, nil
	}
}
