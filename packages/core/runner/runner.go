package runner

import (
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/abdul-hamid-achik/xunit/packages/core/registry"
)

// Phase is the lifecycle step a method runs in.
type Phase string

const (
	PhaseSetup    Phase = "setup"
	PhaseTest     Phase = "test"
	PhaseTeardown Phase = "teardown"
)

// Observer receives lifecycle events of a run. Implementations must not
// retain the descriptors beyond the call.
type Observer interface {
	SuiteStarted(run *Run)
	MethodStarted(run *Run, phase Phase, m *MethodDescriptor)
	MethodFinished(run *Run, phase Phase, m *MethodDescriptor, elapsed time.Duration, err error)
	SuiteFinished(run *Run)
}

type Runner struct {
	config   *Config
	logger   *slog.Logger
	registry *registry.Registry
	observer Observer
}

type Config struct {
	// Registry resolves suite names and factories. Defaults to registry.Default.
	Registry *registry.Registry
	// Logger defaults to a discarding logger.
	Logger *slog.Logger
	// Observer is optional.
	Observer Observer
}

func NewRunner(cfg *Config) *Runner {
	if cfg == nil {
		cfg = &Config{}
	}

	r := &Runner{
		config:   cfg,
		logger:   cfg.Logger,
		registry: cfg.Registry,
		observer: cfg.Observer,
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	if r.registry == nil {
		r.registry = registry.Default
	}
	return r
}

// Run is the record of one execution of a suite.
type Run struct {
	ID       uuid.UUID
	Type     string
	Plan     *SuitePlan
	Invoked  []string
	Started  time.Time
	Duration time.Duration
	Err      error
}

// Passed reports whether every planned method ran without error.
func (r *Run) Passed() bool {
	return r.Err == nil
}

// Start runs target with a default Runner. See (*Runner).Run.
func Start(target any) error {
	_, err := NewRunner(nil).Run(target)
	return err
}

// Run discovers, validates and executes the suite named by target, which is
// a fully-qualified type name, a reflect.Type or a value of the suite type.
//
// Exactly one instance is constructed and shared by setup, every test and
// teardown. The first failing method ends the run. The returned Run is never
// nil; its Err equals the returned error.
func (r *Runner) Run(target any) (*Run, error) {
	run := &Run{ID: uuid.New(), Started: time.Now()}
	logger := r.logger.With("run", run.ID.String())

	t, factory, err := r.resolve(target)
	if err != nil {
		logger.Error("resolve failed", "target", fmt.Sprint(target), "error", err)
		return r.finish(run, err)
	}
	run.Type = typeName(t)
	logger = logger.With("suite", run.Type)

	plan, err := r.plan(t)
	if err != nil {
		logger.Error("validation failed", "error", err)
		return r.finish(run, err)
	}
	run.Plan = plan
	logger.Debug("plan built", "methods", plan.Names())

	r.notify(func(o Observer) { o.SuiteStarted(run) })
	defer r.notify(func(o Observer) { o.SuiteFinished(run) })

	instance, err := construct(t, factory)
	if err != nil {
		logger.Error("construction failed", "error", err)
		return r.finish(run, err)
	}
	logger.Debug("instance constructed")

	if err := r.execute(run, plan, instance, logger); err != nil {
		logger.Error("run failed", "error", err)
		return r.finish(run, err)
	}
	logger.Debug("run finished", "invoked", len(run.Invoked))
	return r.finish(run, nil)
}

// Plan resolves, discovers and validates target without constructing or
// invoking anything.
func (r *Runner) Plan(target any) (*SuitePlan, error) {
	t, _, err := r.resolve(target)
	if err != nil {
		return nil, err
	}
	return r.plan(t)
}

func (r *Runner) plan(t reflect.Type) (*SuitePlan, error) {
	descriptors, err := discover(t)
	if err != nil {
		return nil, err
	}
	if err := validate(t, descriptors); err != nil {
		return nil, err
	}
	return schedule(typeName(t), descriptors), nil
}

func (r *Runner) finish(run *Run, err error) (*Run, error) {
	run.Duration = time.Since(run.Started)
	run.Err = err
	return run, err
}

func (r *Runner) notify(fn func(Observer)) {
	if r.observer != nil {
		fn(r.observer)
	}
}

// resolve maps target to its suite type and registered factory, if any.
func (r *Runner) resolve(target any) (reflect.Type, registry.Factory, error) {
	var t reflect.Type
	switch v := target.(type) {
	case nil:
		return nil, nil, &ResolutionError{Name: "<nil>", Err: fmt.Errorf("no target given")}
	case string:
		entry, err := r.registry.Lookup(v)
		if err != nil {
			return nil, nil, &ResolutionError{Name: v, Err: err}
		}
		return entry.Type, entry.Factory, nil
	case reflect.Type:
		t = registry.Indirect(v)
	default:
		t = registry.Indirect(reflect.TypeOf(v))
	}

	if entry, ok := r.registry.Find(t); ok {
		return t, entry.Factory, nil
	}
	return t, nil, nil
}

// construct builds the single instance of a run as a *T.
func construct(t reflect.Type, factory registry.Factory) (instance reflect.Value, err error) {
	name := typeName(t)
	if factory == nil {
		if t.Kind() == reflect.Interface {
			return reflect.Value{}, &ConstructionError{Type: name, Err: fmt.Errorf("interface type has no zero-argument constructor")}
		}
		return reflect.New(t), nil
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = &ConstructionError{Type: name, Err: fmt.Errorf("constructor panicked: %v", rec)}
		}
	}()

	v, err := factory()
	if err != nil {
		return reflect.Value{}, &ConstructionError{Type: name, Err: err}
	}
	if v == nil {
		return reflect.Value{}, &ConstructionError{Type: name, Err: fmt.Errorf("constructor returned nil")}
	}

	rv := reflect.ValueOf(v)
	switch rv.Type() {
	case reflect.PointerTo(t):
		if rv.IsNil() {
			return reflect.Value{}, &ConstructionError{Type: name, Err: fmt.Errorf("constructor returned nil")}
		}
		return rv, nil
	case t:
		ptr := reflect.New(t)
		ptr.Elem().Set(rv)
		return ptr, nil
	default:
		return reflect.Value{}, &ConstructionError{Type: name, Err: fmt.Errorf("constructor returned %s, want *%s", rv.Type(), t)}
	}
}

func typeName(t reflect.Type) string {
	return registry.TypeName(t)
}
