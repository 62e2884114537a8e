package runner

import (
	"fmt"
	"log/slog"
	"reflect"
	"time"
)

// execute invokes setup, every test in plan order, then teardown. It stops
// at the first failure; a failed setup also skips teardown.
func (r *Runner) execute(run *Run, plan *SuitePlan, instance reflect.Value, logger *slog.Logger) error {
	if plan.Setup != nil {
		if err := r.invoke(run, PhaseSetup, plan.Setup, instance, logger); err != nil {
			return err
		}
	}

	for _, test := range plan.Tests {
		if err := r.invoke(run, PhaseTest, test, instance, logger); err != nil {
			return err
		}
	}

	if plan.Teardown != nil {
		if err := r.invoke(run, PhaseTeardown, plan.Teardown, instance, logger); err != nil {
			return err
		}
	}
	return nil
}

// invoke calls one method on the run's instance. A returned error or a
// panic becomes an *InvocationError.
func (r *Runner) invoke(run *Run, phase Phase, m *MethodDescriptor, instance reflect.Value, logger *slog.Logger) error {
	logger.Debug("invoking", "phase", phase, "method", m.Name, "priority", m.Priority)
	r.notify(func(o Observer) { o.MethodStarted(run, phase, m) })

	start := time.Now()
	err := call(m, instance)
	elapsed := time.Since(start)

	run.Invoked = append(run.Invoked, m.Name)
	if err != nil {
		err.Type = run.Type
		err.Phase = phase
		r.notify(func(o Observer) { o.MethodFinished(run, phase, m, elapsed, err) })
		return err
	}
	r.notify(func(o Observer) { o.MethodFinished(run, phase, m, elapsed, nil) })
	return nil
}

func call(m *MethodDescriptor, instance reflect.Value) (ierr *InvocationError) {
	defer func() {
		if rec := recover(); rec != nil {
			cause, ok := rec.(error)
			if !ok {
				cause = fmt.Errorf("%v", rec)
			}
			ierr = &InvocationError{Method: m.Name, Panicked: true, Err: cause}
		}
	}()

	out := m.fn.Call([]reflect.Value{m.receiver(instance)})
	if len(out) == 1 && !out[0].IsNil() {
		return &InvocationError{Method: m.Name, Err: out[0].Interface().(error)}
	}
	return nil
}
