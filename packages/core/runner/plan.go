package runner

import (
	"cmp"
	"slices"

	"github.com/abdul-hamid-achik/xunit/packages/core/annotation"
)

// SuitePlan is the validated execution order of one suite type.
type SuitePlan struct {
	Type     string
	Setup    *MethodDescriptor
	Teardown *MethodDescriptor
	Tests    []*MethodDescriptor
}

// Len returns the number of methods the plan invokes.
func (p *SuitePlan) Len() int {
	n := len(p.Tests)
	if p.Setup != nil {
		n++
	}
	if p.Teardown != nil {
		n++
	}
	return n
}

// Names returns the method names in invocation order.
func (p *SuitePlan) Names() []string {
	names := make([]string, 0, p.Len())
	if p.Setup != nil {
		names = append(names, p.Setup.Name)
	}
	for _, t := range p.Tests {
		names = append(names, t.Name)
	}
	if p.Teardown != nil {
		names = append(names, p.Teardown.Name)
	}
	return names
}

// schedule partitions validated descriptors and orders the tests by
// priority, highest first. Equal priorities keep discovery order.
func schedule(typ string, descriptors []*MethodDescriptor) *SuitePlan {
	plan := &SuitePlan{Type: typ}
	for _, d := range descriptors {
		switch {
		case d.Has(annotation.KindBeforeSuite):
			plan.Setup = d
		case d.Has(annotation.KindAfterSuite):
			plan.Teardown = d
		case d.Has(annotation.KindTest):
			plan.Tests = append(plan.Tests, d)
		}
	}
	slices.SortStableFunc(plan.Tests, func(a, b *MethodDescriptor) int {
		return cmp.Compare(b.Priority, a.Priority)
	})
	return plan
}
