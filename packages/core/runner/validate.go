package runner

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/abdul-hamid-achik/xunit/packages/core/annotation"
)

// validate checks the marker usage of a discovered type. Rules are checked
// in a fixed order so the reported violation is deterministic.
func validate(t reflect.Type, descriptors []*MethodDescriptor) error {
	name := typeName(t)

	for _, d := range descriptors {
		if d.metadata != "" {
			return &ConfigurationError{Type: name, Rule: RuleMetadata, Methods: []string{d.Name}, Reason: d.metadata}
		}
	}

	for _, d := range descriptors {
		if len(d.Kinds) > 1 {
			return &ConfigurationError{
				Type:    name,
				Rule:    RuleExclusivity,
				Methods: []string{d.Name},
				Reason:  "method carries " + kinds(d.Kinds) + ", at most one marker is allowed",
			}
		}
	}

	for _, kind := range []annotation.Kind{annotation.KindBeforeSuite, annotation.KindAfterSuite} {
		var methods []string
		for _, d := range descriptors {
			if d.Has(kind) {
				methods = append(methods, d.Name)
			}
		}
		if len(methods) > 1 {
			return &ConfigurationError{
				Type:    name,
				Rule:    RuleCardinality,
				Methods: methods,
				Reason:  fmt.Sprintf("%d methods marked %s, at most one is allowed", len(methods), kind),
			}
		}
	}

	for _, d := range descriptors {
		if d.problem != "" {
			return &ConfigurationError{Type: name, Rule: RuleSignature, Methods: []string{d.Name}, Reason: d.problem}
		}
	}
	return nil
}

func kinds(ks []annotation.Kind) string {
	parts := make([]string, len(ks))
	for i, k := range ks {
		parts[i] = k.String()
	}
	return strings.Join(parts, " and ")
}
