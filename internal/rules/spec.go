// Package rules defines the closed catalog of validation rules, the
// named rulesets that bundle them, and the symbol lookup the language
// surface uses to reach them.
package rules

import (
	"fmt"

	"github.com/veldt-lang/veldt/internal/graph"
)

// Kind enumerates the closed set of rule specifications.
type Kind int

const (
	NoCycles Kind = iota
	SingleRoot
	Connected
	MaxDegree
	BinaryTree
	BSTOrdering
	NoDuplicates
	ValidateRange
	WeightedEdges
	UnweightedEdges
)

// Spec is a named, optionally parameterized constraint specification.
// Degree applies to MaxDegree; Min and Max apply to ValidateRange.
type Spec struct {
	Kind   Kind
	Degree int
	Min    float64
	Max    float64
}

// Name returns the rule's stable snake_case identifier.
func (s Spec) Name() string {
	switch s.Kind {
	case NoCycles:
		return "no_cycles"
	case SingleRoot:
		return "single_root"
	case Connected:
		return "connected"
	case MaxDegree:
		return "max_degree"
	case BinaryTree:
		return "binary_tree"
	case BSTOrdering:
		return "bst_ordering"
	case NoDuplicates:
		return "no_duplicates"
	case ValidateRange:
		return "validate_range"
	case WeightedEdges:
		return "weighted_edges"
	case UnweightedEdges:
		return "unweighted_edges"
	}
	return "unknown"
}

// Key returns the spec identity including parameters, e.g.
// "max_degree(3)". Two ad hoc instances are duplicates iff their keys
// match.
func (s Spec) Key() string {
	switch s.Kind {
	case MaxDegree:
		return fmt.Sprintf("max_degree(%d)", s.Degree)
	case ValidateRange:
		return fmt.Sprintf("validate_range(%g,%g)", s.Min, s.Max)
	default:
		return s.Name()
	}
}

// Instantiate builds the validator for this spec.
func (s Spec) Instantiate() graph.Rule {
	switch s.Kind {
	case NoCycles:
		return noCycles{}
	case SingleRoot:
		return singleRoot{}
	case Connected:
		return connected{}
	case MaxDegree:
		return maxDegree{limit: s.Degree}
	case BinaryTree:
		return binaryTree{}
	case BSTOrdering:
		return bstOrdering{}
	case NoDuplicates:
		return noDuplicates{}
	case ValidateRange:
		return validateRange{min: s.Min, max: s.Max}
	case WeightedEdges:
		return weightedEdges{}
	case UnweightedEdges:
		return unweightedEdges{}
	}
	return nil
}

// Instance pairs an instantiated spec with a severity.
func Instance(s Spec, severity graph.Severity) graph.RuleInstance {
	return graph.RuleInstance{Rule: s.Instantiate(), Severity: severity}
}
