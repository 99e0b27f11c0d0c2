package rules

import (
	"github.com/veldt-lang/veldt/internal/constants"
	"github.com/veldt-lang/veldt/internal/graph"
)

// rulesetSpecs is the fixed inheritance table. Order within a ruleset is
// the validation order.
var rulesetSpecs = map[string][]Spec{
	"tree": {
		{Kind: NoCycles},
		{Kind: SingleRoot},
		{Kind: Connected},
	},
	"binary_tree": {
		{Kind: NoCycles},
		{Kind: SingleRoot},
		{Kind: Connected},
		{Kind: MaxDegree, Degree: constants.MaxDegreeBinaryTree},
	},
	"bst": {
		{Kind: NoCycles},
		{Kind: SingleRoot},
		{Kind: Connected},
		{Kind: MaxDegree, Degree: constants.MaxDegreeBinaryTree},
		{Kind: BSTOrdering},
	},
	"dag": {
		{Kind: NoCycles},
	},
}

// rulesetOrder fixes the listing order of the closed catalog.
var rulesetOrder = []string{"tree", "binary_tree", "bst", "dag"}

// Ruleset resolves a ruleset name to its rule instances, each at Warning
// severity. Unknown names resolve to nil rather than an error, so a graph
// can carry an unrecognized ruleset name with no active effect.
func Ruleset(name string) []graph.RuleInstance {
	specs, ok := rulesetSpecs[name]
	if !ok {
		return nil
	}
	out := make([]graph.RuleInstance, len(specs))
	for i, s := range specs {
		out[i] = Instance(s, graph.SeverityWarning)
	}
	return out
}

// RulesetSpecs returns the specs a ruleset contributes, or nil for
// unknown names.
func RulesetSpecs(name string) []Spec {
	specs, ok := rulesetSpecs[name]
	if !ok {
		return nil
	}
	out := make([]Spec, len(specs))
	copy(out, specs)
	return out
}

// IsValidRuleset reports whether the name is in the closed catalog.
func IsValidRuleset(name string) bool {
	_, ok := rulesetSpecs[name]
	return ok
}

// AvailableRulesets returns the closed catalog's names.
func AvailableRulesets() []string {
	out := make([]string, len(rulesetOrder))
	copy(out, rulesetOrder)
	return out
}

// Apply resolves a ruleset name and applies it to the graph. Unknown
// names apply as an empty ruleset.
func Apply(g *graph.Graph, name string) {
	g.ApplyRuleset(name, Ruleset(name))
}
