package rules

import (
	"testing"

	"github.com/veldt-lang/veldt/internal/graph"
)

func ruleNameSet(insts []graph.RuleInstance) map[string]bool {
	out := make(map[string]bool, len(insts))
	for _, inst := range insts {
		out[inst.Rule.Name()] = true
	}
	return out
}

func TestRulesetInheritance(t *testing.T) {
	tree := ruleNameSet(Ruleset("tree"))
	binaryTree := ruleNameSet(Ruleset("binary_tree"))
	bst := ruleNameSet(Ruleset("bst"))

	for name := range tree {
		if !binaryTree[name] {
			t.Errorf("binary_tree missing inherited rule %s", name)
		}
	}
	for name := range binaryTree {
		if !bst[name] {
			t.Errorf("bst missing inherited rule %s", name)
		}
	}
	if !binaryTree["max_degree"] {
		t.Errorf("binary_tree should add max_degree")
	}
	if !bst["bst_ordering"] {
		t.Errorf("bst should add bst_ordering")
	}

	dag := ruleNameSet(Ruleset("dag"))
	if len(dag) != 1 || !dag["no_cycles"] {
		t.Errorf("dag rules = %v, want exactly {no_cycles}", dag)
	}
	// dag and tree overlap only on no_cycles
	for name := range dag {
		if name != "no_cycles" && tree[name] {
			t.Errorf("dag and tree share unexpected rule %s", name)
		}
	}
}

func TestRulesetDefaults(t *testing.T) {
	for _, inst := range Ruleset("bst") {
		if inst.Severity != graph.SeverityWarning {
			t.Errorf("rule %s severity = %v, want Warning", inst.Rule.Name(), inst.Severity)
		}
	}
}

func TestUnknownRulesetResolvesEmpty(t *testing.T) {
	if got := Ruleset("nope"); got != nil {
		t.Errorf("Ruleset(nope) = %v, want nil", got)
	}

	// Applying an unknown name is harmless: the name is carried with no
	// active effect.
	g := graph.New(true)
	Apply(g, "nope")
	if names := g.RulesetNames(); len(names) != 1 || names[0] != "nope" {
		t.Errorf("RulesetNames() = %v, want [nope]", names)
	}
	if len(g.EffectiveRules()) != 0 {
		t.Errorf("unknown ruleset contributed rules")
	}
}

func TestCatalog(t *testing.T) {
	for _, name := range []string{"tree", "binary_tree", "bst", "dag"} {
		if !IsValidRuleset(name) {
			t.Errorf("IsValidRuleset(%s) = false", name)
		}
	}
	if IsValidRuleset("forest") {
		t.Errorf("IsValidRuleset(forest) = true")
	}

	available := AvailableRulesets()
	if len(available) != 4 {
		t.Errorf("AvailableRulesets() = %v, want 4 entries", available)
	}
}
