package graph

import (
	"errors"
	"fmt"
	"testing"

	"github.com/veldt-lang/veldt/internal/value"
)

// stubRule is a configurable test rule.
type stubRule struct {
	name   string
	ops    []Op
	reject bool
	calls  *int
}

func (r *stubRule) Name() string { return r.name }

func (r *stubRule) AppliesTo(op Op) bool {
	for _, o := range r.ops {
		if o == op {
			return true
		}
	}
	return false
}

func (r *stubRule) Validate(g *Graph, m Mutation) error {
	if r.calls != nil {
		*r.calls++
	}
	if r.reject {
		return fmt.Errorf("rejected by %s", r.name)
	}
	return nil
}

func weightPtr(w float64) *float64 { return &w }

func buildGraph(t *testing.T, directed bool, edges [][2]string) *Graph {
	t.Helper()
	g := New(directed)
	seen := map[string]bool{}
	for _, e := range edges {
		for _, id := range e {
			if !seen[id] {
				seen[id] = true
				if err := g.AddNode(id, value.String(id)); err != nil {
					t.Fatalf("AddNode(%s) error = %v", id, err)
				}
			}
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1], "link", nil, nil); err != nil {
			t.Fatalf("AddEdge(%s, %s) error = %v", e[0], e[1], err)
		}
	}
	return g
}

func TestAddNode(t *testing.T) {
	g := New(true)

	if err := g.AddNode("a", value.Number(1)); err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}
	if !g.HasNode("a") || g.NodeCount() != 1 {
		t.Errorf("node not stored")
	}

	// Duplicate id is structural misuse, not a rule rejection
	err := g.AddNode("a", value.Number(2))
	var rt *RuntimeError
	if !errors.As(err, &rt) {
		t.Errorf("duplicate AddNode() error = %v, want RuntimeError", err)
	}

	if err := g.AddNode("", value.Number(1)); err == nil {
		t.Errorf("empty id should be rejected")
	}
}

func TestAddEdge(t *testing.T) {
	g := buildGraph(t, true, nil)
	g.AddNode("a", value.Number(1))
	g.AddNode("b", value.Number(2))

	if err := g.AddEdge("a", "b", "link", weightPtr(2.5), nil); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}
	if !g.HasEdge("a", "b") {
		t.Errorf("edge not stored")
	}
	if g.HasEdge("b", "a") {
		t.Errorf("directed edge should not be mirrored")
	}
	if w, ok := g.EdgeWeight("a", "b"); !ok || w != 2.5 {
		t.Errorf("EdgeWeight() = %v, %v, want 2.5, true", w, ok)
	}

	var rt *RuntimeError
	if err := g.AddEdge("a", "missing", "link", nil, nil); !errors.As(err, &rt) {
		t.Errorf("edge to missing node error = %v, want RuntimeError", err)
	}

	// Replacing an existing edge does not change the count
	if err := g.AddEdge("a", "b", "other", nil, nil); err != nil {
		t.Fatalf("replacing AddEdge() error = %v", err)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d after replace, want 1", g.EdgeCount())
	}
}

func TestUndirectedSymmetry(t *testing.T) {
	g := New(false)
	g.AddNode("a", value.Number(1))
	g.AddNode("b", value.Number(2))

	if err := g.AddEdge("a", "b", "link", weightPtr(1), nil); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}

	if g.HasEdge("a", "b") != g.HasEdge("b", "a") {
		t.Errorf("undirected edge not mirrored")
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1 for a mirrored edge", g.EdgeCount())
	}

	// Weight mutation must touch both sides
	if err := g.SetEdgeWeight("a", "b", 7); err != nil {
		t.Fatalf("SetEdgeWeight() error = %v", err)
	}
	wf, _ := g.EdgeWeight("a", "b")
	wr, _ := g.EdgeWeight("b", "a")
	if wf != wr || wf != 7 {
		t.Errorf("weights diverged: forward %g, reverse %g", wf, wr)
	}

	if err := g.RemoveEdgeWeight("b", "a"); err != nil {
		t.Fatalf("RemoveEdgeWeight() error = %v", err)
	}
	if g.IsWeighted("a", "b") || g.IsWeighted("b", "a") {
		t.Errorf("weight removal did not touch both sides")
	}

	// Edge removal strips both entries
	removed, err := g.RemoveEdge("b", "a")
	if err != nil || !removed {
		t.Fatalf("RemoveEdge() = %v, %v", removed, err)
	}
	if g.HasEdge("a", "b") || g.HasEdge("b", "a") || g.EdgeCount() != 0 {
		t.Errorf("mirrored edge not fully removed")
	}
}

func TestRemoveNodeStripsEdges(t *testing.T) {
	g := buildGraph(t, true, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "b"}})

	removed, err := g.RemoveNode("b")
	if err != nil {
		t.Fatalf("RemoveNode() error = %v", err)
	}
	if removed == nil || removed.ID != "b" {
		t.Fatalf("RemoveNode() = %v, want node b", removed)
	}

	if g.NodeCount() != 2 || g.EdgeCount() != 0 {
		t.Errorf("counts = %d nodes, %d edges, want 2, 0", g.NodeCount(), g.EdgeCount())
	}
	for _, id := range g.Keys() {
		for _, to := range g.Neighbors(id) {
			if to == "b" {
				t.Errorf("dangling adjacency entry %s -> b", id)
			}
		}
	}

	// Removing a missing node is not an error
	gone, err := g.RemoveNode("missing")
	if gone != nil || err != nil {
		t.Errorf("RemoveNode(missing) = %v, %v, want nil, nil", gone, err)
	}
}

func TestWeightAccessors(t *testing.T) {
	g := buildGraph(t, true, [][2]string{{"a", "b"}})

	// Queries on missing edges answer, mutations error
	if _, ok := g.EdgeWeight("a", "missing"); ok {
		t.Errorf("EdgeWeight on missing edge should report absent")
	}
	if g.IsWeighted("b", "a") {
		t.Errorf("IsWeighted on missing edge should be false")
	}

	var rt *RuntimeError
	if err := g.SetEdgeWeight("b", "a", 1); !errors.As(err, &rt) {
		t.Errorf("SetEdgeWeight on missing edge error = %v, want RuntimeError", err)
	}
	if err := g.RemoveEdgeWeight("b", "a"); !errors.As(err, &rt) {
		t.Errorf("RemoveEdgeWeight on missing edge error = %v, want RuntimeError", err)
	}
}

func TestRejectionAtomicity(t *testing.T) {
	tests := []struct {
		name    string
		ops     []Op
		mutate  func(g *Graph) error
	}{
		{
			name: "rejected add_node",
			ops:  []Op{OpAddNode},
			mutate: func(g *Graph) error {
				return g.AddNode("new", value.Number(9))
			},
		},
		{
			name: "rejected add_edge",
			ops:  []Op{OpAddEdge},
			mutate: func(g *Graph) error {
				return g.AddEdge("b", "a", "link", nil, nil)
			},
		},
		{
			name: "rejected remove_node",
			ops:  []Op{OpRemoveNode},
			mutate: func(g *Graph) error {
				_, err := g.RemoveNode("a")
				return err
			},
		},
		{
			name: "rejected remove_edge",
			ops:  []Op{OpRemoveEdge},
			mutate: func(g *Graph) error {
				_, err := g.RemoveEdge("a", "b")
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGraph(t, false, [][2]string{{"a", "b"}})
			g.AddRule(RuleInstance{Rule: &stubRule{name: "deny", ops: tt.ops, reject: true}}, RetroIgnore)
			before := g.Clone()

			err := tt.mutate(g)
			var violation *RuleViolationError
			if !errors.As(err, &violation) {
				t.Fatalf("mutate error = %v, want RuleViolationError", err)
			}
			if violation.Rule != "deny" {
				t.Errorf("violation rule = %q, want deny", violation.Rule)
			}
			if !g.Equal(before) {
				t.Errorf("graph changed by a rejected mutation")
			}
			if g.NodeCount() != before.NodeCount() || g.EdgeCount() != before.EdgeCount() {
				t.Errorf("counts changed by a rejected mutation")
			}
		})
	}
}

func TestInsert(t *testing.T) {
	g := New(true)
	root, err := g.Insert(value.Number(1), "")
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if !g.HasNode(root) {
		t.Fatalf("inserted node missing")
	}

	child, err := g.Insert(value.Number(2), root)
	if err != nil {
		t.Fatalf("Insert() with parent error = %v", err)
	}
	n, _ := g.Node(root)
	e, ok := n.Edge(child)
	if !ok || e.Type != "child" {
		t.Errorf("parent edge = %+v, %v, want child-typed edge", e, ok)
	}
	if root == child {
		t.Errorf("generated ids must be unique")
	}
}

func TestInsertRollsBackOnEdgeRejection(t *testing.T) {
	g := New(true)
	root, _ := g.Insert(value.Number(1), "")
	g.AddRule(RuleInstance{Rule: &stubRule{name: "deny", ops: []Op{OpAddEdge}, reject: true}}, RetroIgnore)

	before := g.NodeCount()
	_, err := g.Insert(value.Number(2), root)
	var violation *RuleViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("Insert() error = %v, want RuleViolationError", err)
	}
	if g.NodeCount() != before {
		t.Errorf("rejected Insert left an orphan node behind")
	}
}

func TestEffectiveRulesDedup(t *testing.T) {
	calls := 0
	shared := &stubRule{name: "shared", ops: []Op{OpAddNode}, calls: &calls}
	adhocDup := &stubRule{name: "shared", ops: []Op{OpAddNode}, calls: &calls}

	g := New(true)
	g.ApplyRuleset("custom", []RuleInstance{{Rule: shared}})
	g.AddRule(RuleInstance{Rule: adhocDup}, RetroIgnore)

	if err := g.AddNode("a", value.Number(1)); err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("shared rule validated %d times, want 1", calls)
	}
}

func TestAddRuleDedup(t *testing.T) {
	g := New(true)
	g.AddRule(RuleInstance{Rule: &stubRule{name: "r", ops: []Op{OpAddNode}}}, RetroIgnore)
	if err := g.AddRule(RuleInstance{Rule: &stubRule{name: "r", ops: []Op{OpAddNode}}}, RetroIgnore); err != nil {
		t.Fatalf("duplicate AddRule() error = %v, want silent no-op", err)
	}
	if len(g.AdHocRules()) != 1 {
		t.Errorf("ad hoc rules = %d, want exactly 1", len(g.AdHocRules()))
	}
}

func TestApplyRulesetTwice(t *testing.T) {
	g := New(true)
	g.ApplyRuleset("x", []RuleInstance{{Rule: &stubRule{name: "r"}}})
	g.ApplyRuleset("x", []RuleInstance{{Rule: &stubRule{name: "r"}}})
	if got := g.RulesetNames(); len(got) != 1 {
		t.Errorf("RulesetNames() = %v, want one entry", got)
	}
}

func TestCloneIndependence(t *testing.T) {
	g := buildGraph(t, true, [][2]string{{"a", "b"}})
	g.SetProperty("a", "color", value.String("red"))

	c := g.Clone()
	if !g.Equal(c) {
		t.Fatalf("clone not equal to original")
	}

	c.AddNode("c", value.Number(3))
	c.SetProperty("a", "color", value.String("blue"))

	if g.HasNode("c") {
		t.Errorf("mutating clone changed the original")
	}
	if v, _ := g.GetProperty("a", "color"); !v.Equal(value.String("red")) {
		t.Errorf("clone shares property storage with original")
	}
	if g.Equal(c) {
		t.Errorf("graphs should differ after clone mutation")
	}
}

func TestEqualIgnoresOptimizationState(t *testing.T) {
	g := buildGraph(t, true, nil)
	g.AddNode("a", value.Number(1))
	g.SetProperty("a", "color", value.String("red"))

	other := g.Clone()

	// Drive the original past the index threshold
	for i := 0; i < 20; i++ {
		g.FindNodesByProperty("color", value.String("red"))
	}
	if !g.PropertyIndexBuilt("color") {
		t.Fatalf("index should be built after threshold")
	}
	if !g.Equal(other) {
		t.Errorf("adaptive-index state leaked into equality")
	}
}

func TestRemoveRule(t *testing.T) {
	g := New(true)
	g.AddRule(RuleInstance{Rule: &stubRule{name: "r", ops: []Op{OpAddNode}, reject: true}}, RetroIgnore)

	if err := g.AddNode("a", value.Number(1)); err == nil {
		t.Fatalf("rule should reject before removal")
	}
	if !g.RemoveRule("r") {
		t.Fatalf("RemoveRule() = false, want true")
	}
	if err := g.AddNode("a", value.Number(1)); err != nil {
		t.Errorf("AddNode() after rule removal error = %v", err)
	}
}
