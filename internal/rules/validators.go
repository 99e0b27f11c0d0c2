package rules

import (
	"fmt"

	"github.com/veldt-lang/veldt/internal/algo"
	"github.com/veldt-lang/veldt/internal/graph"
	"github.com/veldt-lang/veldt/internal/value"
)

// noCycles rejects an edge that would close a cycle: if the target can
// already reach the source, the new edge completes a loop.
type noCycles struct{}

func (noCycles) Name() string               { return "no_cycles" }
func (noCycles) AppliesTo(op graph.Op) bool { return op == graph.OpAddEdge }

func (noCycles) Validate(g *graph.Graph, m graph.Mutation) error {
	if m.From == m.To {
		return fmt.Errorf("self-edge on %s would create a cycle", m.From)
	}
	if algo.HasPath(g, m.To, m.From) {
		return fmt.Errorf("edge %s -> %s would create a cycle", m.From, m.To)
	}
	return nil
}

// singleRoot keeps the graph at exactly one node with in-degree zero.
// A freshly added node is exempt from the count: it is expected to be
// linked immediately (Insert does so in the same call). The rule instead
// refuses to grow a graph that already has more than one root, and
// rejects edges whose addition would leave the root count off one.
type singleRoot struct{}

func (singleRoot) Name() string               { return "single_root" }
func (singleRoot) AppliesTo(op graph.Op) bool {
	return op == graph.OpAddNode || op == graph.OpAddEdge
}

func (singleRoot) Validate(g *graph.Graph, m graph.Mutation) error {
	switch m.Op {
	case graph.OpAddNode:
		if g.NodeCount() == 0 {
			return nil
		}
		if roots := countRoots(g, "", ""); roots > 1 {
			return fmt.Errorf("graph already has %d roots, expected 1", roots)
		}
	case graph.OpAddEdge:
		roots := countRoots(g, m.From, m.To)
		if roots != 1 {
			return fmt.Errorf("edge %s -> %s would leave %d roots, expected 1", m.From, m.To, roots)
		}
	}
	return nil
}

// countRoots returns the number of in-degree-zero nodes, optionally
// simulating one extra edge from extraFrom to extraTo.
func countRoots(g *graph.Graph, extraFrom, extraTo string) int {
	indeg := make(map[string]int)
	for _, id := range g.Keys() {
		if _, ok := indeg[id]; !ok {
			indeg[id] = 0
		}
		for _, to := range g.Neighbors(id) {
			indeg[to]++
		}
	}
	if extraFrom != "" && !g.HasEdge(extraFrom, extraTo) {
		indeg[extraTo]++
	}
	roots := 0
	for _, d := range indeg {
		if d == 0 {
			roots++
		}
	}
	return roots
}

// connected keeps the graph in a single component. As with singleRoot, a
// freshly added node is exempt; the rule refuses to grow a graph that is
// already split.
type connected struct{}

func (connected) Name() string               { return "connected" }
func (connected) AppliesTo(op graph.Op) bool { return op == graph.OpAddNode }

func (connected) Validate(g *graph.Graph, m graph.Mutation) error {
	if n := componentCount(g); n > 1 {
		return fmt.Errorf("graph has %d connected components, expected at most 1", n)
	}
	return nil
}

// componentCount counts weakly connected components.
func componentCount(g *graph.Graph) int {
	// Build an undirected adjacency view so directed graphs are measured
	// by weak connectivity.
	adj := make(map[string][]string)
	for _, id := range g.Keys() {
		if _, ok := adj[id]; !ok {
			adj[id] = nil
		}
		for _, to := range g.Neighbors(id) {
			adj[id] = append(adj[id], to)
			adj[to] = append(adj[to], id)
		}
	}

	visited := make(map[string]bool)
	count := 0
	for _, id := range g.Keys() {
		if visited[id] {
			continue
		}
		count++
		stack := []string{id}
		for len(stack) > 0 {
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[current] {
				continue
			}
			visited[current] = true
			stack = append(stack, adj[current]...)
		}
	}
	return count
}

// maxDegree caps a node's out-degree.
type maxDegree struct {
	limit int
}

func (maxDegree) Name() string               { return "max_degree" }
func (maxDegree) AppliesTo(op graph.Op) bool { return op == graph.OpAddEdge }
func (r maxDegree) SpecKey() string          { return fmt.Sprintf("max_degree(%d)", r.limit) }

func (r maxDegree) Validate(g *graph.Graph, m graph.Mutation) error {
	if g.HasEdge(m.From, m.To) {
		// Replacing an existing edge does not change the degree.
		return nil
	}
	n, ok := g.Node(m.From)
	if !ok {
		return nil
	}
	if n.Degree()+1 > r.limit {
		return fmt.Errorf("node %s already has %d children, maximum is %d", m.From, n.Degree(), r.limit)
	}
	return nil
}

// binaryTree rejects a third child on any node.
type binaryTree struct{}

func (binaryTree) Name() string               { return "binary_tree" }
func (binaryTree) AppliesTo(op graph.Op) bool { return op == graph.OpAddEdge }

func (binaryTree) Validate(g *graph.Graph, m graph.Mutation) error {
	if g.HasEdge(m.From, m.To) {
		return nil
	}
	n, ok := g.Node(m.From)
	if !ok {
		return nil
	}
	if n.Degree() >= 2 {
		return fmt.Errorf("node %s would gain a third child", m.From)
	}
	return nil
}

// bstOrdering enforces numeric node values and the direct parent-child
// ordering of "left" and "right" edges: left child strictly less than the
// parent, right child strictly greater. It does not re-check the full
// subtree invariant.
type bstOrdering struct{}

func (bstOrdering) Name() string               { return "bst_ordering" }
func (bstOrdering) AppliesTo(op graph.Op) bool {
	return op == graph.OpAddNode || op == graph.OpAddEdge
}

func (bstOrdering) Validate(g *graph.Graph, m graph.Mutation) error {
	switch m.Op {
	case graph.OpAddNode:
		if !m.Value.IsNumber() {
			return fmt.Errorf("bst values must be numeric, got %s", m.Value.Kind())
		}
	case graph.OpAddEdge:
		if m.EdgeType != "left" && m.EdgeType != "right" {
			return nil
		}
		parent, ok := g.Node(m.From)
		if !ok {
			return nil
		}
		child, ok := g.Node(m.To)
		if !ok {
			return nil
		}
		pv, pok := parent.Value.AsNumber()
		cv, cok := child.Value.AsNumber()
		if !pok || !cok {
			return fmt.Errorf("bst values must be numeric")
		}
		if m.EdgeType == "left" && cv >= pv {
			return fmt.Errorf("left child %g must be less than parent %g", cv, pv)
		}
		if m.EdgeType == "right" && cv <= pv {
			return fmt.Errorf("right child %g must be greater than parent %g", cv, pv)
		}
	}
	return nil
}

// noDuplicates rejects a node whose value already exists in the graph.
// It supports retroactive checking and cleaning: cleaning removes every
// later node holding an already-seen value.
type noDuplicates struct{}

func (noDuplicates) Name() string               { return "no_duplicates" }
func (noDuplicates) AppliesTo(op graph.Op) bool { return op == graph.OpAddNode }

func (noDuplicates) Validate(g *graph.Graph, m graph.Mutation) error {
	for _, id := range g.Keys() {
		n, _ := g.Node(id)
		if n.Value.Equal(m.Value) {
			return fmt.Errorf("value %s already exists on node %s", m.Value, id)
		}
	}
	return nil
}

func (noDuplicates) CheckExisting(g *graph.Graph) []string {
	var msgs []string
	for _, dup := range duplicateNodes(g) {
		msgs = append(msgs, fmt.Sprintf("node %s duplicates an earlier value", dup))
	}
	return msgs
}

func (noDuplicates) Clean(g *graph.Graph) error {
	for _, dup := range duplicateNodes(g) {
		g.RemoveNodeRaw(dup)
	}
	return nil
}

// duplicateNodes returns, in insertion order, every node whose value was
// already held by an earlier node.
func duplicateNodes(g *graph.Graph) []string {
	var dups []string
	var seen []value.Value
	for _, id := range g.Keys() {
		n, _ := g.Node(id)
		found := false
		for _, v := range seen {
			if v.Equal(n.Value) {
				found = true
				break
			}
		}
		if found {
			dups = append(dups, id)
		} else {
			seen = append(seen, n.Value)
		}
	}
	return dups
}

// validateRange rejects numeric values outside [min, max] and any
// non-numeric value.
type validateRange struct {
	min, max float64
}

func (validateRange) Name() string               { return "validate_range" }
func (validateRange) AppliesTo(op graph.Op) bool { return op == graph.OpAddNode }
func (r validateRange) SpecKey() string {
	return fmt.Sprintf("validate_range(%g,%g)", r.min, r.max)
}

func (r validateRange) Validate(g *graph.Graph, m graph.Mutation) error {
	n, ok := m.Value.AsNumber()
	if !ok {
		return fmt.Errorf("range-validated values must be numeric, got %s", m.Value.Kind())
	}
	if n < r.min || n > r.max {
		return fmt.Errorf("value %g outside range [%g, %g]", n, r.min, r.max)
	}
	return nil
}

func (r validateRange) CheckExisting(g *graph.Graph) []string {
	var msgs []string
	for _, id := range g.Keys() {
		node, _ := g.Node(id)
		n, ok := node.Value.AsNumber()
		if !ok || n < r.min || n > r.max {
			msgs = append(msgs, fmt.Sprintf("node %s value %s outside range [%g, %g]", id, node.Value, r.min, r.max))
		}
	}
	return msgs
}

// weightedEdges requires every edge to carry a weight.
type weightedEdges struct{}

func (weightedEdges) Name() string               { return "weighted_edges" }
func (weightedEdges) AppliesTo(op graph.Op) bool { return op == graph.OpAddEdge }

func (weightedEdges) Validate(g *graph.Graph, m graph.Mutation) error {
	if m.Weight == nil {
		return fmt.Errorf("edge %s -> %s must carry a weight", m.From, m.To)
	}
	return nil
}

// unweightedEdges forbids edge weights.
type unweightedEdges struct{}

func (unweightedEdges) Name() string               { return "unweighted_edges" }
func (unweightedEdges) AppliesTo(op graph.Op) bool { return op == graph.OpAddEdge }

func (unweightedEdges) Validate(g *graph.Graph, m graph.Mutation) error {
	if m.Weight != nil {
		return fmt.Errorf("edge %s -> %s must not carry a weight", m.From, m.To)
	}
	return nil
}
