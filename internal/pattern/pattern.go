// Package pattern implements declarative structural matching over the
// graph store. A pattern is an alternating sequence of node and edge
// tokens; matching walks the store under the tokens' type and direction
// filters and produces one variable→node-id binding map per satisfying
// path.
package pattern

import (
	"github.com/veldt-lang/veldt/internal/graph"
	"github.com/veldt-lang/veldt/internal/value"
)

// Direction names accepted on edge tokens.
const (
	DirectionOut  = "out"
	DirectionIn   = "in"
	DirectionBoth = "both"
)

// Binding maps pattern variables to concrete node ids.
type Binding map[string]string

// Match runs the token sequence against the graph and returns every
// satisfying binding. A single node token with no edges matches every
// node (type-filtered). The empty result set means no match; a malformed
// token sequence is a runtime error.
func Match(g *graph.Graph, tokens []value.Value) ([]Binding, error) {
	nodes, edges, err := splitTokens(tokens)
	if err != nil {
		return nil, err
	}

	var results []Binding
	for _, id := range g.Keys() {
		if !nodeMatches(g, id, nodes[0]) {
			continue
		}
		binding := Binding{nodes[0].Var: id}
		extend(g, id, nodes, edges, 0, binding, &results)
	}
	return results, nil
}

// extend tries to satisfy the pattern from position i, with the node at
// nodes[i] already bound to current.
func extend(g *graph.Graph, current string, nodes []value.PatternNode, edges []value.PatternEdge, i int, binding Binding, results *[]Binding) {
	if i == len(edges) {
		found := make(Binding, len(binding))
		for k, v := range binding {
			found[k] = v
		}
		*results = append(*results, found)
		return
	}

	next := nodes[i+1]
	for _, candidate := range hop(g, current, edges[i]) {
		if !nodeMatches(g, candidate, next) {
			continue
		}
		if bound, ok := binding[next.Var]; ok {
			if bound != candidate {
				continue
			}
			extend(g, candidate, nodes, edges, i+1, binding, results)
			continue
		}
		binding[next.Var] = candidate
		extend(g, candidate, nodes, edges, i+1, binding, results)
		delete(binding, next.Var)
	}
}

// hop returns the ids reachable from current over one edge token,
// honoring its type filter and direction. "both" matches either adjacency
// direction.
func hop(g *graph.Graph, current string, e value.PatternEdge) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	dir := e.Direction
	if dir == "" {
		dir = DirectionOut
	}

	if dir == DirectionOut || dir == DirectionBoth {
		n, _ := g.Node(current)
		for _, to := range g.Neighbors(current) {
			edge, _ := n.Edge(to)
			if e.Type == "" || edge.Type == e.Type {
				add(to)
			}
		}
	}
	if dir == DirectionIn || dir == DirectionBoth {
		for _, id := range g.Keys() {
			n, _ := g.Node(id)
			if edge, ok := n.Edge(current); ok {
				if e.Type == "" || edge.Type == e.Type {
					add(id)
				}
			}
		}
	}
	return out
}

// nodeMatches applies a node token's type filter: empty matches any
// node, otherwise the node's "type" property must equal the filter.
func nodeMatches(g *graph.Graph, id string, pat value.PatternNode) bool {
	if pat.Type == "" {
		return true
	}
	v, ok := g.GetProperty(id, "type")
	if !ok {
		return false
	}
	s, ok := v.AsString()
	return ok && s == pat.Type
}

// splitTokens validates the alternation node, edge, node, ... and
// separates the two token kinds.
func splitTokens(tokens []value.Value) ([]value.PatternNode, []value.PatternEdge, error) {
	if len(tokens) == 0 {
		return nil, nil, graph.Runtimef("pattern must contain at least one node token")
	}
	if len(tokens)%2 == 0 {
		return nil, nil, graph.Runtimef("pattern must end with a node token")
	}

	var nodes []value.PatternNode
	var edges []value.PatternEdge
	for i, tok := range tokens {
		if i%2 == 0 {
			n, ok := tok.AsNodeToken()
			if !ok {
				return nil, nil, graph.Runtimef("pattern position %d: expected a node token, got %s", i, tok.Kind())
			}
			nodes = append(nodes, n)
			continue
		}
		e, ok := tok.AsEdgeToken()
		if !ok {
			return nil, nil, graph.Runtimef("pattern position %d: expected an edge token, got %s", i, tok.Kind())
		}
		if d := e.Direction; d != "" && d != DirectionOut && d != DirectionIn && d != DirectionBoth {
			return nil, nil, graph.Runtimef("pattern position %d: unknown direction %q", i, d)
		}
		edges = append(edges, e)
	}
	return nodes, edges, nil
}
