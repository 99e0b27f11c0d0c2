package algo

import (
	"fmt"

	"github.com/veldt-lang/veldt/internal/graph"
)

// Plan is a structured execution-plan description: which branch of an
// operation will execute and why. It is a diagnostic contract, not a
// cost-based optimizer — EstimatedOps is a simple node/edge-count
// formula, not measured cost.
type Plan struct {
	Operation    string
	Steps        []string
	Notes        []string
	EstimatedOps int
}

// String renders the plan for human consumption.
func (p Plan) String() string {
	out := p.Operation + "\n"
	for i, s := range p.Steps {
		out += fmt.Sprintf("  %d. %s\n", i+1, s)
	}
	for _, n := range p.Notes {
		out += "  note: " + n + "\n"
	}
	out += fmt.Sprintf("  estimated ops: %d\n", p.EstimatedOps)
	return out
}

// ExplainFindProperty describes how a property lookup on the given name
// would execute, without performing it or touching the access counter.
func ExplainFindProperty(g *graph.Graph, name string) Plan {
	p := Plan{Operation: fmt.Sprintf("find_nodes_by_property(%q)", name)}
	count := g.PropertyAccessCount(name)
	threshold := g.IndexThreshold()

	switch {
	case g.PropertyIndexBuilt(name):
		p.Steps = append(p.Steps, "hash the value into an index key", "return the indexed node ids")
		p.Notes = append(p.Notes, fmt.Sprintf("adaptive index built after %d accesses", count))
		p.EstimatedOps = 1
	case count+1 >= threshold:
		p.Steps = append(p.Steps,
			"scan all nodes once to build the property index",
			"return the indexed node ids")
		p.Notes = append(p.Notes, "next access crosses the index threshold")
		p.EstimatedOps = g.NodeCount()
	default:
		p.Steps = append(p.Steps, "scan all nodes, comparing property values")
		p.Notes = append(p.Notes,
			fmt.Sprintf("%d more accesses until the adaptive index is built", threshold-count-1))
		p.EstimatedOps = g.NodeCount()
	}
	return p
}

// ExplainShortestPath describes which shortest-path strategy the options
// and active rules select.
func ExplainShortestPath(g *graph.Graph, from, to string, opts PathOptions) Plan {
	p := Plan{Operation: fmt.Sprintf("shortest_path(%s, %s)", from, to)}
	n, e := g.NodeCount(), g.EdgeCount()

	switch {
	case opts.Weighted:
		p.Steps = append(p.Steps,
			"run Dijkstra over weight-carrying edges",
			"reconstruct the path from parent pointers")
		p.Notes = append(p.Notes, "unweighted edges are invisible in weighted mode")
		p.EstimatedOps = n + e
	case opts.EdgeType != "":
		p.Steps = append(p.Steps,
			fmt.Sprintf("breadth-first search over %q edges", opts.EdgeType),
			"reconstruct the path from parent pointers")
		p.EstimatedOps = n + e
	case g.HasActiveRule("no_cycles"):
		p.Steps = append(p.Steps,
			"order nodes topologically (Kahn's algorithm)",
			"relax edges in one pass over the order",
			"reconstruct the path from parent pointers")
		p.Notes = append(p.Notes,
			"acyclicity is licensed by the active no_cycles rule",
			"falls back to BFS if a cycle exists anyway")
		p.EstimatedOps = n + e
	default:
		p.Steps = append(p.Steps,
			"breadth-first search",
			"reconstruct the path from parent pointers")
		p.EstimatedOps = n + e
	}
	return p
}

// ExplainBFS describes a plain breadth-first traversal from start.
func ExplainBFS(g *graph.Graph, start string) Plan {
	return Plan{
		Operation: fmt.Sprintf("bfs(%s)", start),
		Steps: []string{
			"visit nodes level by level from the start",
			"track visited nodes to skip repeats",
		},
		EstimatedOps: g.NodeCount() + g.EdgeCount(),
	}
}
