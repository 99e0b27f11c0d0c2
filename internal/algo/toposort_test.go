package algo

import (
	"testing"

	"github.com/veldt-lang/veldt/internal/graph"
)

func TestTopologicalSortRespectsEdges(t *testing.T) {
	g := graph.New(true)
	for _, id := range []string{"a", "b", "c", "d"} {
		mustNode(t, g, id)
	}
	mustEdge(t, g, "a", "b", "link")
	mustEdge(t, g, "a", "c", "link")
	mustEdge(t, g, "b", "d", "link")
	mustEdge(t, g, "c", "d", "link")

	order, acyclic := TopologicalSort(g)
	if !acyclic {
		t.Fatalf("TopologicalSort() reported a cycle on a DAG")
	}
	if len(order) != g.NodeCount() {
		t.Fatalf("order has %d entries, want %d", len(order), g.NodeCount())
	}

	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	for _, e := range [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}} {
		if pos[e[0]] >= pos[e[1]] {
			t.Errorf("%s at %d not before %s at %d", e[0], pos[e[0]], e[1], pos[e[1]])
		}
	}
}

func TestTopologicalSortCycle(t *testing.T) {
	g := graph.New(true)
	for _, id := range []string{"a", "b"} {
		mustNode(t, g, id)
	}
	mustEdge(t, g, "a", "b", "link")
	mustEdge(t, g, "b", "a", "link")

	order, acyclic := TopologicalSort(g)
	if acyclic {
		t.Fatalf("TopologicalSort() missed the cycle")
	}
	if order != nil {
		t.Errorf("order = %v on a cyclic graph, want nil", order)
	}
}

func TestTopologicalSortEmpty(t *testing.T) {
	order, acyclic := TopologicalSort(graph.New(true))
	if !acyclic {
		t.Errorf("empty graph reported as cyclic")
	}
	if len(order) != 0 {
		t.Errorf("order = %v on an empty graph", order)
	}
}
