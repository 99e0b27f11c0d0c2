package algo

import (
	"testing"

	"github.com/veldt-lang/veldt/internal/graph"
)

func TestAllPaths(t *testing.T) {
	// a->d direct, a->b->d, a->c->d
	g := graph.New(true)
	for _, id := range []string{"a", "b", "c", "d"} {
		mustNode(t, g, id)
	}
	mustEdge(t, g, "a", "d", "link")
	mustEdge(t, g, "a", "b", "link")
	mustEdge(t, g, "b", "d", "link")
	mustEdge(t, g, "a", "c", "link")
	mustEdge(t, g, "c", "d", "link")

	got := AllPaths(g, "a", "d", 5)
	if len(got) != 3 {
		t.Fatalf("AllPaths() found %d paths, want 3: %v", len(got), got)
	}
	for _, p := range got {
		if p[0] != "a" || p[len(p)-1] != "d" {
			t.Errorf("path %v has wrong endpoints", p)
		}
	}
}

func TestAllPathsLengthBound(t *testing.T) {
	g := graph.New(true)
	for _, id := range []string{"a", "b", "c"} {
		mustNode(t, g, id)
	}
	mustEdge(t, g, "a", "c", "link")
	mustEdge(t, g, "a", "b", "link")
	mustEdge(t, g, "b", "c", "link")

	// Bound of one edge admits only the direct hop.
	got := AllPaths(g, "a", "c", 1)
	if len(got) != 1 || !samePath(got[0], []string{"a", "c"}) {
		t.Errorf("AllPaths(maxLen=1) = %v, want only the direct path", got)
	}

	// Non-positive bound falls back to the default, admitting both.
	if got := AllPaths(g, "a", "c", 0); len(got) != 2 {
		t.Errorf("AllPaths(maxLen=0) found %d paths, want 2", len(got))
	}
}

func TestAllPathsSimpleOnly(t *testing.T) {
	// A cycle must not produce unbounded or repeating paths.
	g := graph.New(true)
	for _, id := range []string{"a", "b", "c"} {
		mustNode(t, g, id)
	}
	mustEdge(t, g, "a", "b", "link")
	mustEdge(t, g, "b", "a", "link")
	mustEdge(t, g, "b", "c", "link")

	got := AllPaths(g, "a", "c", 10)
	if len(got) != 1 || !samePath(got[0], []string{"a", "b", "c"}) {
		t.Errorf("AllPaths() = %v, want the single simple path", got)
	}
}

func TestAllPathsMissingEndpoint(t *testing.T) {
	g := graph.New(true)
	mustNode(t, g, "a")
	if got := AllPaths(g, "a", "ghost", 5); got != nil {
		t.Errorf("AllPaths() = %v, want nil", got)
	}
}
