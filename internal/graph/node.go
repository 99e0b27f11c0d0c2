package graph

import "github.com/veldt-lang/veldt/internal/value"

// Edge is the payload stored inside a node's adjacency entry: a type
// label, an optional numeric weight, and a property bag. On undirected
// graphs the entry is mirrored into the target node's adjacency map and
// the two sides are kept weight- and type-consistent.
type Edge struct {
	Type       string
	Weight     *float64
	Properties map[string]value.Value
}

func (e *Edge) clone() *Edge {
	c := &Edge{Type: e.Type}
	if e.Weight != nil {
		w := *e.Weight
		c.Weight = &w
	}
	if e.Properties != nil {
		c.Properties = make(map[string]value.Value, len(e.Properties))
		for k, v := range e.Properties {
			c.Properties[k] = v.Clone()
		}
	}
	return c
}

// Node is a graph vertex: a unique identifier, a dynamic value, a
// property bag for indexed lookup, and an adjacency map keyed by neighbor
// identifier. Adjacency preserves insertion order; binary-tree order
// traversals rely on the first and second entries being the left and
// right children.
type Node struct {
	ID         string
	Value      value.Value
	Properties map[string]value.Value

	edges map[string]*Edge
	order []string
}

func newNode(id string, v value.Value) *Node {
	return &Node{
		ID:         id,
		Value:      v,
		Properties: make(map[string]value.Value),
		edges:      make(map[string]*Edge),
	}
}

// Edge returns the adjacency entry toward the given neighbor.
func (n *Node) Edge(to string) (*Edge, bool) {
	e, ok := n.edges[to]
	return e, ok
}

// HasEdge reports whether an adjacency entry toward the neighbor exists.
func (n *Node) HasEdge(to string) bool {
	_, ok := n.edges[to]
	return ok
}

// Neighbors returns neighbor identifiers in insertion order.
func (n *Node) Neighbors() []string {
	out := make([]string, len(n.order))
	copy(out, n.order)
	return out
}

// Degree returns the number of adjacency entries on this node.
func (n *Node) Degree() int { return len(n.edges) }

func (n *Node) setEdge(to string, e *Edge) {
	if _, exists := n.edges[to]; !exists {
		n.order = append(n.order, to)
	}
	n.edges[to] = e
}

func (n *Node) deleteEdge(to string) bool {
	if _, exists := n.edges[to]; !exists {
		return false
	}
	delete(n.edges, to)
	for i, id := range n.order {
		if id == to {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
	return true
}

func (n *Node) clone() *Node {
	c := newNode(n.ID, n.Value.Clone())
	for k, v := range n.Properties {
		c.Properties[k] = v.Clone()
	}
	c.order = make([]string, len(n.order))
	copy(c.order, n.order)
	for to, e := range n.edges {
		c.edges[to] = e.clone()
	}
	return c
}

func (n *Node) equal(other *Node) bool {
	if n.ID != other.ID || !n.Value.Equal(other.Value) {
		return false
	}
	if len(n.Properties) != len(other.Properties) {
		return false
	}
	for k, v := range n.Properties {
		ov, ok := other.Properties[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	if len(n.edges) != len(other.edges) {
		return false
	}
	for to, e := range n.edges {
		oe, ok := other.edges[to]
		if !ok || !edgeEqual(e, oe) {
			return false
		}
	}
	return true
}

func edgeEqual(a, b *Edge) bool {
	if a.Type != b.Type {
		return false
	}
	if (a.Weight == nil) != (b.Weight == nil) {
		return false
	}
	if a.Weight != nil && *a.Weight != *b.Weight {
		return false
	}
	if len(a.Properties) != len(b.Properties) {
		return false
	}
	for k, v := range a.Properties {
		bv, ok := b.Properties[k]
		if !ok || !v.Equal(bv) {
			return false
		}
	}
	return true
}
