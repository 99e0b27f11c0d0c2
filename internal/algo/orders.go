package algo

import "github.com/veldt-lang/veldt/internal/graph"

// Binary-tree order traversals. The first and second adjacency entries of
// each node (insertion order) are treated as the left and right children;
// callers maintain that ordering through the binary_tree and bst rules.
// A visited guard keeps the walks terminating even on malformed shapes.

// InOrder returns left subtree, node, right subtree.
func InOrder(g *graph.Graph, root string) []string {
	var order []string
	visited := make(map[string]bool)

	var walk func(id string)
	walk = func(id string) {
		if id == "" || visited[id] || !g.HasNode(id) {
			return
		}
		visited[id] = true
		left, right := childPair(g, id)
		walk(left)
		order = append(order, id)
		walk(right)
	}
	walk(root)
	return order
}

// PreOrder returns node, left subtree, right subtree.
func PreOrder(g *graph.Graph, root string) []string {
	var order []string
	visited := make(map[string]bool)

	var walk func(id string)
	walk = func(id string) {
		if id == "" || visited[id] || !g.HasNode(id) {
			return
		}
		visited[id] = true
		order = append(order, id)
		left, right := childPair(g, id)
		walk(left)
		walk(right)
	}
	walk(root)
	return order
}

// PostOrder returns left subtree, right subtree, node.
func PostOrder(g *graph.Graph, root string) []string {
	var order []string
	visited := make(map[string]bool)

	var walk func(id string)
	walk = func(id string) {
		if id == "" || visited[id] || !g.HasNode(id) {
			return
		}
		visited[id] = true
		left, right := childPair(g, id)
		walk(left)
		walk(right)
		order = append(order, id)
	}
	walk(root)
	return order
}

// childPair returns the first and second adjacency entries of a node.
// Either may be empty.
func childPair(g *graph.Graph, id string) (left, right string) {
	neighbors := g.Neighbors(id)
	if len(neighbors) > 0 {
		left = neighbors[0]
	}
	if len(neighbors) > 1 {
		right = neighbors[1]
	}
	return left, right
}
