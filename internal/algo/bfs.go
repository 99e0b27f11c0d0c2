// Package algo implements the read-only algorithm suite over the graph
// store: breadth-first and depth-first traversal, Dijkstra, topological
// sort, rule-aware shortest path selection, bounded all-paths search,
// binary-tree order traversals, and the execution-plan explainers.
package algo

import "github.com/veldt-lang/veldt/internal/graph"

// BFS traverses breadth-first from start, visiting each reachable node
// once, and returns the node ids in visit order. An edge type filter
// restricts traversal to matching edges; empty means any. A missing start
// node yields nil.
func BFS(g *graph.Graph, start, edgeType string) []string {
	if !g.HasNode(start) {
		return nil
	}

	visited := map[string]bool{start: true}
	queue := []string{start}
	var order []string

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)

		for _, next := range filteredNeighbors(g, current, edgeType) {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return order
}

// bfsParents runs BFS from start and returns the parent-pointer map used
// for path reconstruction. The start maps to itself.
func bfsParents(g *graph.Graph, start, edgeType string) map[string]string {
	parents := map[string]string{start: start}
	queue := []string{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range filteredNeighbors(g, current, edgeType) {
			if _, seen := parents[next]; !seen {
				parents[next] = current
				queue = append(queue, next)
			}
		}
	}
	return parents
}

// HasPath reports whether to is reachable from from.
func HasPath(g *graph.Graph, from, to string) bool {
	if !g.HasNode(from) || !g.HasNode(to) {
		return false
	}
	if from == to {
		return true
	}
	parents := bfsParents(g, from, "")
	_, ok := parents[to]
	return ok
}

// Distance returns the number of edges on a shortest unweighted path from
// from to to: 0 for self, -1 when unreachable or when either endpoint is
// missing.
func Distance(g *graph.Graph, from, to string) int {
	if !g.HasNode(from) || !g.HasNode(to) {
		return -1
	}
	if from == to {
		return 0
	}

	dist := map[string]int{from: 0}
	queue := []string{from}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range g.Neighbors(current) {
			if _, seen := dist[next]; !seen {
				dist[next] = dist[current] + 1
				if next == to {
					return dist[next]
				}
				queue = append(queue, next)
			}
		}
	}
	return -1
}

// filteredNeighbors returns current's neighbors reachable over edges of
// the given type, in adjacency order. Empty type means all neighbors.
func filteredNeighbors(g *graph.Graph, current, edgeType string) []string {
	neighbors := g.Neighbors(current)
	if edgeType == "" {
		return neighbors
	}
	n, ok := g.Node(current)
	if !ok {
		return nil
	}
	var out []string
	for _, next := range neighbors {
		if e, ok := n.Edge(next); ok && e.Type == edgeType {
			out = append(out, next)
		}
	}
	return out
}

// reconstruct walks parent pointers from to back to from. Returns nil if
// to was never reached.
func reconstruct(parents map[string]string, from, to string) []string {
	if _, ok := parents[to]; !ok {
		return nil
	}
	var path []string
	for current := to; ; current = parents[current] {
		path = append(path, current)
		if current == from {
			break
		}
	}
	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
