package algo

import (
	"github.com/veldt-lang/veldt/internal/constants"
	"github.com/veldt-lang/veldt/internal/graph"
)

// AllPaths returns every simple path from from to to with at most maxLen
// edges, not just the shortest. maxLen <= 0 applies the default bound.
// The search is a depth-first walk with explicit backtracking: the
// current path and visited set are pushed before descending and popped
// after.
func AllPaths(g *graph.Graph, from, to string, maxLen int) [][]string {
	if !g.HasNode(from) || !g.HasNode(to) {
		return nil
	}
	if maxLen <= 0 {
		maxLen = constants.DefaultMaxPathLength
	}

	var results [][]string
	visited := map[string]bool{from: true}
	path := []string{from}

	var walk func(current string)
	walk = func(current string) {
		if current == to {
			found := make([]string, len(path))
			copy(found, path)
			results = append(results, found)
			return
		}
		if len(path)-1 >= maxLen {
			return
		}
		for _, next := range g.Neighbors(current) {
			if visited[next] {
				continue
			}
			visited[next] = true
			path = append(path, next)

			walk(next)

			path = path[:len(path)-1]
			visited[next] = false
		}
	}
	walk(from)

	return results
}
