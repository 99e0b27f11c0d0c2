package algo

import "github.com/veldt-lang/veldt/internal/graph"

// TopologicalSort orders the nodes with Kahn's algorithm so that every
// edge points from an earlier to a later position. The second return is
// false when the graph contains a cycle, disambiguating a cyclic graph
// from an empty one (both yield an empty order). For a cycle-free graph
// the order holds exactly NodeCount ids, each once.
func TopologicalSort(g *graph.Graph) ([]string, bool) {
	keys := g.Keys()
	indeg := make(map[string]int, len(keys))
	for _, id := range keys {
		indeg[id] = 0
	}
	for _, id := range keys {
		for _, to := range g.Neighbors(id) {
			indeg[to]++
		}
	}

	var queue []string
	for _, id := range keys {
		if indeg[id] == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]string, 0, len(keys))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)

		for _, to := range g.Neighbors(current) {
			indeg[to]--
			if indeg[to] == 0 {
				queue = append(queue, to)
			}
		}
	}

	if len(order) != len(keys) {
		return nil, false
	}
	return order, true
}
