package algo

import (
	"container/heap"

	"github.com/veldt-lang/veldt/internal/graph"
)

// Dijkstra finds the minimum-total-weight path from from to to,
// considering only edges that carry a weight: unweighted edges are
// invisible to this mode. A path that exists only through an unweighted
// edge is therefore not found — mixed graphs must be deliberately
// weighted before they participate in weighted pathfinding. An edge type
// filter restricts traversal further; empty means any. Returns nil when
// no all-weighted path exists.
func Dijkstra(g *graph.Graph, from, to, edgeType string) []string {
	if !g.HasNode(from) || !g.HasNode(to) {
		return nil
	}
	if from == to {
		return []string{from}
	}

	dist := map[string]float64{from: 0}
	parents := map[string]string{from: from}
	done := make(map[string]bool)

	pq := &nodeQueue{{id: from, priority: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*queueItem)
		if done[item.id] {
			continue
		}
		done[item.id] = true
		if item.id == to {
			break
		}

		n, ok := g.Node(item.id)
		if !ok {
			continue
		}
		for _, next := range n.Neighbors() {
			e, _ := n.Edge(next)
			if e.Weight == nil {
				continue
			}
			if edgeType != "" && e.Type != edgeType {
				continue
			}
			candidate := dist[item.id] + *e.Weight
			if current, seen := dist[next]; !seen || candidate < current {
				dist[next] = candidate
				parents[next] = item.id
				heap.Push(pq, &queueItem{id: next, priority: candidate})
			}
		}
	}

	if !done[to] {
		return nil
	}
	return reconstruct(parents, from, to)
}

// PathWeight sums the weights along a path. The bool is false if any hop
// is missing or unweighted.
func PathWeight(g *graph.Graph, path []string) (float64, bool) {
	var total float64
	for i := 0; i+1 < len(path); i++ {
		w, ok := g.EdgeWeight(path[i], path[i+1])
		if !ok {
			return 0, false
		}
		total += w
	}
	return total, true
}

type queueItem struct {
	id       string
	priority float64
}

type nodeQueue []*queueItem

func (q nodeQueue) Len() int            { return len(q) }
func (q nodeQueue) Less(i, j int) bool  { return q[i].priority < q[j].priority }
func (q nodeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x any)         { *q = append(*q, x.(*queueItem)) }
func (q *nodeQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}
