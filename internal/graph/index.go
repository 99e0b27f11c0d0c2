package graph

import "github.com/veldt-lang/veldt/internal/value"

// optState is the graph's adaptive-optimization state: per-property
// lookup counters and, past the threshold, a built index from stringified
// property value to node ids. It is a cache over the node property bags:
// dropping it and recomputing is observably identical, and it never
// participates in Clone or Equal.
type optState struct {
	threshold int
	counters  map[string]int
	indexes   map[string]map[string][]string
}

func newOptState(threshold int) optState {
	return optState{
		threshold: threshold,
		counters:  make(map[string]int),
		indexes:   make(map[string]map[string][]string),
	}
}

// indexKey renders a value as an index key. The kind prefix keeps values
// with identical renderings (the number 1 and the string "1") apart.
func indexKey(v value.Value) string {
	return v.Kind().String() + ":" + v.String()
}

// FindNodesByProperty returns the ids of all nodes whose property bag
// holds an equal value under the given name, in node insertion order.
//
// Each call increments the property's access counter. Once the counter
// reaches the threshold, a value index is built with one linear scan and
// consulted from then on.
func (g *Graph) FindNodesByProperty(name string, v value.Value) []string {
	g.opt.counters[name]++

	if g.opt.counters[name] >= g.opt.threshold {
		idx, ok := g.opt.indexes[name]
		if !ok {
			idx = g.buildIndex(name)
			g.opt.indexes[name] = idx
		}
		ids := idx[indexKey(v)]
		out := make([]string, len(ids))
		copy(out, ids)
		return out
	}

	return g.scanProperty(name, v)
}

func (g *Graph) scanProperty(name string, v value.Value) []string {
	var out []string
	for _, id := range g.keys {
		if pv, ok := g.nodes[id].Properties[name]; ok && pv.Equal(v) {
			out = append(out, id)
		}
	}
	return out
}

func (g *Graph) buildIndex(name string) map[string][]string {
	idx := make(map[string][]string)
	for _, id := range g.keys {
		if pv, ok := g.nodes[id].Properties[name]; ok {
			k := indexKey(pv)
			idx[k] = append(idx[k], id)
		}
	}
	return idx
}

// PropertyAccessCount returns how many lookups have hit the property.
func (g *Graph) PropertyAccessCount(name string) int {
	return g.opt.counters[name]
}

// PropertyIndexBuilt reports whether an index has been built for the
// property.
func (g *Graph) PropertyIndexBuilt(name string) bool {
	_, ok := g.opt.indexes[name]
	return ok
}

// IndexThreshold returns the lookup count at which indexes are built.
func (g *Graph) IndexThreshold() int { return g.opt.threshold }

// invalidateIndex drops the built index for one property. The counter is
// kept, so the next lookup past the threshold rebuilds it.
func (g *Graph) invalidateIndex(name string) {
	delete(g.opt.indexes, name)
}

// invalidateNodeIndexes drops built indexes for every property the node
// carried.
func (g *Graph) invalidateNodeIndexes(n *Node) {
	for name := range n.Properties {
		g.invalidateIndex(name)
	}
}
