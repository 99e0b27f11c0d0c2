package graph

// Clone returns a deep copy of the graph: nodes, edges, applied rulesets,
// ad hoc rules, and behaviors. Rule and behavior instances are shared
// (they are immutable specifications). Adaptive-optimization state is not
// copied; it is a cache, and the clone rebuilds its own as it is used.
// Copy-on-write collection operations in the host language are built on
// this: clone, mutate the clone, return it.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		directed:  g.directed,
		nodes:     make(map[string]*Node, len(g.nodes)),
		keys:      make([]string, len(g.keys)),
		edgeCount: g.edgeCount,
		rulesets:  make([]appliedRuleset, len(g.rulesets)),
		adhoc:     make([]RuleInstance, len(g.adhoc)),
		behaviors: make([]Behavior, len(g.behaviors)),
		logger:    g.logger,
		trace:     g.trace,
		opt:       newOptState(g.opt.threshold),
	}
	copy(c.keys, g.keys)
	copy(c.rulesets, g.rulesets)
	copy(c.adhoc, g.adhoc)
	copy(c.behaviors, g.behaviors)
	for id, n := range g.nodes {
		c.nodes[id] = n.clone()
	}
	return c
}

// Equal reports whether two graphs are equal over directedness, nodes
// (values, properties, and edges), applied ruleset names, and ad hoc rule
// identities. Adaptive-optimization state — access counters and built
// indexes — is never part of equality.
func (g *Graph) Equal(other *Graph) bool {
	if g.directed != other.directed {
		return false
	}
	if len(g.nodes) != len(other.nodes) {
		return false
	}
	for id, n := range g.nodes {
		on, ok := other.nodes[id]
		if !ok || !n.equal(on) {
			return false
		}
	}
	if len(g.rulesets) != len(other.rulesets) {
		return false
	}
	for i, rs := range g.rulesets {
		if rs.name != other.rulesets[i].name {
			return false
		}
	}
	if len(g.adhoc) != len(other.adhoc) {
		return false
	}
	for i, inst := range g.adhoc {
		if ruleKey(inst.Rule) != ruleKey(other.adhoc[i].Rule) {
			return false
		}
	}
	return true
}
