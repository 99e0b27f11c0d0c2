// Package graph implements the mutable graph store at the core of the
// engine: nodes, mirrored undirected edges, the validation gate that runs
// active rules before every mutation, behavior application on insertion,
// and the adaptive property index.
//
// A Graph is owned by a single interpreter thread. It performs no
// internal locking; concurrent access from multiple goroutines must be
// serialized by the embedder.
package graph

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/veldt-lang/veldt/internal/constants"
	"github.com/veldt-lang/veldt/internal/logging"
	"github.com/veldt-lang/veldt/internal/value"
)

type appliedRuleset struct {
	name  string
	rules []RuleInstance
}

// Graph is the owning aggregate: a directedness flag fixed at
// construction, the node map, applied rulesets, ad hoc rules, attached
// behaviors, and adaptive-optimization state. The optimization state is a
// cache and never participates in identity or equality.
type Graph struct {
	directed  bool
	nodes     map[string]*Node
	keys      []string
	edgeCount int

	rulesets  []appliedRuleset
	adhoc     []RuleInstance
	behaviors []Behavior

	logger *slog.Logger
	trace  *logging.ViolationLogger
	opt    optState
}

// Option configures a Graph at construction.
type Option func(*Graph)

// WithLogger sets the operational logger. Warning-severity rejections are
// reported through it.
func WithLogger(l *slog.Logger) Option {
	return func(g *Graph) { g.logger = l }
}

// WithViolationTrace attaches a JSONL trace that records every rejected
// mutation regardless of severity.
func WithViolationTrace(vl *logging.ViolationLogger) Option {
	return func(g *Graph) { g.trace = vl }
}

// WithIndexThreshold overrides the lookup count after which the adaptive
// property index is built.
func WithIndexThreshold(n int) Option {
	return func(g *Graph) { g.opt.threshold = n }
}

// New creates an empty graph. The directedness flag cannot change after
// construction.
func New(directed bool, opts ...Option) *Graph {
	g := &Graph{
		directed: directed,
		nodes:    make(map[string]*Node),
		opt:      newOptState(constants.IndexThreshold),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// Directed reports whether the graph is directed.
func (g *Graph) Directed() bool { return g.directed }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges. Mirrored undirected entries
// count as one edge.
func (g *Graph) EdgeCount() int { return g.edgeCount }

// HasNode reports whether a node with the given id exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Node returns the node record for id. The returned pointer aliases store
// state; callers must not mutate adjacency through it.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// HasEdge reports whether an edge from one node to another exists. On
// undirected graphs this is symmetric.
func (g *Graph) HasEdge(from, to string) bool {
	n, ok := g.nodes[from]
	return ok && n.HasEdge(to)
}

// Neighbors returns the neighbor ids of a node in adjacency insertion
// order, or nil if the node does not exist.
func (g *Graph) Neighbors(id string) []string {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return n.Neighbors()
}

// Keys returns all node ids in insertion order.
func (g *Graph) Keys() []string {
	out := make([]string, len(g.keys))
	copy(out, g.keys)
	return out
}

// Values returns all node values in insertion order.
func (g *Graph) Values() []value.Value {
	out := make([]value.Value, 0, len(g.keys))
	for _, id := range g.keys {
		out = append(out, g.nodes[id].Value)
	}
	return out
}

// AddNode validates and inserts a node. The candidate value passes
// through attached behaviors first; validation sees the transformed
// value. On rejection the graph is unchanged.
func (g *Graph) AddNode(id string, v value.Value) error {
	if id == "" {
		return Runtimef("node id must not be empty")
	}
	if _, exists := g.nodes[id]; exists {
		return Runtimef("node already exists: %s", id)
	}

	v, err := g.applyBehaviors(v)
	if err != nil {
		return err
	}

	if err := g.validate(Mutation{Op: OpAddNode, NodeID: id, Value: v}); err != nil {
		return err
	}

	g.nodes[id] = newNode(id, v)
	g.keys = append(g.keys, id)
	return nil
}

// AddEdge validates and inserts an edge. Both endpoints must already
// exist. On undirected graphs the adjacency entry is mirrored onto the
// target as a single logical step: validation failure leaves both sides
// untouched. Inserting over an existing edge replaces its payload.
func (g *Graph) AddEdge(from, to, edgeType string, weight *float64, props map[string]value.Value) error {
	src, ok := g.nodes[from]
	if !ok {
		return Runtimef("node not found: %s", from)
	}
	dst, ok := g.nodes[to]
	if !ok {
		return Runtimef("node not found: %s", to)
	}

	m := Mutation{Op: OpAddEdge, From: from, To: to, EdgeType: edgeType, Weight: weight, Props: props}
	if err := g.validate(m); err != nil {
		return err
	}

	existed := src.HasEdge(to)
	e := &Edge{Type: edgeType, Properties: props}
	if weight != nil {
		w := *weight
		e.Weight = &w
	}
	src.setEdge(to, e)
	if !g.directed && from != to {
		dst.setEdge(from, e.clone())
	}
	if !existed {
		g.edgeCount++
	}
	return nil
}

// RemoveNode validates and removes a node, stripping every edge that
// references it from all other adjacency maps. Removing a missing node
// returns (nil, nil).
func (g *Graph) RemoveNode(id string) (*Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, nil
	}

	if err := g.validate(Mutation{Op: OpRemoveNode, NodeID: id, Value: n.Value}); err != nil {
		return nil, err
	}

	g.edgeCount -= n.Degree()
	delete(g.nodes, id)
	for i, k := range g.keys {
		if k == id {
			g.keys = append(g.keys[:i], g.keys[i+1:]...)
			break
		}
	}
	for _, other := range g.nodes {
		if other.deleteEdge(id) && g.directed {
			// Undirected mirrors were already counted via n.Degree.
			g.edgeCount--
		}
	}
	g.invalidateNodeIndexes(n)
	return n, nil
}

// RemoveEdge validates and removes an edge, returning whether an edge
// existed. Missing endpoints or a missing edge return (false, nil).
func (g *Graph) RemoveEdge(from, to string) (bool, error) {
	src, ok := g.nodes[from]
	if !ok || !src.HasEdge(to) {
		return false, nil
	}

	m := Mutation{Op: OpRemoveEdge, From: from, To: to}
	if err := g.validate(m); err != nil {
		return false, err
	}

	src.deleteEdge(to)
	if !g.directed && from != to {
		g.nodes[to].deleteEdge(from)
	}
	g.edgeCount--
	return true, nil
}

// EdgeWeight returns the weight of an edge. The bool is false when the
// edge does not exist or carries no weight.
func (g *Graph) EdgeWeight(from, to string) (float64, bool) {
	n, ok := g.nodes[from]
	if !ok {
		return 0, false
	}
	e, ok := n.Edge(to)
	if !ok || e.Weight == nil {
		return 0, false
	}
	return *e.Weight, true
}

// IsWeighted reports whether an edge exists and carries a weight.
func (g *Graph) IsWeighted(from, to string) bool {
	_, ok := g.EdgeWeight(from, to)
	return ok
}

// SetEdgeWeight sets the weight of an existing edge, updating the
// mirrored entry on undirected graphs in the same step. A missing edge is
// a runtime error, not a rule rejection.
func (g *Graph) SetEdgeWeight(from, to string, w float64) error {
	e, me, err := g.edgePair(from, to)
	if err != nil {
		return err
	}
	v := w
	e.Weight = &v
	if me != nil {
		mv := w
		me.Weight = &mv
	}
	return nil
}

// RemoveEdgeWeight clears the weight of an existing edge on both sides.
// A missing edge is a runtime error.
func (g *Graph) RemoveEdgeWeight(from, to string) error {
	e, me, err := g.edgePair(from, to)
	if err != nil {
		return err
	}
	e.Weight = nil
	if me != nil {
		me.Weight = nil
	}
	return nil
}

// edgePair resolves the forward edge and, on undirected graphs, its
// mirror.
func (g *Graph) edgePair(from, to string) (*Edge, *Edge, error) {
	n, ok := g.nodes[from]
	if !ok {
		return nil, nil, Runtimef("node not found: %s", from)
	}
	e, ok := n.Edge(to)
	if !ok {
		return nil, nil, Runtimef("edge not found: %s -> %s", from, to)
	}
	if !g.directed && from != to {
		me, _ := g.nodes[to].Edge(from)
		return e, me, nil
	}
	return e, nil, nil
}

// SetProperty sets a property on an existing node.
func (g *Graph) SetProperty(id, name string, v value.Value) error {
	n, ok := g.nodes[id]
	if !ok {
		return Runtimef("node not found: %s", id)
	}
	n.Properties[name] = v
	g.invalidateIndex(name)
	return nil
}

// GetProperty returns a node property. The bool is false when the node or
// the property does not exist.
func (g *Graph) GetProperty(id, name string) (value.Value, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return value.None(), false
	}
	v, ok := n.Properties[name]
	return v, ok
}

// Insert is the tree-convenience wrapper: it generates a fresh
// identifier, adds the node, and — when parent is non-empty — links it
// under the parent with a "child"-typed edge. A failing sub-step aborts
// the whole call with that sub-step's error and leaves the graph
// unchanged.
func (g *Graph) Insert(v value.Value, parent string) (string, error) {
	id := uuid.NewString()
	if err := g.AddNode(id, v); err != nil {
		return "", err
	}
	if parent != "" {
		if err := g.AddEdge(parent, id, constants.ChildEdgeType, nil, nil); err != nil {
			// Roll the fresh node back so a rejected link does not leave
			// an orphan behind.
			delete(g.nodes, id)
			g.keys = g.keys[:len(g.keys)-1]
			return "", err
		}
	}
	return id, nil
}

// validate runs the effective rule set against a candidate mutation in
// pre-mutation state. The first failing rule rejects the mutation;
// severity only controls the logging side channel.
func (g *Graph) validate(m Mutation) error {
	for _, inst := range g.EffectiveRules() {
		if !inst.Rule.AppliesTo(m.Op) {
			continue
		}
		if err := inst.Rule.Validate(g, m); err != nil {
			g.reportViolation(inst, m, err)
			return &RuleViolationError{Rule: inst.Rule.Name(), Message: err.Error()}
		}
	}
	return nil
}

func (g *Graph) reportViolation(inst RuleInstance, m Mutation, err error) {
	g.trace.Log(map[string]any{
		"rule":     inst.Rule.Name(),
		"severity": inst.Severity.String(),
		"op":       m.Op.String(),
		"node":     m.NodeID,
		"from":     m.From,
		"to":       m.To,
		"message":  err.Error(),
	})
	if inst.Severity == SeverityWarning {
		g.logger.Warn("mutation rejected",
			"rule", inst.Rule.Name(),
			"op", m.Op.String(),
			"message", err.Error())
	}
}
