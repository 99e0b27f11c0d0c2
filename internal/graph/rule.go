package graph

import "github.com/veldt-lang/veldt/internal/value"

// Op identifies the kind of mutation a rule is asked to validate.
type Op int

const (
	OpAddNode Op = iota
	OpAddEdge
	OpRemoveNode
	OpRemoveEdge
)

// String returns the snake_case operation name.
func (op Op) String() string {
	switch op {
	case OpAddNode:
		return "add_node"
	case OpAddEdge:
		return "add_edge"
	case OpRemoveNode:
		return "remove_node"
	case OpRemoveEdge:
		return "remove_edge"
	}
	return "unknown"
}

// Mutation carries the full operand data of a candidate operation. Rules
// validate it against the pre-mutation graph state.
type Mutation struct {
	Op     Op
	NodeID string      // AddNode / RemoveNode
	Value  value.Value // AddNode candidate value (after behaviors)
	From   string      // AddEdge / RemoveEdge
	To     string
	EdgeType string
	Weight   *float64
	Props    map[string]value.Value
}

// Rule validates candidate mutations against the pre-mutation graph.
// Implementations must not mutate the graph.
type Rule interface {
	// Name is the rule's stable identifier, e.g. "no_cycles".
	Name() string
	// AppliesTo reports whether the rule cares about the given operation
	// kind. Rules that return false are skipped entirely.
	AppliesTo(op Op) bool
	// Validate returns a non-nil error describing the violation if the
	// mutation must be rejected.
	Validate(g *Graph, m Mutation) error
}

// RetroChecker is implemented by rules that can inspect a graph for
// pre-existing violations when attached after the fact.
type RetroChecker interface {
	// CheckExisting returns one message per violation found in the
	// current graph state.
	CheckExisting(g *Graph) []string
}

// Cleaner is implemented by rules that can remove pre-existing violations
// from a graph (e.g. no_duplicates dropping later duplicate nodes).
type Cleaner interface {
	Clean(g *Graph) error
}

// Severity controls the logging side channel of a rejection. It never
// changes the accept/reject outcome: every violation is a hard rejection.
// Warning logs before rejecting; Silent rejects quietly; Error currently
// behaves like Silent and is reserved for future hard-fail semantics.
type Severity int

const (
	SeveritySilent Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeveritySilent:
		return "silent"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return "unknown"
}

// RuleInstance pairs a rule with a severity.
type RuleInstance struct {
	Rule     Rule
	Severity Severity
}

// RetroPolicy governs what happens to pre-existing data when a rule or
// behavior is attached to a graph that already contains values it would
// reject or change.
type RetroPolicy int

const (
	// RetroClean transforms or removes existing violators. If cleaning is
	// unsupported and no violations exist, the attach proceeds silently;
	// if violations exist and cannot be cleaned, the attach is skipped
	// with a warning (not an error), keeping attachment idempotent.
	RetroClean RetroPolicy = iota
	// RetroWarn attaches and logs pre-existing violations without
	// modifying data.
	RetroWarn
	// RetroEnforce attaches only if no violations exist, erroring
	// otherwise.
	RetroEnforce
	// RetroIgnore attaches unconditionally.
	RetroIgnore
)

// String returns the lowercase policy name.
func (p RetroPolicy) String() string {
	switch p {
	case RetroClean:
		return "clean"
	case RetroWarn:
		return "warn"
	case RetroEnforce:
		return "enforce"
	case RetroIgnore:
		return "ignore"
	}
	return "unknown"
}

// Behavior transforms candidate values before they enter the store.
// Behaviors never reject; a failing transform surfaces as an error from
// the host function it wraps.
type Behavior interface {
	// Name is the behavior's stable identifier, e.g. "clamp".
	Name() string
	// Apply returns the transformed value.
	Apply(v value.Value) (value.Value, error)
}
