// Package constants defines shared default values used across the engine.
package constants

const (
	// IndexThreshold is the number of lookups on a single property after
	// which the adaptive index is built for it.
	IndexThreshold = 10

	// ChildEdgeType is the edge type used by Insert to link a generated
	// node under its parent.
	ChildEdgeType = "child"

	// DefaultMaxPathLength bounds AllPaths when the caller passes no
	// explicit limit.
	DefaultMaxPathLength = 10

	// MaxDegreeBinaryTree is the out-degree cap enforced by the
	// binary_tree ruleset.
	MaxDegreeBinaryTree = 2
)
