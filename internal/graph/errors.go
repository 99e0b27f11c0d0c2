package graph

import "fmt"

// RuleViolationError reports a mutation rejected by an active constraint.
// It carries the offending rule's name so callers can catch violations of
// a specific rule programmatically.
type RuleViolationError struct {
	Rule    string
	Message string
}

func (e *RuleViolationError) Error() string {
	return fmt.Sprintf("rule violation (%s): %s", e.Rule, e.Message)
}

// RuntimeError reports structural misuse of the store: a missing node or
// edge on a mutation-style accessor, or invalid algorithm input. It is
// distinct from rule rejection.
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

// Runtimef builds a RuntimeError from a format string.
func Runtimef(format string, args ...any) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...)}
}
