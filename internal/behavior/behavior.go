// Package behavior defines the closed catalog of value-transforming
// behaviors. Unlike rules, behaviors never reject: they rewrite a
// candidate value before it enters the store, and can be swept over
// existing values when attached retroactively.
package behavior

import (
	"fmt"
	"strings"

	"github.com/veldt-lang/veldt/internal/graph"
	"github.com/veldt-lang/veldt/internal/value"
)

// Kind enumerates the closed set of behavior specifications.
type Kind int

const (
	MapNoneToZero Kind = iota
	Clamp
	Uppercase
	Custom
	Conditional
)

// Spec is a behavior specification. Min and Max apply to Clamp; Fn to
// Custom; Pred and Inner to Conditional.
type Spec struct {
	Kind  Kind
	Min   float64
	Max   float64
	Fn    value.Func
	Pred  value.Func
	Inner *Spec
}

// Name returns the behavior's stable snake_case identifier.
func (s Spec) Name() string {
	switch s.Kind {
	case MapNoneToZero:
		return "map_none_to_zero"
	case Clamp:
		return "clamp"
	case Uppercase:
		return "uppercase"
	case Custom:
		return "custom"
	case Conditional:
		return "conditional"
	}
	return "unknown"
}

// Instantiate builds the transformer for this spec.
func (s Spec) Instantiate() graph.Behavior {
	switch s.Kind {
	case MapNoneToZero:
		return mapNoneToZero{}
	case Clamp:
		return clamp{min: s.Min, max: s.Max}
	case Uppercase:
		return uppercase{}
	case Custom:
		return custom{fn: s.Fn}
	case Conditional:
		var inner graph.Behavior
		if s.Inner != nil {
			inner = s.Inner.Instantiate()
		}
		return conditional{pred: s.Pred, inner: inner}
	}
	return nil
}

// mapNoneToZero turns the none value into the number zero.
type mapNoneToZero struct{}

func (mapNoneToZero) Name() string { return "map_none_to_zero" }

func (mapNoneToZero) Apply(v value.Value) (value.Value, error) {
	if v.IsNone() {
		return value.Number(0), nil
	}
	return v, nil
}

// clamp pins numeric values into [min, max]. Non-numbers pass through.
type clamp struct {
	min, max float64
}

func (clamp) Name() string { return "clamp" }

func (c clamp) Apply(v value.Value) (value.Value, error) {
	n, ok := v.AsNumber()
	if !ok {
		return v, nil
	}
	if n < c.min {
		return value.Number(c.min), nil
	}
	if n > c.max {
		return value.Number(c.max), nil
	}
	return v, nil
}

// uppercase upper-cases string values. Non-strings pass through.
type uppercase struct{}

func (uppercase) Name() string { return "uppercase" }

func (uppercase) Apply(v value.Value) (value.Value, error) {
	if v.Kind() != value.KindString {
		return v, nil
	}
	s, _ := v.AsString()
	return value.String(strings.ToUpper(s)), nil
}

// custom calls back into a host-language function with the candidate
// value and stores whatever it returns.
type custom struct {
	fn value.Func
}

func (custom) Name() string { return "custom" }

func (c custom) Apply(v value.Value) (value.Value, error) {
	if c.fn == nil {
		return v, fmt.Errorf("custom behavior has no function")
	}
	out, err := c.fn.Call([]value.Value{v})
	if err != nil {
		return v, fmt.Errorf("custom behavior: %w", err)
	}
	return out, nil
}

// conditional applies the inner behavior only when the predicate returns
// a truthy value.
type conditional struct {
	pred  value.Func
	inner graph.Behavior
}

func (conditional) Name() string { return "conditional" }

func (c conditional) Apply(v value.Value) (value.Value, error) {
	if c.pred == nil || c.inner == nil {
		return v, fmt.Errorf("conditional behavior requires a predicate and an inner behavior")
	}
	result, err := c.pred.Call([]value.Value{v})
	if err != nil {
		return v, fmt.Errorf("conditional predicate: %w", err)
	}
	if !result.Truthy() {
		return v, nil
	}
	return c.inner.Apply(v)
}
