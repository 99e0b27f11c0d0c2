// Package value defines the tagged dynamic value type the interpreter
// shares with the graph engine. The engine treats values opaquely except
// for equality, ordering of numbers, truthiness, and stringification
// (used as adaptive-index keys).
package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the runtime type of a Value.
type Kind int

const (
	KindNone Kind = iota
	KindNumber
	KindString
	KindBool
	KindSymbol
	KindList
	KindMap
	KindFunc
	KindPatternNode
	KindPatternEdge
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindSymbol:
		return "symbol"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindFunc:
		return "function"
	case KindPatternNode:
		return "pattern-node"
	case KindPatternEdge:
		return "pattern-edge"
	}
	return "unknown"
}

// Func is a host-language function reference. Custom and conditional
// behaviors call back through this interface.
type Func interface {
	Call(args []Value) (Value, error)
}

// PatternNode is a node token in a structural pattern: a variable name to
// bind and an optional node-type filter (empty means any).
type PatternNode struct {
	Var  string
	Type string
}

// PatternEdge is an edge token in a structural pattern: an optional edge
// type filter and a traversal direction ("out", "in", or "both").
type PatternEdge struct {
	Type      string
	Direction string
}

// Value is the tagged union passed across the interpreter boundary.
// The zero Value is None.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
	list []Value
	mp   map[string]Value
	fn   Func
	pn   PatternNode
	pe   PatternEdge
}

// None returns the none value.
func None() Value { return Value{kind: KindNone} }

// Number wraps a float64.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Int wraps an integer as a number value.
func Int(n int) Value { return Number(float64(n)) }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Symbol wraps a symbol name (without the leading colon).
func Symbol(s string) Value { return Value{kind: KindSymbol, str: s} }

// List wraps a slice of values. The slice is not copied.
func List(items []Value) Value { return Value{kind: KindList, list: items} }

// Map wraps a string-keyed map of values. The map is not copied.
func Map(m map[string]Value) Value { return Value{kind: KindMap, mp: m} }

// FuncRef wraps a host function reference.
func FuncRef(fn Func) Value { return Value{kind: KindFunc, fn: fn} }

// NodeToken wraps a pattern node token.
func NodeToken(t PatternNode) Value { return Value{kind: KindPatternNode, pn: t} }

// EdgeToken wraps a pattern edge token.
func EdgeToken(t PatternEdge) Value { return Value{kind: KindPatternEdge, pe: t} }

// Kind returns the value's kind tag.
func (v Value) Kind() Kind { return v.kind }

// IsNone reports whether the value is none.
func (v Value) IsNone() bool { return v.kind == KindNone }

// IsNumber reports whether the value is a number.
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// AsNumber returns the numeric payload. The bool is false for non-numbers.
func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// AsString returns the string payload for string and symbol values.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString && v.kind != KindSymbol {
		return "", false
	}
	return v.str, true
}

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsList returns the list payload.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// AsMap returns the map payload.
func (v Value) AsMap() (map[string]Value, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.mp, true
}

// AsFunc returns the function reference payload.
func (v Value) AsFunc() (Func, bool) {
	if v.kind != KindFunc {
		return nil, false
	}
	return v.fn, true
}

// AsNodeToken returns the pattern node token payload.
func (v Value) AsNodeToken() (PatternNode, bool) {
	if v.kind != KindPatternNode {
		return PatternNode{}, false
	}
	return v.pn, true
}

// AsEdgeToken returns the pattern edge token payload.
func (v Value) AsEdgeToken() (PatternEdge, bool) {
	if v.kind != KindPatternEdge {
		return PatternEdge{}, false
	}
	return v.pe, true
}

// Truthy reports the value's truthiness: none and false are falsy, a
// number is falsy iff zero, everything else is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNone:
		return false
	case KindBool:
		return v.b
	case KindNumber:
		return v.num != 0
	default:
		return true
	}
}

// Equal reports deep structural equality. Function references compare by
// identity; pattern tokens compare field-wise.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNone:
		return true
	case KindNumber:
		return v.num == other.num
	case KindString, KindSymbol:
		return v.str == other.str
	case KindBool:
		return v.b == other.b
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.mp) != len(other.mp) {
			return false
		}
		for k, val := range v.mp {
			ov, ok := other.mp[k]
			if !ok || !val.Equal(ov) {
				return false
			}
		}
		return true
	case KindFunc:
		return v.fn == other.fn
	case KindPatternNode:
		return v.pn == other.pn
	case KindPatternEdge:
		return v.pe == other.pe
	}
	return false
}

// String renders the value deterministically. Map keys are emitted in
// sorted order so the rendering is stable enough to serve as an index key.
func (v Value) String() string {
	switch v.kind {
	case KindNone:
		return "none"
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return v.str
	case KindSymbol:
		return ":" + v.str
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		keys := make([]string, 0, len(v.mp))
		for k := range v.mp {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + v.mp[k].String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindFunc:
		return fmt.Sprintf("<function %p>", v.fn)
	case KindPatternNode:
		return "(" + v.pn.Var + nonEmpty(":", v.pn.Type) + ")"
	case KindPatternEdge:
		return "-[" + nonEmpty(":", v.pe.Type) + " " + v.pe.Direction + "]-"
	}
	return "<invalid>"
}

func nonEmpty(prefix, s string) string {
	if s == "" {
		return ""
	}
	return prefix + s
}

// Clone returns a deep copy of the value. Function references are shared;
// lists and maps are copied recursively.
func (v Value) Clone() Value {
	switch v.kind {
	case KindList:
		items := make([]Value, len(v.list))
		for i, item := range v.list {
			items[i] = item.Clone()
		}
		return List(items)
	case KindMap:
		m := make(map[string]Value, len(v.mp))
		for k, val := range v.mp {
			m[k] = val.Clone()
		}
		return Map(m)
	default:
		return v
	}
}
