package rules

import (
	"fmt"
	"strings"

	"github.com/veldt-lang/veldt/internal/value"
)

// UnknownRuleError reports a symbol that does not resolve to any rule
// spec. It is a distinct error kind so the interpreter can surface it as
// an "unknown rule" failure rather than a generic runtime error.
type UnknownRuleError struct {
	Symbol string
}

func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("unknown rule: %s", e.Symbol)
}

// FromSymbol maps a surface symbol (with or without the leading colon) to
// a rule spec. Parameterized rules take their parameters in order:
// max_degree takes one number, validate_range takes min and max.
func FromSymbol(symbol string, params ...value.Value) (Spec, error) {
	name := strings.TrimPrefix(symbol, ":")

	switch name {
	case "no_cycles":
		return Spec{Kind: NoCycles}, nil
	case "single_root":
		return Spec{Kind: SingleRoot}, nil
	case "connected":
		return Spec{Kind: Connected}, nil
	case "binary_tree":
		return Spec{Kind: BinaryTree}, nil
	case "bst_ordering":
		return Spec{Kind: BSTOrdering}, nil
	case "no_duplicates":
		return Spec{Kind: NoDuplicates}, nil
	case "weighted_edges":
		return Spec{Kind: WeightedEdges}, nil
	case "unweighted_edges":
		return Spec{Kind: UnweightedEdges}, nil

	case "max_degree":
		if len(params) != 1 {
			return Spec{}, fmt.Errorf("max_degree requires one numeric parameter")
		}
		n, ok := params[0].AsNumber()
		if !ok {
			return Spec{}, fmt.Errorf("max_degree parameter must be numeric, got %s", params[0].Kind())
		}
		return Spec{Kind: MaxDegree, Degree: int(n)}, nil

	case "validate_range":
		if len(params) != 2 {
			return Spec{}, fmt.Errorf("validate_range requires min and max parameters")
		}
		min, minOK := params[0].AsNumber()
		max, maxOK := params[1].AsNumber()
		if !minOK || !maxOK {
			return Spec{}, fmt.Errorf("validate_range parameters must be numeric")
		}
		return Spec{Kind: ValidateRange, Min: min, Max: max}, nil
	}

	return Spec{}, &UnknownRuleError{Symbol: symbol}
}
