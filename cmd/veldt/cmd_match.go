package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/veldt-lang/veldt/internal/pattern"
	"github.com/veldt-lang/veldt/internal/value"
)

func newMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <graph.yaml> <pattern>",
		Short: "Match a structural pattern against a graph",
		Long: `Match a structural pattern against a graph.

Patterns alternate node and edge tokens:
  (a)              node bound to variable a
  (a:person)       node with type property "person"
  -[:knows]->      outgoing edge of type knows
  <-[:knows]-      incoming edge of type knows
  -[:knows]-       edge in either direction
  -->, <--, --     untyped edges

Examples:
  veldt match graph.yaml '(a)-[:child]->(b)'
  veldt match graph.yaml '(a:person)-[:knows]-(b:person)'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			g, err := loadGraph(cmd, args[0])
			if err != nil {
				return err
			}

			tokens, err := parsePattern(args[1])
			if err != nil {
				return err
			}

			bindings, err := pattern.Match(g, tokens)
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]any{
					"matches":  len(bindings),
					"bindings": bindings,
				})
			}
			if len(bindings) == 0 {
				fmt.Println("no matches")
				return nil
			}
			for _, b := range bindings {
				parts := make([]string, 0, len(b))
				for k, v := range b {
					parts = append(parts, k+"="+v)
				}
				fmt.Println(strings.Join(parts, " "))
			}
			return nil
		},
	}
}

// parsePattern turns a textual pattern like "(a:person)-[:knows]->(b)"
// into the token sequence the matcher consumes.
func parsePattern(s string) ([]value.Value, error) {
	var tokens []value.Value
	rest := strings.TrimSpace(s)

	for {
		node, remaining, err := parseNodeToken(rest)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, value.NodeToken(node))
		rest = remaining
		if rest == "" {
			return tokens, nil
		}

		edge, remaining, err := parseEdgeToken(rest)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, value.EdgeToken(edge))
		rest = remaining
	}
}

func parseNodeToken(s string) (value.PatternNode, string, error) {
	if !strings.HasPrefix(s, "(") {
		return value.PatternNode{}, "", fmt.Errorf("expected '(' at %q", s)
	}
	end := strings.Index(s, ")")
	if end < 0 {
		return value.PatternNode{}, "", fmt.Errorf("unclosed node token in %q", s)
	}
	inner := s[1:end]
	node := value.PatternNode{Var: inner}
	if i := strings.Index(inner, ":"); i >= 0 {
		node.Var = inner[:i]
		node.Type = inner[i+1:]
	}
	if node.Var == "" {
		return value.PatternNode{}, "", fmt.Errorf("node token without a variable in %q", s)
	}
	return node, s[end+1:], nil
}

func parseEdgeToken(s string) (value.PatternEdge, string, error) {
	edge := value.PatternEdge{Direction: pattern.DirectionBoth}

	if strings.HasPrefix(s, "<-") {
		edge.Direction = pattern.DirectionIn
		s = s[2:]
	} else if strings.HasPrefix(s, "-") {
		s = s[1:]
	} else {
		return value.PatternEdge{}, "", fmt.Errorf("expected an edge token at %q", s)
	}

	if strings.HasPrefix(s, "[:") {
		end := strings.Index(s, "]")
		if end < 0 {
			return value.PatternEdge{}, "", fmt.Errorf("unclosed edge token in %q", s)
		}
		edge.Type = s[2:end]
		s = s[end+1:]
	}

	if edge.Direction == pattern.DirectionIn {
		if !strings.HasPrefix(s, "-") {
			return value.PatternEdge{}, "", fmt.Errorf("malformed incoming edge in %q", s)
		}
		return edge, s[1:], nil
	}
	if strings.HasPrefix(s, "->") {
		edge.Direction = pattern.DirectionOut
		return edge, s[2:], nil
	}
	if strings.HasPrefix(s, "-") {
		return edge, s[1:], nil
	}
	return value.PatternEdge{}, "", fmt.Errorf("malformed edge token in %q", s)
}
