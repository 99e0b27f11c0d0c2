// Package loader reads declarative YAML graph documents for the CLI and
// tests: directedness, applied rulesets, nodes with values and
// properties, and typed, optionally weighted edges.
package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/veldt-lang/veldt/internal/graph"
	"github.com/veldt-lang/veldt/internal/rules"
	"github.com/veldt-lang/veldt/internal/value"
)

// Document is the YAML shape of a graph file.
type Document struct {
	Directed bool       `yaml:"directed"`
	Rulesets []string   `yaml:"rulesets"`
	Nodes    []NodeDoc  `yaml:"nodes"`
	Edges    []EdgeDoc  `yaml:"edges"`
}

// NodeDoc declares one node.
type NodeDoc struct {
	ID         string         `yaml:"id"`
	Value      any            `yaml:"value"`
	Properties map[string]any `yaml:"properties"`
}

// EdgeDoc declares one edge.
type EdgeDoc struct {
	From   string   `yaml:"from"`
	To     string   `yaml:"to"`
	Type   string   `yaml:"type"`
	Weight *float64 `yaml:"weight"`
}

// LoadFile parses a YAML graph document and builds the graph it
// describes. Rulesets are applied before any node is added, so every
// declared mutation passes through the validation gate; the first
// rejection aborts the build with that error.
func LoadFile(path string, opts ...graph.Option) (*graph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading graph file: %w", err)
	}
	return Load(data, opts...)
}

// Load builds a graph from YAML bytes.
func Load(data []byte, opts ...graph.Option) (*graph.Graph, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing graph file: %w", err)
	}

	g := graph.New(doc.Directed, opts...)
	for _, name := range doc.Rulesets {
		rules.Apply(g, name)
	}

	for _, n := range doc.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("node without id")
		}
		v, err := toValue(n.Value)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
		if err := g.AddNode(n.ID, v); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
		for name, raw := range n.Properties {
			pv, err := toValue(raw)
			if err != nil {
				return nil, fmt.Errorf("node %s property %s: %w", n.ID, name, err)
			}
			if err := g.SetProperty(n.ID, name, pv); err != nil {
				return nil, err
			}
		}
	}

	for _, e := range doc.Edges {
		if err := g.AddEdge(e.From, e.To, e.Type, e.Weight, nil); err != nil {
			return nil, fmt.Errorf("edge %s -> %s: %w", e.From, e.To, err)
		}
	}

	return g, nil
}

// toValue converts a decoded YAML scalar or collection into an engine
// value.
func toValue(raw any) (value.Value, error) {
	switch v := raw.(type) {
	case nil:
		return value.None(), nil
	case bool:
		return value.Bool(v), nil
	case int:
		return value.Number(float64(v)), nil
	case int64:
		return value.Number(float64(v)), nil
	case float64:
		return value.Number(v), nil
	case string:
		return value.String(v), nil
	case []any:
		items := make([]value.Value, len(v))
		for i, item := range v {
			iv, err := toValue(item)
			if err != nil {
				return value.None(), err
			}
			items[i] = iv
		}
		return value.List(items), nil
	case map[string]any:
		m := make(map[string]value.Value, len(v))
		for k, item := range v {
			iv, err := toValue(item)
			if err != nil {
				return value.None(), err
			}
			m[k] = iv
		}
		return value.Map(m), nil
	default:
		return value.None(), fmt.Errorf("unsupported value type %T", raw)
	}
}
