package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veldt-lang/veldt/internal/graph"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <graph.yaml>",
		Short: "Load a graph document and validate it under its rulesets",
		Long: `Load a graph document and validate it under its rulesets.

The document's rulesets are applied before any node or edge is added, so
every declared mutation runs through the validation gate. The first
violation aborts the load and is reported with its rule name.

Examples:
  veldt check tree.yaml
  veldt check --json dag.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			g, err := loadGraph(cmd, args[0])
			if err != nil {
				var violation *graph.RuleViolationError
				if errors.As(err, &violation) {
					if jsonOut {
						json.NewEncoder(os.Stdout).Encode(map[string]string{
							"status":  "violation",
							"rule":    violation.Rule,
							"message": violation.Message,
						})
						return nil
					}
					fmt.Printf("violation (%s): %s\n", violation.Rule, violation.Message)
					return nil
				}
				return err
			}

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]any{
					"status": "ok",
					"nodes":  g.NodeCount(),
					"edges":  g.EdgeCount(),
					"rules":  g.ActiveRuleNames(),
				})
			}
			fmt.Printf("ok: %d nodes, %d edges, rules %v\n",
				g.NodeCount(), g.EdgeCount(), g.ActiveRuleNames())
			return nil
		},
	}
}
