package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veldt-lang/veldt/internal/algo"
)

func newExplainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain <graph.yaml> <operation> [args...]",
		Short: "Print the execution plan an operation would take",
		Long: `Print the execution plan an operation would take.

Operations:
  find-property <name>      property lookup (scan vs. adaptive index)
  shortest-path <from> <to> pathfinding strategy selection
  bfs <start>               plain breadth-first traversal

Examples:
  veldt explain graph.yaml find-property color
  veldt explain graph.yaml shortest-path a f --weighted`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			weighted, _ := cmd.Flags().GetBool("weighted")
			edgeType, _ := cmd.Flags().GetString("type")

			g, err := loadGraph(cmd, args[0])
			if err != nil {
				return err
			}

			var plan algo.Plan
			switch args[1] {
			case "find-property":
				if len(args) != 3 {
					return fmt.Errorf("find-property requires a property name")
				}
				plan = algo.ExplainFindProperty(g, args[2])
			case "shortest-path":
				if len(args) != 4 {
					return fmt.Errorf("shortest-path requires from and to nodes")
				}
				plan = algo.ExplainShortestPath(g, args[2], args[3], algo.PathOptions{
					EdgeType: edgeType,
					Weighted: weighted,
				})
			case "bfs":
				if len(args) != 3 {
					return fmt.Errorf("bfs requires a start node")
				}
				plan = algo.ExplainBFS(g, args[2])
			default:
				return fmt.Errorf("unknown operation: %s (valid: find-property, shortest-path, bfs)", args[1])
			}

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(plan)
			}
			fmt.Print(plan.String())
			return nil
		},
	}

	cmd.Flags().Bool("weighted", false, "Explain the weighted strategy")
	cmd.Flags().String("type", "", "Explain with an edge type filter")
	return cmd
}
