package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/veldt-lang/veldt/internal/algo"
)

func newPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path <graph.yaml> <from> <to>",
		Short: "Find a shortest path between two nodes",
		Long: `Find a shortest path between two nodes.

The algorithm is chosen from the flags and the graph's active rules:
Dijkstra for --weighted, type-filtered BFS for --type, a topological
dynamic program when no_cycles is active, plain BFS otherwise.

Examples:
  veldt path graph.yaml a f
  veldt path graph.yaml a f --weighted
  veldt path graph.yaml a f --type child`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			weighted, _ := cmd.Flags().GetBool("weighted")
			edgeType, _ := cmd.Flags().GetString("type")

			g, err := loadGraph(cmd, args[0])
			if err != nil {
				return err
			}

			path := algo.ShortestPath(g, args[1], args[2], algo.PathOptions{
				EdgeType: edgeType,
				Weighted: weighted,
			})

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]any{
					"found": path != nil,
					"path":  path,
				})
			}
			if path == nil {
				fmt.Printf("no path from %s to %s\n", args[1], args[2])
				return nil
			}
			fmt.Println(strings.Join(path, " -> "))
			if weighted {
				if total, ok := algo.PathWeight(g, path); ok {
					fmt.Printf("total weight: %g\n", total)
				}
			}
			return nil
		},
	}

	cmd.Flags().Bool("weighted", false, "Use Dijkstra over weighted edges")
	cmd.Flags().String("type", "", "Restrict traversal to edges of this type")
	return cmd
}
