package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veldt-lang/veldt/internal/config"
	"github.com/veldt-lang/veldt/internal/graph"
	"github.com/veldt-lang/veldt/internal/loader"
	"github.com/veldt-lang/veldt/internal/logging"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "veldt",
		Short: "Veldt - graph engine tooling",
		Long: `veldt inspects graph documents with the engine that backs the veldt
scripting language: rule validation, pathfinding, execution plans, and
structural pattern matching.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug, or trace")

	rootCmd.AddCommand(
		newVersionCmd(),
		newCheckCmd(),
		newPathCmd(),
		newExplainCmd(),
		newMatchCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadGraph loads a graph document with the configured logger and
// violation trace wired in.
func loadGraph(cmd *cobra.Command, path string) (*graph.Graph, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewLogger(cfg.Logging.Level, os.Stderr)
	trace := logging.NewViolationLogger(cfg.Logging.TraceDir, cfg.Logging.Level)

	return loader.LoadFile(path,
		graph.WithLogger(logger),
		graph.WithViolationTrace(trace),
		graph.WithIndexThreshold(cfg.Index.Threshold),
	)
}
