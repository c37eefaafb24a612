package main

import (
	"fmt"
	"os"

	"disco/internal/drs"

	"github.com/spf13/cobra"
)

var (
	neighborsRelation string
	neighborsFormat   string
	neighborsExplain  bool
)

var neighborsCmd = &cobra.Command{
	Use:   "neighbors <input>",
	Short: "Find columns related to the input",
	Long: `Look up the neighbors of the input columns in the relation graph.
The input is a column path (db.table.field), a numeric identifier, or a
table name.

Relations: schema, schema_sim, content_sim, pkfk, entity_sim

Examples:
  disco neighbors dwh.orders.customer_id --relation=pkfk
  disco neighbors orders --relation=content_sim`,
	Args: cobra.ExactArgs(1),
	RunE: runNeighbors,
}

func init() {
	neighborsCmd.Flags().StringVar(&neighborsRelation, "relation", "pkfk", "Relation to follow")
	neighborsCmd.Flags().StringVar(&neighborsFormat, "format", "human", "Output format (json, human)")
	neighborsCmd.Flags().BoolVar(&neighborsExplain, "explain", false, "Include the provenance trail")
	rootCmd.AddCommand(neighborsCmd)
}

func runNeighbors(cmd *cobra.Command, args []string) error {
	logger := newLogger(neighborsFormat)

	rel, err := drs.ParseRelation(neighborsRelation)
	if err != nil {
		return fmt.Errorf("unknown relation %q", neighborsRelation)
	}

	workspaceRoot := mustGetWorkspaceRoot()
	engine, _ := mustGetEngine(workspaceRoot, logger)

	result, err := engine.NeighborSearch(parseInput(args[0]), rel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error finding neighbors: %v\n", err)
		os.Exit(1)
	}

	output, err := FormatResponse(convertDRS(result, neighborsExplain), OutputFormat(neighborsFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)
	return nil
}
