package main

import (
	"fmt"
	"os"

	"disco/internal/drs"

	"github.com/spf13/cobra"
)

var (
	pathsRelation string
	pathsMaxHops  int
	pathsFormat   string
	pathsExplain  bool
)

var pathsCmd = &cobra.Command{
	Use:   "paths <input-a> <input-b>",
	Short: "Find paths between two result sets",
	Long: `Find every path in the relation graph connecting a column of the
first input to a column of the second, within a hop budget.

Examples:
  disco paths dwh.orders.customer_id dwh.customers.customer_id --relation=pkfk
  disco paths orders customers --relation=content_sim --max-hops=4`,
	Args: cobra.ExactArgs(2),
	RunE: runPaths,
}

func init() {
	pathsCmd.Flags().StringVar(&pathsRelation, "relation", "pkfk", "Relation to follow")
	pathsCmd.Flags().IntVar(&pathsMaxHops, "max-hops", 0, "Maximum path length (0 uses the config default)")
	pathsCmd.Flags().StringVar(&pathsFormat, "format", "human", "Output format (json, human)")
	pathsCmd.Flags().BoolVar(&pathsExplain, "explain", false, "Include the provenance trail")
	rootCmd.AddCommand(pathsCmd)
}

func runPaths(cmd *cobra.Command, args []string) error {
	logger := newLogger(pathsFormat)

	rel, err := drs.ParseRelation(pathsRelation)
	if err != nil {
		return fmt.Errorf("unknown relation %q", pathsRelation)
	}

	workspaceRoot := mustGetWorkspaceRoot()
	engine, _ := mustGetEngine(workspaceRoot, logger)

	maxHops := effectiveMax(pathsMaxHops, sharedConfig.Traversal.PathMaxHops)
	result, err := engine.Paths(parseInput(args[0]), parseInput(args[1]), rel, maxHops)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error finding paths: %v\n", err)
		os.Exit(1)
	}

	output, err := FormatResponse(convertDRS(result, pathsExplain), OutputFormat(pathsFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)
	return nil
}
