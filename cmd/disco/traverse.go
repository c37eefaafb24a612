package main

import (
	"fmt"
	"os"

	"disco/internal/drs"

	"github.com/spf13/cobra"
)

var (
	traverseRelation string
	traverseMaxHops  int
	traverseFormat   string
	traverseExplain  bool
)

var traverseCmd = &cobra.Command{
	Use:   "traverse <input>",
	Short: "Walk the relation graph outward from the input",
	Long: `Repeatedly expand the input's neighborhood along one relation,
collecting every column reached within the hop budget.

Examples:
  disco traverse dwh.orders.customer_id --relation=content_sim --max-hops=2`,
	Args: cobra.ExactArgs(1),
	RunE: runTraverse,
}

func init() {
	traverseCmd.Flags().StringVar(&traverseRelation, "relation", "content_sim", "Relation to follow")
	traverseCmd.Flags().IntVar(&traverseMaxHops, "max-hops", 0, "Hop budget (0 uses the config default)")
	traverseCmd.Flags().StringVar(&traverseFormat, "format", "human", "Output format (json, human)")
	traverseCmd.Flags().BoolVar(&traverseExplain, "explain", false, "Include the provenance trail")
	rootCmd.AddCommand(traverseCmd)
}

func runTraverse(cmd *cobra.Command, args []string) error {
	logger := newLogger(traverseFormat)

	rel, err := drs.ParseRelation(traverseRelation)
	if err != nil {
		return fmt.Errorf("unknown relation %q", traverseRelation)
	}

	workspaceRoot := mustGetWorkspaceRoot()
	engine, _ := mustGetEngine(workspaceRoot, logger)

	maxHops := effectiveMax(traverseMaxHops, sharedConfig.Traversal.MaxHops)
	result, err := engine.Traverse(parseInput(args[0]), rel, maxHops)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error traversing: %v\n", err)
		os.Exit(1)
	}

	output, err := FormatResponse(convertDRS(result, traverseExplain), OutputFormat(traverseFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)
	return nil
}
