package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var whyFormat string

var whyCmd = &cobra.Command{
	Use:   "why <input>",
	Short: "Show how a result set was derived",
	Long: `Normalize the input into a result set and print its provenance
trail. Every query command also accepts --explain to include the trail
inline with its results.

Examples:
  disco why orders
  disco why dwh.orders.customer_id`,
	Args: cobra.ExactArgs(1),
	RunE: runWhy,
}

func init() {
	whyCmd.Flags().StringVar(&whyFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(whyCmd)
}

func runWhy(cmd *cobra.Command, args []string) error {
	logger := newLogger(whyFormat)

	workspaceRoot := mustGetWorkspaceRoot()
	engine, _ := mustGetEngine(workspaceRoot, logger)

	result, err := engine.ToDRS(parseInput(args[0]))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving input: %v\n", err)
		os.Exit(1)
	}

	resp := convertDRS(result, true)
	resp.Hits = nil

	output, err := FormatResponse(resp, OutputFormat(whyFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)
	return nil
}
