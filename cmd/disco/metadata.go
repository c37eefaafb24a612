package main

import (
	"fmt"
	"os"

	"disco/internal/algebra"
	"disco/internal/metadata"

	"github.com/spf13/cobra"
)

var (
	metadataRelation string
	metadataFormat   string
)

var metadataCmd = &cobra.Command{
	Use:   "metadata [input]",
	Short: "List annotations",
	Long: `List stored annotations. Without an input, lists everything. With
an input, lists the annotations attached to its columns; --relation
narrows the listing to one relation, oriented from the input side.

Examples:
  disco metadata
  disco metadata dwh.orders.customer_id
  disco metadata dwh.orders.customer_id --relation=means_same_as`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMetadata,
}

func init() {
	metadataCmd.Flags().StringVar(&metadataRelation, "relation", "", "Filter by annotation relation")
	metadataCmd.Flags().StringVar(&metadataFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(metadataCmd)
}

func runMetadata(cmd *cobra.Command, args []string) error {
	logger := newLogger(metadataFormat)

	in := algebra.NoInput()
	if len(args) == 1 {
		in = parseInput(args[0])
	}

	var rel *metadata.MDRelation
	if metadataRelation != "" {
		parsed, err := metadata.ParseMDRelation(metadataRelation)
		if err != nil {
			return fmt.Errorf("unknown relation %q", metadataRelation)
		}
		rel = &parsed
	}

	workspaceRoot := mustGetWorkspaceRoot()
	engine, _ := mustGetEngine(workspaceRoot, logger)

	result, err := engine.MDSearch(in, rel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing annotations: %v\n", err)
		os.Exit(1)
	}

	output, err := FormatResponse(convertMRS(result), OutputFormat(metadataFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)
	return nil
}
