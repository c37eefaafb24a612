package main

import (
	"fmt"
	"os"

	"disco/internal/version"

	"github.com/spf13/cobra"
)

var statusFormat string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show workspace catalog summary",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	logger := newLogger(statusFormat)
	workspaceRoot := mustGetWorkspaceRoot()
	_, db := mustGetEngine(workspaceRoot, logger)

	columns, edges, err := db.Counts()
	if err != nil {
		return fmt.Errorf("failed to read catalog counts: %w", err)
	}

	resp := &StatusResponseCLI{
		Version: version.Version,
		Columns: columns,
		Edges:   edges,
	}

	output, err := FormatResponse(resp, OutputFormat(statusFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)
	return nil
}
