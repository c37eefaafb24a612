package main

import (
	"fmt"
	"strings"

	"disco/internal/export"

	"github.com/spf13/cobra"
)

var exportGzip bool

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export the workspace catalog to a file",
	Long: `Write a snapshot of the catalog (columns, edges, annotations,
comments, and tags) as JSON. A .gz destination, or --gzip, compresses
the output.

Examples:
  disco export catalog.json
  disco export catalog.json.gz`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&exportGzip, "gzip", false, "Compress the output")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	logger := newLogger("human")
	path := args[0]

	workspaceRoot := mustGetWorkspaceRoot()
	_, db := mustGetEngine(workspaceRoot, logger)

	doc, err := export.Snapshot(db)
	if err != nil {
		return fmt.Errorf("failed to snapshot catalog: %w", err)
	}

	compress := exportGzip || sharedConfig.Export.Compress || strings.HasSuffix(path, ".gz")
	if err := export.WriteFile(path, doc, compress); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	fmt.Printf("Exported %d column(s), %d edge(s), %d annotation(s) to %s\n",
		len(doc.Columns), len(doc.Edges), len(doc.Annotations), path)
	return nil
}
