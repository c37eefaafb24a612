package main

import (
	"fmt"
	"os"
	"time"

	"disco/internal/catalog"
	"disco/internal/logging"
	"disco/internal/storage"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <declaration-file>",
	Short: "Ingest a catalog declaration",
	Long: `Load a catalog declaration (YAML or TOML) describing databases,
tables, columns, and relation edges, then store it into the workspace
catalog so discovery queries can run over it.

Examples:
  disco ingest warehouse.yaml
  disco ingest warehouse.toml`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	start := time.Now()
	logger := logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.InfoLevel,
	})

	decl, err := catalog.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load declaration: %w", err)
	}

	workspaceRoot, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	db, err := storage.Open(workspaceRoot, logger)
	if err != nil {
		return fmt.Errorf("failed to open catalog database: %w", err)
	}
	defer db.Close()

	columns, edges, err := catalog.Ingest(db, decl)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	fmt.Printf("Ingested %d column(s) and %d edge(s) in %dms\n",
		columns, edges, time.Since(start).Milliseconds())
	return nil
}
