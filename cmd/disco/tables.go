package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var tablesFormat string

var tablesCmd = &cobra.Command{
	Use:   "tables [table-name]",
	Short: "List catalog tables or the columns of one table",
	Long: `Without arguments, lists every table in the workspace catalog.
With a table name, lists that table's columns.

Examples:
  disco tables
  disco tables orders`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTables,
}

func init() {
	tablesCmd.Flags().StringVar(&tablesFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(tablesCmd)
}

func runTables(cmd *cobra.Command, args []string) error {
	logger := newLogger(tablesFormat)
	workspaceRoot := mustGetWorkspaceRoot()
	_, db := mustGetEngine(workspaceRoot, logger)

	resp := &TablesResponseCLI{}

	if len(args) == 1 {
		records, err := db.ColumnsForTable(args[0])
		if err != nil {
			return fmt.Errorf("failed to read columns: %w", err)
		}
		if len(records) == 0 {
			return fmt.Errorf("no table named %s in the catalog", args[0])
		}
		for _, rec := range records {
			resp.Columns = append(resp.Columns, convertHit(rec.Hit()))
		}
	} else {
		tables, err := db.Tables()
		if err != nil {
			return fmt.Errorf("failed to list tables: %w", err)
		}
		resp.Tables = make([]TableEntryCLI, 0, len(tables))
		for _, t := range tables {
			resp.Tables = append(resp.Tables, TableEntryCLI{DBName: t[0], SourceName: t[1]})
		}
	}

	output, err := FormatResponse(resp, OutputFormat(tablesFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)
	return nil
}
