package main

import (
	"fmt"
	"os"
	"time"

	"disco/internal/algebra"

	"github.com/spf13/cobra"
)

var (
	searchScope   string
	searchMax     int
	searchFormat  string
	searchExplain bool
)

var searchCmd = &cobra.Command{
	Use:   "search <keywords>",
	Short: "Search columns by keyword",
	Long: `Search the workspace catalog for columns matching the keywords.

Scopes:
  - field:  match against column names (default)
  - source: match against table names

Examples:
  disco search customer_id
  disco search customer_id --scope=source
  disco search "order total" --max=5 --explain`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchScope, "scope", "field", "Search scope (field, source)")
	searchCmd.Flags().IntVar(&searchMax, "max", 0, "Maximum number of results (0 uses the config default)")
	searchCmd.Flags().StringVar(&searchFormat, "format", "human", "Output format (json, human)")
	searchCmd.Flags().BoolVar(&searchExplain, "explain", false, "Include the provenance trail")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	start := time.Now()
	logger := newLogger(searchFormat)
	keywords := args[0]

	workspaceRoot := mustGetWorkspaceRoot()
	engine, _ := mustGetEngine(workspaceRoot, logger)

	scope, ok := algebra.ParseSearchScope(searchScope)
	if !ok {
		return fmt.Errorf("unknown scope %q (want field or source)", searchScope)
	}

	maxResults := effectiveMax(searchMax, sharedConfig.Search.MaxResults)
	result, err := engine.KeywordSearch(keywords, scope, maxResults)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching columns: %v\n", err)
		os.Exit(1)
	}

	output, err := FormatResponse(convertDRS(result, searchExplain), OutputFormat(searchFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)

	logger.Debug("Keyword search completed", map[string]interface{}{
		"keywords": keywords,
		"results":  result.Size(),
		"duration": time.Since(start).Milliseconds(),
	})
	return nil
}
