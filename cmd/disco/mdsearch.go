package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	mdsearchMax    int
	mdsearchFormat string
)

var mdsearchCmd = &cobra.Command{
	Use:   "mdsearch <keywords>",
	Short: "Search annotation text by keyword",
	Long: `Search the text of stored annotations for the keywords.

Examples:
  disco mdsearch "includes tax"
  disco mdsearch stale --max=5`,
	Args: cobra.ExactArgs(1),
	RunE: runMDSearch,
}

func init() {
	mdsearchCmd.Flags().IntVar(&mdsearchMax, "max", 0, "Maximum number of results (0 uses the config default)")
	mdsearchCmd.Flags().StringVar(&mdsearchFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(mdsearchCmd)
}

func runMDSearch(cmd *cobra.Command, args []string) error {
	logger := newLogger(mdsearchFormat)

	workspaceRoot := mustGetWorkspaceRoot()
	engine, _ := mustGetEngine(workspaceRoot, logger)

	maxResults := effectiveMax(mdsearchMax, sharedConfig.Search.MaxResultsMD)
	result, err := engine.MDKeywordSearch(args[0], maxResults)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching annotations: %v\n", err)
		os.Exit(1)
	}

	output, err := FormatResponse(convertMRS(result), OutputFormat(mdsearchFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)
	return nil
}
