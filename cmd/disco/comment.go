package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	commentAuthor string
	commentFormat string
)

var commentCmd = &cobra.Command{
	Use:   "comment <annotation-id> <text>...",
	Short: "Add comments to an annotation",
	Long: `Attach one or more comments to a stored annotation.

Examples:
  disco comment 7f3c... --author=ana "confirmed with the owning team"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runComment,
}

func init() {
	commentCmd.Flags().StringVar(&commentAuthor, "author", "", "Comment author (required)")
	commentCmd.Flags().StringVar(&commentFormat, "format", "human", "Output format (json, human)")
	commentCmd.MarkFlagRequired("author")
	rootCmd.AddCommand(commentCmd)
}

func runComment(cmd *cobra.Command, args []string) error {
	logger := newLogger(commentFormat)

	workspaceRoot := mustGetWorkspaceRoot()
	engine, _ := mustGetEngine(workspaceRoot, logger)

	result, err := engine.AddComments(commentAuthor, args[1:], args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding comments: %v\n", err)
		os.Exit(1)
	}

	output, err := FormatResponse(convertMRS(result), OutputFormat(commentFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)
	return nil
}
