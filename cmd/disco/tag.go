package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var tagAuthor string

var tagCmd = &cobra.Command{
	Use:   "tag <annotation-id> <tag>...",
	Short: "Tag an annotation",
	Long: `Attach one or more tags to a stored annotation. Repeated tags are
stored once.

Examples:
  disco tag 7f3c... --author=ana pii finance`,
	Args: cobra.MinimumNArgs(2),
	RunE: runTag,
}

func init() {
	tagCmd.Flags().StringVar(&tagAuthor, "author", "", "Tag author (required)")
	tagCmd.MarkFlagRequired("author")
	rootCmd.AddCommand(tagCmd)
}

func runTag(cmd *cobra.Command, args []string) error {
	logger := newLogger("human")

	workspaceRoot := mustGetWorkspaceRoot()
	engine, _ := mustGetEngine(workspaceRoot, logger)

	if err := engine.AddTags(tagAuthor, args[1:], args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error adding tags: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Tagged annotation %s with %d tag(s)\n", args[0], len(args[1:]))
	return nil
}
