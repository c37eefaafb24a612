package main

import (
	"fmt"
	"os"

	"disco/internal/algebra"
	"disco/internal/metadata"

	"github.com/spf13/cobra"
)

var (
	annotateAuthor   string
	annotateText     string
	annotateClass    string
	annotateRelation string
	annotateTarget   string
	annotateFormat   string
)

var annotateCmd = &cobra.Command{
	Use:   "annotate <input>",
	Short: "Attach an annotation to columns",
	Long: `Store an annotation on every column of the input. With --relation
and --target, one annotation is stored per (source, target) column pair.

Classes:   warning, insight, question
Relations: means_same_as, is_subclass_of, is_superclass_of,
           is_member_of, is_container_of

Examples:
  disco annotate dwh.orders.total --author=ana --class=warning --text="includes tax"
  disco annotate dwh.orders.customer_id --author=ana --class=insight \
      --text="same entity" --relation=means_same_as --target=dwh.customers.customer_id`,
	Args: cobra.ExactArgs(1),
	RunE: runAnnotate,
}

func init() {
	annotateCmd.Flags().StringVar(&annotateAuthor, "author", "", "Annotation author (required)")
	annotateCmd.Flags().StringVar(&annotateText, "text", "", "Annotation text (required)")
	annotateCmd.Flags().StringVar(&annotateClass, "class", "insight", "Annotation class (warning, insight, question)")
	annotateCmd.Flags().StringVar(&annotateRelation, "relation", "", "Relation to the target input")
	annotateCmd.Flags().StringVar(&annotateTarget, "target", "", "Target input of a relational annotation")
	annotateCmd.Flags().StringVar(&annotateFormat, "format", "human", "Output format (json, human)")
	annotateCmd.MarkFlagRequired("author")
	annotateCmd.MarkFlagRequired("text")
	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	logger := newLogger(annotateFormat)

	class, err := metadata.ParseMDClass(annotateClass)
	if err != nil {
		return fmt.Errorf("unknown class %q", annotateClass)
	}

	var ref *algebra.AnnotationRef
	if annotateRelation != "" {
		if annotateTarget == "" {
			return fmt.Errorf("--relation requires --target")
		}
		rel, relErr := metadata.ParseMDRelation(annotateRelation)
		if relErr != nil {
			return fmt.Errorf("unknown relation %q", annotateRelation)
		}
		ref = &algebra.AnnotationRef{
			Target:   parseInput(annotateTarget),
			Relation: rel,
		}
	} else if annotateTarget != "" {
		return fmt.Errorf("--target requires --relation")
	}

	workspaceRoot := mustGetWorkspaceRoot()
	engine, _ := mustGetEngine(workspaceRoot, logger)

	result, err := engine.Annotate(annotateAuthor, annotateText, class, parseInput(args[0]), ref)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error storing annotation: %v\n", err)
		os.Exit(1)
	}

	output, err := FormatResponse(convertMRS(result), OutputFormat(annotateFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)
	return nil
}
