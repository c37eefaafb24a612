package main

import (
	"fmt"
	"os"

	"disco/internal/algebra"
	"disco/internal/drs"

	"github.com/spf13/cobra"
)

var (
	combineFormat  string
	combineExplain bool
)

var unionCmd = &cobra.Command{
	Use:   "union <input-a> <input-b>",
	Short: "Union of two result sets",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCombine(args, func(e *algebra.Algebra, a, b algebra.Input) (*drs.DRS, error) {
			return e.Union(a, b)
		})
	},
}

var intersectCmd = &cobra.Command{
	Use:   "intersect <input-a> <input-b>",
	Short: "Intersection of two result sets",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCombine(args, func(e *algebra.Algebra, a, b algebra.Input) (*drs.DRS, error) {
			return e.Intersection(a, b)
		})
	},
}

var diffCmd = &cobra.Command{
	Use:   "diff <input-a> <input-b>",
	Short: "Difference of two result sets",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCombine(args, func(e *algebra.Algebra, a, b algebra.Input) (*drs.DRS, error) {
			return e.Difference(a, b)
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{unionCmd, intersectCmd, diffCmd} {
		c.Flags().StringVar(&combineFormat, "format", "human", "Output format (json, human)")
		c.Flags().BoolVar(&combineExplain, "explain", false, "Include the provenance trail")
		rootCmd.AddCommand(c)
	}
}

func runCombine(args []string, op func(*algebra.Algebra, algebra.Input, algebra.Input) (*drs.DRS, error)) error {
	logger := newLogger(combineFormat)

	workspaceRoot := mustGetWorkspaceRoot()
	engine, _ := mustGetEngine(workspaceRoot, logger)

	result, err := op(engine, parseInput(args[0]), parseInput(args[1]))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error combining results: %v\n", err)
		os.Exit(1)
	}

	output, err := FormatResponse(convertDRS(result, combineExplain), OutputFormat(combineFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)
	return nil
}
