package main

import (
	"disco/internal/version"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "disco",
	Short: "disco - data discovery over field networks",
	Long: `disco indexes the columns of your data sources into a searchable
catalog and a relation graph, then lets you compose discovery queries:
keyword search, neighbor lookups, path finding, set combinators, and
curated annotations over the results.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("disco version {{.Version}}\n")
}
