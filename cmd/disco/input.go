package main

import (
	"strings"

	"disco/internal/algebra"
)

// parseInput maps a CLI argument to an engine input. A dotted
// "db.table.field" path names one column; anything else is resolved by
// the engine as an identifier or a table name.
func parseInput(s string) algebra.Input {
	if parts := strings.Split(s, "."); len(parts) == 3 {
		return algebra.FromNode(parts[0], parts[1], parts[2])
	}
	return algebra.FromString(s)
}
