// Package drs implements the domain result set: the canonical container
// for discovery results, with mode tagging and provenance tracking.
package drs

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Hit identifies one catalog node: a column, or a table placeholder when
// FieldName is empty. Identity for all set operations is Nid alone; Score
// and the names are payload.
type Hit struct {
	Nid        uint64  `json:"nid"`
	DBName     string  `json:"dbName"`
	SourceName string  `json:"sourceName"`
	FieldName  string  `json:"fieldName,omitempty"`
	Score      float64 `json:"score"`
}

// FieldID derives the stable identifier for a catalog node from its names.
// It is a pure function of the three names, so identifiers can be computed
// without a catalog lookup.
func FieldID(db, source, field string) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(db)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(source)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(field)
	return h.Sum64()
}

// NewHit builds a column Hit with its identifier derived from the names.
func NewHit(db, source, field string, score float64) Hit {
	return Hit{
		Nid:        FieldID(db, source, field),
		DBName:     db,
		SourceName: source,
		FieldName:  field,
		Score:      score,
	}
}

// NewTableHit builds a placeholder Hit denoting an entire table.
func NewTableHit(db, source string) Hit {
	return Hit{
		Nid:        FieldID(db, source, ""),
		DBName:     db,
		SourceName: source,
	}
}

// IsTable reports whether the Hit denotes an entire table.
func (h Hit) IsTable() bool {
	return h.FieldName == ""
}

// String renders the Hit for logs and human output.
func (h Hit) String() string {
	if h.IsTable() {
		return fmt.Sprintf("%s.%s (nid=%d)", h.DBName, h.SourceName, h.Nid)
	}
	return fmt.Sprintf("%s.%s.%s (nid=%d)", h.DBName, h.SourceName, h.FieldName, h.Nid)
}
