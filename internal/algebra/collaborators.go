package algebra

import (
	"disco/internal/drs"
	"disco/internal/metadata"
)

// SearchScope names where the keyword index should look for matches.
type SearchScope int

const (
	// ScopeField matches against column names
	ScopeField SearchScope = iota
	// ScopeSource matches against table names
	ScopeSource
	// ScopeContent matches against column content samples
	ScopeContent
)

func (s SearchScope) String() string {
	switch s {
	case ScopeSource:
		return "source"
	case ScopeContent:
		return "content"
	}
	return "field"
}

// ParseSearchScope maps a user-supplied label to a SearchScope.
func ParseSearchScope(s string) (SearchScope, bool) {
	switch s {
	case "field", "":
		return ScopeField, true
	case "source", "table":
		return ScopeSource, true
	case "content", "value":
		return ScopeContent, true
	}
	return 0, false
}

// Network is the relationship-graph collaborator. The algebra delegates all
// adjacency, path, and identifier lookups to it and folds the partial
// results; failures propagate unmodified.
type Network interface {
	// InfoFor resolves identifiers to full catalog nodes.
	InfoFor(nids []uint64) ([]drs.Hit, error)

	// HitsForTable returns all column Hits of the named table.
	HitsForTable(table string) ([]drs.Hit, error)

	// Neighbors returns the Hits adjacent to h under the given relation.
	Neighbors(h drs.Hit, rel drs.Relation) (*drs.DRS, error)

	// FindPathHit returns the nodes of a bounded path between two columns,
	// or an empty DRS when none exists within maxHops.
	FindPathHit(a, b drs.Hit, rel drs.Relation, maxHops int) (*drs.DRS, error)

	// FindPathTable returns a table-level bounded path between two table
	// Hits. It may recurse into field-level path search through the given
	// resolver to validate connectivity.
	FindPathTable(a, b drs.Hit, rel drs.Relation, resolver PathResolver, maxHops int) (*drs.DRS, error)
}

// PathResolver is the callback surface the network uses for table-level
// path validation. The Algebra implements it.
type PathResolver interface {
	PathsBetween(a, b *drs.DRS, rel drs.Relation, maxHops int) (*drs.DRS, error)
}

// Store is the index and annotation-persistence collaborator.
type Store interface {
	// SearchKeywords performs a keyword search over the catalog index.
	SearchKeywords(keywords string, scope SearchScope, maxHits int) ([]drs.Hit, error)

	// SearchKeywordsMD performs a keyword search over annotations and comments.
	SearchKeywordsMD(keywords string, maxHits int) ([]metadata.MDHit, error)

	// AddAnnotation stores one annotation; target is nil for the
	// non-relational form.
	AddAnnotation(author, text, class string, sourceNid uint64, target *metadata.TargetRef) (metadata.MDHit, error)

	// AddComment attaches a comment to an existing annotation.
	AddComment(author, text, annotationID string) (metadata.MDComment, error)

	// AddTags attaches tags to an existing annotation.
	AddTags(author string, tags []string, annotationID string) error

	// Metadata returns stored annotations matching the query.
	Metadata(q metadata.Query) ([]metadata.MDHit, error)
}
