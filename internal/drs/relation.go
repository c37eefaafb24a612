package drs

import "fmt"

// Relation enumerates the edge types of the relationship graph. The core
// treats it as opaque beyond passing it to the network collaborator.
type Relation int

const (
	// RelSchema links columns of the same table
	RelSchema Relation = iota
	// RelSchemaSim links columns with similar names/types
	RelSchemaSim
	// RelContentSim links columns with similar content
	RelContentSim
	// RelPKFK links primary-key columns to foreign-key columns
	RelPKFK
	// RelEntitySim links columns holding similar entities
	RelEntitySim
)

var relationNames = map[Relation]string{
	RelSchema:     "schema",
	RelSchemaSim:  "schema_sim",
	RelContentSim: "content_sim",
	RelPKFK:       "pkfk",
	RelEntitySim:  "entity_sim",
}

func (r Relation) String() string {
	if name, ok := relationNames[r]; ok {
		return name
	}
	return "unknown"
}

// ParseRelation maps a stored or user-supplied label to a Relation.
func ParseRelation(s string) (Relation, error) {
	for rel, name := range relationNames {
		if name == s {
			return rel, nil
		}
	}
	return 0, fmt.Errorf("unknown relation %q", s)
}

// OpKindFor returns the provenance tag for results of a neighbor query
// under this relation.
func (r Relation) OpKindFor() OpKind {
	switch r {
	case RelSchema:
		return OpTable
	case RelSchemaSim:
		return OpSchemaSim
	case RelContentSim:
		return OpContentSim
	case RelPKFK:
		return OpPKFK
	case RelEntitySim:
		return OpEntitySim
	}
	return OpNone
}
