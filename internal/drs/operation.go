package drs

// OpKind tags how a result set was produced.
type OpKind int

const (
	// OpNone marks an empty accumulator with no origin of its own
	OpNone OpKind = iota
	// OpOrigin marks a result seeded directly from caller input
	OpOrigin
	// OpKWLookup marks a keyword search against the index
	OpKWLookup
	// OpSchemaLookup marks a schema-name search against the index
	OpSchemaLookup
	// OpTable marks the expansion of a table placeholder into its columns
	OpTable
	// OpSchemaSim marks a schema-similarity neighbor query
	OpSchemaSim
	// OpContentSim marks a content-similarity neighbor query
	OpContentSim
	// OpPKFK marks a primary-key/foreign-key neighbor query
	OpPKFK
	// OpEntitySim marks an entity-similarity neighbor query
	OpEntitySim
	// OpPath marks a bounded transitive path query
	OpPath
)

var opKindNames = map[OpKind]string{
	OpNone:         "none",
	OpOrigin:       "origin",
	OpKWLookup:     "kw_lookup",
	OpSchemaLookup: "schema_lookup",
	OpTable:        "table",
	OpSchemaSim:    "schema_sim",
	OpContentSim:   "content_sim",
	OpPKFK:         "pkfk",
	OpEntitySim:    "entity_sim",
	OpPath:         "path",
}

func (k OpKind) String() string {
	if name, ok := opKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Operation describes one derivation step in a DRS's provenance trail.
// It is lineage only and never participates in set identity.
type Operation struct {
	Kind    OpKind `json:"kind"`
	Keyword string `json:"keyword,omitempty"` // for keyword lookups
	Params  []Hit  `json:"params,omitempty"`  // e.g. the originating Hit of a table expansion
}

// NewOperation builds an Operation with optional originating Hits.
func NewOperation(kind OpKind, params ...Hit) Operation {
	return Operation{Kind: kind, Params: params}
}

// KeywordOperation builds a keyword-lookup Operation.
func KeywordOperation(kind OpKind, keyword string) Operation {
	return Operation{Kind: kind, Keyword: keyword}
}
