package network

import (
	"disco/internal/errors"
	"disco/internal/storage"
)

// Load builds the field network from the stored catalog.
func Load(db *storage.DB) (*FieldNetwork, error) {
	columns, err := db.AllColumns()
	if err != nil {
		return nil, errors.Wrap(errors.StoreUnavailable, "failed to load catalog columns", err)
	}

	n := New()
	for _, c := range columns {
		n.AddColumn(c.Hit())
	}

	edges, err := db.AllEdges()
	if err != nil {
		return nil, errors.Wrap(errors.StoreUnavailable, "failed to load catalog edges", err)
	}
	for _, e := range edges {
		if _, ok := n.nodes[e.FromNid]; !ok {
			return nil, errors.Newf(errors.CatalogInvalid, "edge references unknown column %d", e.FromNid)
		}
		if _, ok := n.nodes[e.ToNid]; !ok {
			return nil, errors.Newf(errors.CatalogInvalid, "edge references unknown column %d", e.ToNid)
		}
		n.AddEdge(e.FromNid, e.ToNid, e.Relation, e.Score)
	}

	return n, nil
}
