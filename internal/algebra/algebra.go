// Package algebra implements the discovery query algebra: keyword search,
// graph neighbor lookup, bounded transitive path search, bounded
// breadth-first traversal, and set combinators over domain result sets.
// Every public entry point first normalizes its inputs to a DRS, then either
// delegates per element to the network or store collaborator and folds the
// partial results, or applies a set combinator directly.
package algebra

import (
	"disco/internal/drs"
	"disco/internal/errors"
	"disco/internal/logging"
)

// Algebra is the central query coordinator for disco.
type Algebra struct {
	network Network
	store   Store
	logger  *logging.Logger
}

// New creates an Algebra over the given collaborators.
func New(network Network, store Store, logger *logging.Logger) *Algebra {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Algebra{
		network: network,
		store:   store,
		logger:  logger,
	}
}

// KeywordSearch performs a keyword search over the catalog index within the
// given scope and wraps the hits in a kw_lookup-tagged DRS.
func (a *Algebra) KeywordSearch(keywords string, scope SearchScope, maxResults int) (*drs.DRS, error) {
	if maxResults <= 0 {
		maxResults = 10
	}
	hits, err := a.store.SearchKeywords(keywords, scope, maxResults)
	if err != nil {
		return nil, err
	}

	kind := drs.OpKWLookup
	if scope == ScopeSource {
		kind = drs.OpSchemaLookup
	}
	return drs.New(hits, drs.KeywordOperation(kind, keywords)), nil
}

// NeighborSearch normalizes the input, expands table-mode input to column
// granularity (neighbor relations are defined per column), queries the
// network per Hit, and folds the partial results, absorbing the input's
// provenance first.
func (a *Algebra) NeighborSearch(in Input, rel drs.Relation) (*drs.DRS, error) {
	src, err := a.ToDRS(in)
	if err != nil {
		return nil, err
	}

	out := drs.NewEmpty()
	out.AbsorbProvenance(src)

	if src.Mode() == drs.ModeTable {
		src, err = a.ToFieldsDRS(FromDRS(src))
		if err != nil {
			return nil, err
		}
	}

	for _, h := range src.Hits() {
		neighbors, err := a.network.Neighbors(h, rel)
		if err != nil {
			return nil, err
		}
		out.Absorb(neighbors)
	}
	return out, nil
}

// SchemaNeighbors returns the columns that share a table with the input's
// columns.
func (a *Algebra) SchemaNeighbors(in Input) (*drs.DRS, error) {
	return a.NeighborSearch(in, drs.RelSchema)
}

// Paths finds bounded transitive paths between every pair of the Cartesian
// product a x b, including self-pairs, and folds the per-pair results.
// Table-mode inputs use table-level path search, which may recurse into
// field-level search through the PathResolver surface.
func (a *Algebra) Paths(inA, inB Input, rel drs.Relation, maxHops int) (*drs.DRS, error) {
	if maxHops <= 0 {
		maxHops = 2
	}
	da, err := a.ToDRS(inA)
	if err != nil {
		return nil, err
	}
	db, err := a.ToDRS(inB)
	if err != nil {
		return nil, err
	}
	return a.PathsBetween(da, db, rel, maxHops)
}

// PathsBetween implements PathResolver over already-normalized operands.
func (a *Algebra) PathsBetween(da, db *drs.DRS, rel drs.Relation, maxHops int) (*drs.DRS, error) {
	if err := assertSameMode(da, db); err != nil {
		return nil, err
	}
	out := drs.NewEmpty()
	out.AbsorbProvenance(da)
	if da != db {
		out.AbsorbProvenance(db)
	}
	for _, h1 := range da.Hits() {
		for _, h2 := range db.Hits() {
			var res *drs.DRS
			var err error
			if da.Mode() == drs.ModeFields {
				res, err = a.network.FindPathHit(h1, h2, rel, maxHops)
			} else {
				res, err = a.network.FindPathTable(h1, h2, rel, a, maxHops)
			}
			if err != nil {
				return nil, err
			}
			out.Absorb(res)
		}
	}
	return out, nil
}

// Traverse conducts a bounded breadth-first expansion at column granularity.
// The frontier of each round is the entire accumulator so far, so growth is
// monotonic and termination is purely hop-count bound.
func (a *Algebra) Traverse(in Input, rel drs.Relation, maxHops int) (*drs.DRS, error) {
	src, err := a.ToDRS(in)
	if err != nil {
		return nil, err
	}
	if src.Mode() == drs.ModeTable {
		return nil, errors.New(errors.UnsupportedMode, "traverse is defined only at column granularity")
	}

	out := drs.NewEmpty()
	out.AbsorbProvenance(src)

	fringe := src
	for hop := 0; hop < maxHops; hop++ {
		for _, h := range fringe.Hits() {
			neighbors, err := a.network.Neighbors(h, rel)
			if err != nil {
				return nil, err
			}
			out.Absorb(neighbors)
		}
		// Grow the frontier to the whole accumulator: later rounds re-query
		// visited nodes, growth stays monotonic.
		fringe = out
	}
	return out, nil
}

// Union returns the Hits present in either operand, by nid.
func (a *Algebra) Union(inA, inB Input) (*drs.DRS, error) {
	da, db, err := a.normalizePair(inA, inB)
	if err != nil {
		return nil, err
	}
	return da.Union(db), nil
}

// Intersection returns the Hits present in both operands, by nid.
func (a *Algebra) Intersection(inA, inB Input) (*drs.DRS, error) {
	da, db, err := a.normalizePair(inA, inB)
	if err != nil {
		return nil, err
	}
	return da.Intersection(db), nil
}

// Difference returns the Hits of a whose nid is absent from b.
func (a *Algebra) Difference(inA, inB Input) (*drs.DRS, error) {
	da, db, err := a.normalizePair(inA, inB)
	if err != nil {
		return nil, err
	}
	return da.Difference(db), nil
}

// MakeDRS reduces a heterogeneous list of inputs into one DRS via repeated
// union. It is a deliberately lenient convenience wrapper: any
// normalization failure logs a usage hint and yields nil instead of an
// error. The strict entry points do not share this leniency.
func (a *Algebra) MakeDRS(inputs ...Input) *drs.DRS {
	out := drs.NewEmpty()
	for _, in := range inputs {
		d, err := a.ToDRS(in)
		if err != nil {
			a.logger.Warn("make-drs could not normalize input", map[string]interface{}{
				"error": err.Error(),
			})
			a.logger.Info("usage: make-drs accepts table names, node ids, node descriptors, hits, and result sets", nil)
			return nil
		}
		// The first element decides the mode of the reduction.
		if out.Empty() && d.Mode() == drs.ModeTable {
			out.SetTableMode()
		}
		if err := assertSameMode(out, d); err != nil {
			a.logger.Warn("make-drs received inputs in mixed modes", map[string]interface{}{
				"error": err.Error(),
			})
			return nil
		}
		out = out.Union(d)
	}
	return out
}

// normalizePair normalizes both operands of a binary combinator and asserts
// the mode invariant before any Hits are scanned.
func (a *Algebra) normalizePair(inA, inB Input) (*drs.DRS, *drs.DRS, error) {
	da, err := a.ToDRS(inA)
	if err != nil {
		return nil, nil, err
	}
	db, err := a.ToDRS(inB)
	if err != nil {
		return nil, nil, err
	}
	if err := assertSameMode(da, db); err != nil {
		return nil, nil, err
	}
	return da, db, nil
}

func assertSameMode(a, b *drs.DRS) error {
	if a.Mode() != b.Mode() {
		return errors.Newf(errors.ModeMismatch,
			"operands are in different modes (%s vs %s)", a.Mode(), b.Mode())
	}
	return nil
}
