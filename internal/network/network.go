// Package network provides the in-memory field graph the query engine
// traverses. Nodes are catalog columns keyed by nid; edges are typed by
// relation and carry a similarity score.
package network

import (
	"disco/internal/algebra"
	"disco/internal/drs"
	"disco/internal/errors"
)

type edgeEntry struct {
	target uint64
	score  float64
}

// FieldNetwork is a sparse directed multigraph over catalog columns.
type FieldNetwork struct {
	nodes  map[uint64]drs.Hit
	tables map[string][]drs.Hit

	// Adjacency list per relation: adj[rel][from] = scored targets
	adj map[drs.Relation]map[uint64][]edgeEntry
}

var _ algebra.Network = (*FieldNetwork)(nil)

// New creates an empty field network.
func New() *FieldNetwork {
	return &FieldNetwork{
		nodes:  make(map[uint64]drs.Hit),
		tables: make(map[string][]drs.Hit),
		adj:    make(map[drs.Relation]map[uint64][]edgeEntry),
	}
}

// AddColumn registers a catalog column as a graph node.
func (n *FieldNetwork) AddColumn(h drs.Hit) {
	if _, ok := n.nodes[h.Nid]; ok {
		return
	}
	n.nodes[h.Nid] = h
	n.tables[h.SourceName] = append(n.tables[h.SourceName], h)
}

// AddEdge adds a directed relation edge between two registered columns.
func (n *FieldNetwork) AddEdge(from, to uint64, rel drs.Relation, score float64) {
	if n.adj[rel] == nil {
		n.adj[rel] = make(map[uint64][]edgeEntry)
	}
	n.adj[rel][from] = append(n.adj[rel][from], edgeEntry{target: to, score: score})
}

// NodeCount returns the number of registered columns.
func (n *FieldNetwork) NodeCount() int {
	return len(n.nodes)
}

// EdgeCount returns the number of edges across all relations.
func (n *FieldNetwork) EdgeCount() int {
	count := 0
	for _, byFrom := range n.adj {
		for _, targets := range byFrom {
			count += len(targets)
		}
	}
	return count
}

// InfoFor resolves node identifiers to full column hits. Unknown
// identifiers are skipped.
func (n *FieldNetwork) InfoFor(nids []uint64) ([]drs.Hit, error) {
	var out []drs.Hit
	for _, nid := range nids {
		if h, ok := n.nodes[nid]; ok {
			out = append(out, h)
		}
	}
	return out, nil
}

// HitsForTable returns the columns of the named table.
func (n *FieldNetwork) HitsForTable(table string) ([]drs.Hit, error) {
	hits, ok := n.tables[table]
	if !ok {
		return nil, errors.Newf(errors.TableNotFound, "no table named %q", table)
	}
	out := make([]drs.Hit, len(hits))
	copy(out, hits)
	return out, nil
}

// Neighbors returns the direct relation neighbors of a column as a
// result set whose trail records the originating hit.
func (n *FieldNetwork) Neighbors(h drs.Hit, rel drs.Relation) (*drs.DRS, error) {
	var hits []drs.Hit

	// Schema neighbors are the column's table mates, not stored edges.
	if rel == drs.RelSchema {
		for _, sibling := range n.tables[h.SourceName] {
			if sibling.Nid == h.Nid || sibling.DBName != h.DBName {
				continue
			}
			hits = append(hits, sibling)
		}
		return drs.New(hits, drs.NewOperation(rel.OpKindFor(), h)), nil
	}

	for _, e := range n.adj[rel][h.Nid] {
		target, ok := n.nodes[e.target]
		if !ok {
			continue
		}
		target.Score = e.score
		hits = append(hits, target)
	}
	return drs.New(hits, drs.NewOperation(rel.OpKindFor(), h)), nil
}

// FindPathHit searches for a relation path between two columns, up to
// maxHops edges long. The result contains every node on the path, in
// order, or is empty when no path exists.
func (n *FieldNetwork) FindPathHit(a, b drs.Hit, rel drs.Relation, maxHops int) (*drs.DRS, error) {
	path := n.shortestPath(a.Nid, b.Nid, rel, maxHops)
	if path == nil {
		return drs.NewEmpty(), nil
	}

	hits := make([]drs.Hit, 0, len(path))
	for _, nid := range path {
		if h, ok := n.nodes[nid]; ok {
			hits = append(hits, h)
		}
	}
	return drs.New(hits, drs.NewOperation(drs.OpPath, a, b)), nil
}

// FindPathTable searches for relation paths between two tables. Both
// hits must be table placeholders. The table search expands each table
// to its columns, resolves column-level paths through the resolver, and
// reports the tables the path columns belong to.
func (n *FieldNetwork) FindPathTable(a, b drs.Hit, rel drs.Relation, resolver algebra.PathResolver, maxHops int) (*drs.DRS, error) {
	da, err := n.tableDRS(a)
	if err != nil {
		return nil, err
	}
	db, err := n.tableDRS(b)
	if err != nil {
		return nil, err
	}

	fieldPaths, err := resolver.PathsBetween(da, db, rel, maxHops)
	if err != nil {
		return nil, err
	}

	out := drs.NewEmpty()
	out.SetTableMode()
	out.AbsorbProvenance(fieldPaths)
	for _, h := range fieldPaths.Hits() {
		table := drs.New([]drs.Hit{drs.NewTableHit(h.DBName, h.SourceName)},
			drs.NewOperation(drs.OpNone))
		table.SetTableMode()
		out.Absorb(table)
	}
	return out, nil
}

func (n *FieldNetwork) tableDRS(tableHit drs.Hit) (*drs.DRS, error) {
	hits, err := n.HitsForTable(tableHit.SourceName)
	if err != nil {
		return nil, err
	}
	return drs.New(hits, drs.NewOperation(drs.OpTable, tableHit)), nil
}

// shortestPath runs a breadth-first search bounded by maxHops and
// returns the node sequence from a to b inclusive, or nil.
func (n *FieldNetwork) shortestPath(from, to uint64, rel drs.Relation, maxHops int) []uint64 {
	if from == to {
		return []uint64{from}
	}
	byFrom := n.adj[rel]
	if byFrom == nil {
		return nil
	}

	parent := map[uint64]uint64{from: from}
	frontier := []uint64{from}

	for hop := 0; hop < maxHops && len(frontier) > 0; hop++ {
		var next []uint64
		for _, nid := range frontier {
			for _, e := range byFrom[nid] {
				if _, seen := parent[e.target]; seen {
					continue
				}
				parent[e.target] = nid
				if e.target == to {
					return reconstructPath(parent, from, to)
				}
				next = append(next, e.target)
			}
		}
		frontier = next
	}
	return nil
}

func reconstructPath(parent map[uint64]uint64, from, to uint64) []uint64 {
	var reversed []uint64
	for cur := to; ; cur = parent[cur] {
		reversed = append(reversed, cur)
		if cur == from {
			break
		}
	}
	path := make([]uint64, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		path = append(path, reversed[i])
	}
	return path
}
