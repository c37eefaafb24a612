package algebra

import (
	"fmt"

	"disco/internal/drs"
	"disco/internal/errors"
	"disco/internal/metadata"
)

// fakeNetwork is an in-memory Network for algebra tests.
type fakeNetwork struct {
	nodes  map[uint64]drs.Hit
	tables map[string][]drs.Hit
	adj    map[drs.Relation]map[uint64][]drs.Hit
	paths  map[[2]uint64][]drs.Hit

	infoCalls      int
	tableCalls     int
	neighborCalls  int
	pathHitCalls   int
	pathTableCalls int
}

func newFakeNetwork() *fakeNetwork {
	return &fakeNetwork{
		nodes:  make(map[uint64]drs.Hit),
		tables: make(map[string][]drs.Hit),
		adj:    make(map[drs.Relation]map[uint64][]drs.Hit),
		paths:  make(map[[2]uint64][]drs.Hit),
	}
}

func (n *fakeNetwork) addTable(db, table string, columns ...string) []drs.Hit {
	hits := make([]drs.Hit, 0, len(columns))
	for _, col := range columns {
		h := drs.NewHit(db, table, col, 0)
		n.nodes[h.Nid] = h
		hits = append(hits, h)
	}
	n.tables[table] = hits
	return hits
}

func (n *fakeNetwork) addEdge(rel drs.Relation, from, to drs.Hit) {
	if n.adj[rel] == nil {
		n.adj[rel] = make(map[uint64][]drs.Hit)
	}
	n.adj[rel][from.Nid] = append(n.adj[rel][from.Nid], to)
}

func (n *fakeNetwork) addPath(a, b drs.Hit, nodes ...drs.Hit) {
	n.paths[[2]uint64{a.Nid, b.Nid}] = nodes
}

func (n *fakeNetwork) InfoFor(nids []uint64) ([]drs.Hit, error) {
	n.infoCalls++
	var out []drs.Hit
	for _, nid := range nids {
		if h, ok := n.nodes[nid]; ok {
			out = append(out, h)
		}
	}
	return out, nil
}

func (n *fakeNetwork) HitsForTable(table string) ([]drs.Hit, error) {
	n.tableCalls++
	hits, ok := n.tables[table]
	if !ok {
		return nil, errors.Newf(errors.TableNotFound, "no table named %q", table)
	}
	return hits, nil
}

func (n *fakeNetwork) Neighbors(h drs.Hit, rel drs.Relation) (*drs.DRS, error) {
	n.neighborCalls++
	return drs.New(n.adj[rel][h.Nid], drs.NewOperation(rel.OpKindFor(), h)), nil
}

func (n *fakeNetwork) FindPathHit(a, b drs.Hit, rel drs.Relation, maxHops int) (*drs.DRS, error) {
	n.pathHitCalls++
	if nodes, ok := n.paths[[2]uint64{a.Nid, b.Nid}]; ok {
		return drs.New(nodes, drs.NewOperation(drs.OpPath, a, b)), nil
	}
	return drs.NewEmpty(), nil
}

func (n *fakeNetwork) FindPathTable(a, b drs.Hit, rel drs.Relation, resolver PathResolver, maxHops int) (*drs.DRS, error) {
	n.pathTableCalls++
	if _, ok := n.paths[[2]uint64{a.Nid, b.Nid}]; ok {
		out := drs.New([]drs.Hit{a, b}, drs.NewOperation(drs.OpPath, a, b))
		out.SetTableMode()
		return out, nil
	}
	out := drs.NewEmpty()
	out.SetTableMode()
	return out, nil
}

// fakeStore is an in-memory Store for algebra tests.
type fakeStore struct {
	searchResults map[string][]drs.Hit
	mdResults     map[string][]metadata.MDHit

	annotations []metadata.MDHit
	comments    []metadata.MDComment
	tags        map[string][]string
	nextID      int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		searchResults: make(map[string][]drs.Hit),
		mdResults:     make(map[string][]metadata.MDHit),
		tags:          make(map[string][]string),
	}
}

func (s *fakeStore) SearchKeywords(keywords string, scope SearchScope, maxHits int) ([]drs.Hit, error) {
	hits := s.searchResults[keywords]
	if len(hits) > maxHits {
		hits = hits[:maxHits]
	}
	return hits, nil
}

func (s *fakeStore) SearchKeywordsMD(keywords string, maxHits int) ([]metadata.MDHit, error) {
	hits := s.mdResults[keywords]
	if len(hits) > maxHits {
		hits = hits[:maxHits]
	}
	return hits, nil
}

func (s *fakeStore) AddAnnotation(author, text, class string, sourceNid uint64, target *metadata.TargetRef) (metadata.MDHit, error) {
	s.nextID++
	hit := metadata.MDHit{
		ID:        fmt.Sprintf("md-%d", s.nextID),
		Author:    author,
		Text:      text,
		Class:     class,
		SourceNid: sourceNid,
	}
	if target != nil {
		hit.TargetNid = target.Nid
		hit.Relation = target.Relation
	}
	s.annotations = append(s.annotations, hit)
	return hit, nil
}

func (s *fakeStore) AddComment(author, text, annotationID string) (metadata.MDComment, error) {
	s.nextID++
	c := metadata.MDComment{
		ID:           fmt.Sprintf("c-%d", s.nextID),
		AnnotationID: annotationID,
		Author:       author,
		Text:         text,
	}
	s.comments = append(s.comments, c)
	return c, nil
}

func (s *fakeStore) AddTags(author string, tags []string, annotationID string) error {
	s.tags[annotationID] = append(s.tags[annotationID], tags...)
	return nil
}

func (s *fakeStore) Metadata(q metadata.Query) ([]metadata.MDHit, error) {
	var out []metadata.MDHit
	for _, a := range s.annotations {
		if q.Nid == nil {
			out = append(out, a)
			continue
		}
		if q.Relation == "" {
			if a.SourceNid == *q.Nid || a.TargetNid == *q.Nid {
				out = append(out, a)
			}
			continue
		}
		if a.Relation != q.Relation {
			continue
		}
		if q.NidIsSource && a.SourceNid == *q.Nid {
			out = append(out, a)
		} else if !q.NidIsSource && a.TargetNid == *q.Nid {
			out = append(out, a)
		}
	}
	return out, nil
}

// newTestAlgebra builds an Algebra over a small two-table catalog.
func newTestAlgebra() (*Algebra, *fakeNetwork, *fakeStore) {
	network := newFakeNetwork()
	network.addTable("dbA", "orders", "order_id", "customer_id", "total")
	network.addTable("dbA", "customers", "customer_id", "name", "city")
	store := newFakeStore()
	return New(network, store, nil), network, store
}
