package network

import (
	"testing"

	"disco/internal/drs"
	"disco/internal/errors"
	"disco/internal/logging"
	"disco/internal/storage"
)

func buildTestNetwork() (*FieldNetwork, map[string]drs.Hit) {
	n := New()
	hits := make(map[string]drs.Hit)

	add := func(db, table, field string) drs.Hit {
		h := drs.NewHit(db, table, field, 0)
		n.AddColumn(h)
		hits[table+"."+field] = h
		return h
	}

	add("dwh", "orders", "order_id")
	oc := add("dwh", "orders", "customer_id")
	add("dwh", "orders", "total_amount")
	cc := add("dwh", "customers", "customer_id")
	cn := add("dwh", "customers", "customer_name")
	pr := add("dwh", "payments", "reference")

	// orders.customer_id <-> customers.customer_id, then on to payments.
	n.AddEdge(oc.Nid, cc.Nid, drs.RelPKFK, 0.9)
	n.AddEdge(cc.Nid, oc.Nid, drs.RelPKFK, 0.9)
	n.AddEdge(cc.Nid, pr.Nid, drs.RelContentSim, 0.6)
	n.AddEdge(cn.Nid, pr.Nid, drs.RelContentSim, 0.4)

	return n, hits
}

func TestInfoForSkipsUnknown(t *testing.T) {
	n, hits := buildTestNetwork()
	oc := hits["orders.customer_id"]

	got, err := n.InfoFor([]uint64{oc.Nid, 999})
	if err != nil {
		t.Fatalf("InfoFor() error = %v", err)
	}
	if len(got) != 1 || got[0].Nid != oc.Nid {
		t.Errorf("InfoFor() = %v", got)
	}
}

func TestHitsForTable(t *testing.T) {
	n, _ := buildTestNetwork()

	got, err := n.HitsForTable("orders")
	if err != nil {
		t.Fatalf("HitsForTable() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("HitsForTable(orders) = %d hits, want 3", len(got))
	}

	_, err = n.HitsForTable("missing")
	if !errors.IsCode(err, errors.TableNotFound) {
		t.Errorf("Expected TABLE_NOT_FOUND, got %v", err)
	}
}

func TestNeighborsSchemaReturnsTableMates(t *testing.T) {
	n, hits := buildTestNetwork()
	oc := hits["orders.customer_id"]

	d, err := n.Neighbors(oc, drs.RelSchema)
	if err != nil {
		t.Fatalf("Neighbors() error = %v", err)
	}
	if d.Size() != 2 {
		t.Fatalf("Neighbors(schema) = %d hits, want 2", d.Size())
	}
	for _, h := range d.Hits() {
		if h.SourceName != "orders" {
			t.Errorf("Schema neighbor from table %s, want orders", h.SourceName)
		}
		if h.Nid == oc.Nid {
			t.Error("Schema neighbors should not include the column itself")
		}
	}
}

func TestNeighborsCarriesScoresAndTrail(t *testing.T) {
	n, hits := buildTestNetwork()
	cc := hits["customers.customer_id"]

	d, err := n.Neighbors(cc, drs.RelContentSim)
	if err != nil {
		t.Fatalf("Neighbors() error = %v", err)
	}
	if d.Size() != 1 {
		t.Fatalf("Neighbors() = %d hits, want 1", d.Size())
	}
	got := d.Hits()[0]
	if got.Nid != hits["payments.reference"].Nid {
		t.Errorf("Unexpected neighbor %v", got)
	}
	if got.Score != 0.6 {
		t.Errorf("Neighbor score = %v, want 0.6", got.Score)
	}

	prov := d.Provenance()
	if len(prov) != 1 || prov[0].Kind != drs.OpContentSim {
		t.Fatalf("Provenance = %v", prov)
	}
	if len(prov[0].Params) != 1 || prov[0].Params[0].Nid != cc.Nid {
		t.Error("Expected the originating hit in the trail")
	}
}

func TestNeighborsRespectsRelation(t *testing.T) {
	n, hits := buildTestNetwork()
	cc := hits["customers.customer_id"]

	d, err := n.Neighbors(cc, drs.RelSchemaSim)
	if err != nil {
		t.Fatalf("Neighbors() error = %v", err)
	}
	if !d.Empty() {
		t.Errorf("Expected no schema_sim neighbors, got %v", d.Hits())
	}
}

func TestFindPathHit(t *testing.T) {
	n, hits := buildTestNetwork()
	oc := hits["orders.customer_id"]
	pr := hits["payments.reference"]

	// orders.customer_id -pkfk-> customers.customer_id exists, but
	// the full route to payments crosses relations, so pkfk alone fails.
	d, err := n.FindPathHit(oc, pr, drs.RelPKFK, 3)
	if err != nil {
		t.Fatalf("FindPathHit() error = %v", err)
	}
	if !d.Empty() {
		t.Errorf("Expected no pkfk path, got %v", d.Hits())
	}

	cc := hits["customers.customer_id"]
	d, err = n.FindPathHit(oc, cc, drs.RelPKFK, 3)
	if err != nil {
		t.Fatalf("FindPathHit() error = %v", err)
	}
	got := d.Hits()
	if len(got) != 2 || got[0].Nid != oc.Nid || got[1].Nid != cc.Nid {
		t.Errorf("Path = %v, want [orders.customer_id customers.customer_id]", got)
	}
	prov := d.Provenance()
	if len(prov) != 1 || prov[0].Kind != drs.OpPath {
		t.Errorf("Provenance = %v", prov)
	}
}

func TestFindPathHitHopBound(t *testing.T) {
	n, hits := buildTestNetwork()
	oc := hits["orders.customer_id"]
	cc := hits["customers.customer_id"]

	d, err := n.FindPathHit(oc, cc, drs.RelPKFK, 0)
	if err != nil {
		t.Fatalf("FindPathHit() error = %v", err)
	}
	if !d.Empty() {
		t.Errorf("Expected no path within 0 hops, got %v", d.Hits())
	}
}

func TestFindPathHitSelf(t *testing.T) {
	n, hits := buildTestNetwork()
	oc := hits["orders.customer_id"]

	d, err := n.FindPathHit(oc, oc, drs.RelPKFK, 2)
	if err != nil {
		t.Fatalf("FindPathHit() error = %v", err)
	}
	if d.Size() != 1 || d.Hits()[0].Nid != oc.Nid {
		t.Errorf("Self path = %v, want the node itself", d.Hits())
	}
}

// pathResolverFunc adapts a function to the resolver interface.
type pathResolverFunc func(a, b *drs.DRS, rel drs.Relation, maxHops int) (*drs.DRS, error)

func (f pathResolverFunc) PathsBetween(a, b *drs.DRS, rel drs.Relation, maxHops int) (*drs.DRS, error) {
	return f(a, b, rel, maxHops)
}

func TestFindPathTable(t *testing.T) {
	n, hits := buildTestNetwork()

	resolver := pathResolverFunc(func(a, b *drs.DRS, rel drs.Relation, maxHops int) (*drs.DRS, error) {
		// Stands in for the engine: report the pkfk route columns.
		return drs.New([]drs.Hit{
			hits["orders.customer_id"],
			hits["customers.customer_id"],
		}, drs.NewOperation(drs.OpPath)), nil
	})

	d, err := n.FindPathTable(
		drs.NewTableHit("dwh", "orders"),
		drs.NewTableHit("dwh", "customers"),
		drs.RelPKFK, resolver, 2)
	if err != nil {
		t.Fatalf("FindPathTable() error = %v", err)
	}
	if d.Mode() != drs.ModeTable {
		t.Errorf("Mode = %s, want table", d.Mode())
	}
	if d.Size() != 2 {
		t.Fatalf("Size = %d, want 2 table placeholders", d.Size())
	}
	for _, h := range d.Hits() {
		if !h.IsTable() {
			t.Errorf("Expected table placeholder, got %v", h)
		}
	}
}

func TestFindPathTableUnknownTable(t *testing.T) {
	n, _ := buildTestNetwork()

	resolver := pathResolverFunc(func(a, b *drs.DRS, rel drs.Relation, maxHops int) (*drs.DRS, error) {
		return drs.NewEmpty(), nil
	})

	_, err := n.FindPathTable(
		drs.NewTableHit("dwh", "missing"),
		drs.NewTableHit("dwh", "customers"),
		drs.RelPKFK, resolver, 2)
	if !errors.IsCode(err, errors.TableNotFound) {
		t.Errorf("Expected TABLE_NOT_FOUND, got %v", err)
	}
}

func TestLoadFromStore(t *testing.T) {
	db, err := storage.Open(t.TempDir(), logging.Discard())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	columns := []storage.ColumnRecord{
		{Nid: drs.FieldID("dwh", "orders", "customer_id"), DBName: "dwh", SourceName: "orders", FieldName: "customer_id"},
		{Nid: drs.FieldID("dwh", "customers", "customer_id"), DBName: "dwh", SourceName: "customers", FieldName: "customer_id"},
	}
	if err := db.InsertColumns(columns); err != nil {
		t.Fatalf("InsertColumns() error = %v", err)
	}
	if err := db.InsertEdges([]storage.EdgeRecord{
		{FromNid: columns[0].Nid, ToNid: columns[1].Nid, Relation: drs.RelPKFK, Score: 0.9},
	}); err != nil {
		t.Fatalf("InsertEdges() error = %v", err)
	}

	n, err := Load(db)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if n.NodeCount() != 2 || n.EdgeCount() != 1 {
		t.Errorf("Load() = %d nodes, %d edges; want 2, 1", n.NodeCount(), n.EdgeCount())
	}

	d, err := n.Neighbors(drs.Hit{Nid: columns[0].Nid}, drs.RelPKFK)
	if err != nil {
		t.Fatalf("Neighbors() error = %v", err)
	}
	if d.Size() != 1 || d.Hits()[0].Nid != columns[1].Nid {
		t.Errorf("Neighbors() = %v", d.Hits())
	}
}
