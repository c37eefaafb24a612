package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"disco/internal/drs"
	"disco/internal/logging"
	"disco/internal/storage"
)

func seededDB(t *testing.T) *storage.DB {
	t.Helper()

	db, err := storage.Open(t.TempDir(), logging.Discard())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	columns := []storage.ColumnRecord{
		{Nid: drs.FieldID("dwh", "orders", "order_id"), DBName: "dwh", SourceName: "orders", FieldName: "order_id", DataType: "N"},
		{Nid: drs.FieldID("dwh", "orders", "customer_id"), DBName: "dwh", SourceName: "orders", FieldName: "customer_id", DataType: "N"},
		{Nid: drs.FieldID("dwh", "customers", "customer_id"), DBName: "dwh", SourceName: "customers", FieldName: "customer_id", DataType: "N"},
	}
	if err := db.InsertColumns(columns); err != nil {
		t.Fatalf("InsertColumns() error = %v", err)
	}
	if err := db.InsertEdges([]storage.EdgeRecord{
		{FromNid: columns[1].Nid, ToNid: columns[2].Nid, Relation: drs.RelPKFK, Score: 0.9},
	}); err != nil {
		t.Fatalf("InsertEdges() error = %v", err)
	}
	if _, err := db.InsertAnnotation("raul", "joined weekly", "insight", columns[1].Nid, nil); err != nil {
		t.Fatalf("InsertAnnotation() error = %v", err)
	}

	return db
}

func TestSnapshot(t *testing.T) {
	db := seededDB(t)

	doc, err := Snapshot(db)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if doc.Version != FormatVersion {
		t.Errorf("Version = %d, want %d", doc.Version, FormatVersion)
	}
	if doc.ExportedAt == "" {
		t.Error("ExportedAt should be set")
	}
	if len(doc.Columns) != 3 {
		t.Errorf("Columns = %d, want 3", len(doc.Columns))
	}
	if len(doc.Edges) != 1 || doc.Edges[0].Relation != "pkfk" {
		t.Errorf("Edges = %+v", doc.Edges)
	}
	if len(doc.Annotations) != 1 {
		t.Errorf("Annotations = %d, want 1", len(doc.Annotations))
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	db := seededDB(t)

	doc, err := Snapshot(db)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, doc, false); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := Read(&buf, false)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(got.Columns) != len(doc.Columns) || len(got.Edges) != len(doc.Edges) {
		t.Errorf("Read() = %d columns, %d edges; want %d, %d",
			len(got.Columns), len(got.Edges), len(doc.Columns), len(doc.Edges))
	}
}

func TestWriteReadCompressed(t *testing.T) {
	db := seededDB(t)

	doc, err := Snapshot(db)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	var plain, compressed bytes.Buffer
	if err := Write(&plain, doc, false); err != nil {
		t.Fatalf("Write(plain) error = %v", err)
	}
	if err := Write(&compressed, doc, true); err != nil {
		t.Fatalf("Write(gzip) error = %v", err)
	}

	// Gzip output must not be readable as plain JSON.
	if bytes.Equal(plain.Bytes(), compressed.Bytes()) {
		t.Error("Compressed output should differ from plain output")
	}

	got, err := Read(&compressed, true)
	if err != nil {
		t.Fatalf("Read(gzip) error = %v", err)
	}
	if len(got.Columns) != 3 {
		t.Errorf("Read(gzip) = %d columns, want 3", len(got.Columns))
	}
}

func TestWriteFileInfersCompression(t *testing.T) {
	db := seededDB(t)

	doc, err := Snapshot(db)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "catalog.json.gz")
	if err := WriteFile(path, doc, false); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(got.Columns) != 3 || len(got.Annotations) != 1 {
		t.Errorf("ReadFile() = %d columns, %d annotations", len(got.Columns), len(got.Annotations))
	}
}
