// Package export writes catalog snapshots as JSON documents, optionally
// gzip-compressed.
package export

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"disco/internal/errors"
	"disco/internal/metadata"
	"disco/internal/storage"
)

// FormatVersion identifies the export document layout.
const FormatVersion = 1

// Document is a full catalog snapshot.
type Document struct {
	Version     int                         `json:"version"`
	ExportedAt  string                      `json:"exportedAt"`
	Columns     []ColumnEntry               `json:"columns"`
	Edges       []EdgeEntry                 `json:"edges"`
	Annotations []storage.AnnotationRecord  `json:"annotations,omitempty"`
	Comments    []metadata.MDComment        `json:"comments,omitempty"`
	Tags        []storage.TagRecord         `json:"tags,omitempty"`
}

// ColumnEntry is one catalog column in the export document.
type ColumnEntry struct {
	Nid          uint64 `json:"nid"`
	DBName       string `json:"dbName"`
	SourceName   string `json:"sourceName"`
	FieldName    string `json:"fieldName"`
	DataType     string `json:"dataType,omitempty"`
	TotalValues  int64  `json:"totalValues"`
	UniqueValues int64  `json:"uniqueValues"`
}

// EdgeEntry is one relationship edge in the export document.
type EdgeEntry struct {
	FromNid  uint64  `json:"fromNid"`
	ToNid    uint64  `json:"toNid"`
	Relation string  `json:"relation"`
	Score    float64 `json:"score"`
}

// Snapshot collects the full store contents into a document.
func Snapshot(db *storage.DB) (*Document, error) {
	doc := &Document{
		Version:    FormatVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}

	columns, err := db.AllColumns()
	if err != nil {
		return nil, errors.Wrap(errors.StoreUnavailable, "failed to read columns", err)
	}
	for _, c := range columns {
		doc.Columns = append(doc.Columns, ColumnEntry{
			Nid:          c.Nid,
			DBName:       c.DBName,
			SourceName:   c.SourceName,
			FieldName:    c.FieldName,
			DataType:     c.DataType,
			TotalValues:  c.TotalValues,
			UniqueValues: c.UniqueValues,
		})
	}

	edges, err := db.AllEdges()
	if err != nil {
		return nil, errors.Wrap(errors.StoreUnavailable, "failed to read edges", err)
	}
	for _, e := range edges {
		doc.Edges = append(doc.Edges, EdgeEntry{
			FromNid:  e.FromNid,
			ToNid:    e.ToNid,
			Relation: e.Relation.String(),
			Score:    e.Score,
		})
	}

	doc.Annotations, err = db.QueryAnnotations(metadata.Query{})
	if err != nil {
		return nil, errors.Wrap(errors.StoreUnavailable, "failed to read annotations", err)
	}
	doc.Comments, err = db.AllComments()
	if err != nil {
		return nil, errors.Wrap(errors.StoreUnavailable, "failed to read comments", err)
	}
	doc.Tags, err = db.AllTags()
	if err != nil {
		return nil, errors.Wrap(errors.StoreUnavailable, "failed to read tags", err)
	}

	return doc, nil
}

// Write encodes the document as indented JSON. With compress set, the
// output is gzip-compressed.
func Write(w io.Writer, doc *Document, compress bool) error {
	if compress {
		gz := gzip.NewWriter(w)
		if err := encodeJSON(gz, doc); err != nil {
			gz.Close()
			return err
		}
		return gz.Close()
	}
	return encodeJSON(w, doc)
}

// WriteFile writes the document to a file. A .gz path implies
// compression regardless of the flag.
func WriteFile(path string, doc *Document, compress bool) error {
	if strings.HasSuffix(path, ".gz") {
		compress = true
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return Write(f, doc, compress)
}

// Read decodes an export document, transparently handling gzip input.
func Read(r io.Reader, compressed bool) (*Document, error) {
	if compressed {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}

	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ReadFile reads an export document from a file, inferring compression
// from a .gz suffix.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f, strings.HasSuffix(path, ".gz"))
}

func encodeJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
