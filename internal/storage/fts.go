// Package storage provides the SQLite-backed catalog and metadata store.
package storage

import (
	"fmt"
	"strings"

	"disco/internal/algebra"
	"disco/internal/drs"
)

// SearchColumns performs an FTS5 keyword search over the catalog.
// The scope narrows the match to a single indexed column: field names,
// table names, or the whole record. Scores are negated bm25 ranks, so
// larger is better.
func (db *DB) SearchColumns(keywords string, scope algebra.SearchScope, limit int) ([]drs.Hit, error) {
	if limit <= 0 {
		limit = 10
	}

	keywords = strings.TrimSpace(keywords)
	if keywords == "" {
		return nil, nil
	}

	ftsQuery := fmt.Sprintf(`"%s"`, escapeFTS5Query(keywords))
	switch scope {
	case algebra.ScopeField:
		ftsQuery = "field_name : " + ftsQuery
	case algebra.ScopeSource:
		ftsQuery = "source_name : " + ftsQuery
	}

	rows, err := db.Query(`
		SELECT c.nid, c.db_name, c.source_name, c.field_name,
			-bm25(columns_fts, 0.5, 1.0, 1.0) AS score
		FROM columns_fts f
		JOIN columns c ON f.rowid = c.nid
		WHERE columns_fts MATCH ?
		ORDER BY bm25(columns_fts, 0.5, 1.0, 1.0)
		LIMIT ?
	`, ftsQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hits []drs.Hit
	for rows.Next() {
		var h drs.Hit
		var signed int64
		if err := rows.Scan(&signed, &h.DBName, &h.SourceName, &h.FieldName, &h.Score); err != nil {
			return nil, err
		}
		h.Nid = uint64(signed)
		hits = append(hits, h)
	}

	return hits, rows.Err()
}

// SearchAnnotations performs an FTS5 keyword search over annotation text.
func (db *DB) SearchAnnotations(keywords string, limit int) ([]AnnotationRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	keywords = strings.TrimSpace(keywords)
	if keywords == "" {
		return nil, nil
	}

	ftsQuery := fmt.Sprintf(`"%s"`, escapeFTS5Query(keywords))

	rows, err := db.Query(`
		SELECT a.id, a.author, a.text, a.class, a.source_nid, a.target_nid, a.relation,
			-bm25(md_fts) AS score
		FROM md_fts f
		JOIN annotations a ON f.rowid = a.rowid
		WHERE md_fts MATCH ?
		ORDER BY bm25(md_fts)
		LIMIT ?
	`, ftsQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAnnotations(rows, true)
}

// escapeFTS5Query escapes special characters in FTS5 queries
func escapeFTS5Query(query string) string {
	replacer := strings.NewReplacer(
		`"`, `""`,
		`*`, `\*`,
		`(`, `\(`,
		`)`, `\)`,
	)
	return replacer.Replace(query)
}
