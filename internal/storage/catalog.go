package storage

import (
	"database/sql"
	"fmt"

	"disco/internal/drs"
)

// ColumnRecord is a catalog column row. The nid is derived from the
// db/source/field names, so re-ingesting the same column is idempotent.
type ColumnRecord struct {
	Nid          uint64
	DBName       string
	SourceName   string
	FieldName    string
	DataType     string
	TotalValues  int64
	UniqueValues int64
}

// Hit converts the record to its result-set form.
func (c ColumnRecord) Hit() drs.Hit {
	return drs.Hit{
		Nid:        c.Nid,
		DBName:     c.DBName,
		SourceName: c.SourceName,
		FieldName:  c.FieldName,
	}
}

// EdgeRecord is a relationship edge between two catalog columns.
type EdgeRecord struct {
	FromNid  uint64
	ToNid    uint64
	Relation drs.Relation
	Score    float64
}

// InsertColumns inserts catalog columns in a single transaction.
// Existing columns with the same nid are replaced.
func (db *DB) InsertColumns(columns []ColumnRecord) error {
	if len(columns) == 0 {
		return nil
	}

	return db.WithTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT OR REPLACE INTO columns
				(nid, db_name, source_name, field_name, data_type, total_values, unique_values)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, c := range columns {
			if _, err := stmt.Exec(
				int64(c.Nid), c.DBName, c.SourceName, c.FieldName,
				c.DataType, c.TotalValues, c.UniqueValues,
			); err != nil {
				return fmt.Errorf("failed to insert column %s.%s.%s: %w",
					c.DBName, c.SourceName, c.FieldName, err)
			}
		}

		return nil
	})
}

// InsertEdges inserts relationship edges in a single transaction.
func (db *DB) InsertEdges(edges []EdgeRecord) error {
	if len(edges) == 0 {
		return nil
	}

	return db.WithTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT OR REPLACE INTO edges (from_nid, to_nid, relation, score)
			VALUES (?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, e := range edges {
			if _, err := stmt.Exec(
				int64(e.FromNid), int64(e.ToNid), e.Relation.String(), e.Score,
			); err != nil {
				return fmt.Errorf("failed to insert edge %d -> %d: %w", e.FromNid, e.ToNid, err)
			}
		}

		return nil
	})
}

// ColumnByNid returns the column with the given identifier, or sql.ErrNoRows.
func (db *DB) ColumnByNid(nid uint64) (ColumnRecord, error) {
	var c ColumnRecord
	var signed int64
	var dataType sql.NullString
	err := db.QueryRow(`
		SELECT nid, db_name, source_name, field_name, data_type, total_values, unique_values
		FROM columns WHERE nid = ?
	`, int64(nid)).Scan(
		&signed, &c.DBName, &c.SourceName, &c.FieldName,
		&dataType, &c.TotalValues, &c.UniqueValues,
	)
	if err != nil {
		return ColumnRecord{}, err
	}
	c.Nid = uint64(signed)
	c.DataType = dataType.String
	return c, nil
}

// ColumnsForTable returns all columns of the named table, ordered by field name.
func (db *DB) ColumnsForTable(sourceName string) ([]ColumnRecord, error) {
	rows, err := db.Query(`
		SELECT nid, db_name, source_name, field_name, data_type, total_values, unique_values
		FROM columns WHERE source_name = ?
		ORDER BY field_name
	`, sourceName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanColumns(rows)
}

// AllColumns returns the full catalog.
func (db *DB) AllColumns() ([]ColumnRecord, error) {
	rows, err := db.Query(`
		SELECT nid, db_name, source_name, field_name, data_type, total_values, unique_values
		FROM columns
		ORDER BY db_name, source_name, field_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanColumns(rows)
}

// AllEdges returns every relationship edge in the catalog.
func (db *DB) AllEdges() ([]EdgeRecord, error) {
	rows, err := db.Query(`
		SELECT from_nid, to_nid, relation, score FROM edges
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges []EdgeRecord
	for rows.Next() {
		var e EdgeRecord
		var from, to int64
		var relation string
		if err := rows.Scan(&from, &to, &relation, &e.Score); err != nil {
			return nil, err
		}
		rel, err := drs.ParseRelation(relation)
		if err != nil {
			return nil, fmt.Errorf("edge %d -> %d: %w", from, to, err)
		}
		e.FromNid = uint64(from)
		e.ToNid = uint64(to)
		e.Relation = rel
		edges = append(edges, e)
	}

	return edges, rows.Err()
}

// Tables returns the distinct (db, table) pairs in the catalog.
func (db *DB) Tables() ([][2]string, error) {
	rows, err := db.Query(`
		SELECT DISTINCT db_name, source_name FROM columns
		ORDER BY db_name, source_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables [][2]string
	for rows.Next() {
		var dbName, sourceName string
		if err := rows.Scan(&dbName, &sourceName); err != nil {
			return nil, err
		}
		tables = append(tables, [2]string{dbName, sourceName})
	}

	return tables, rows.Err()
}

// Counts returns the number of columns and edges in the catalog.
func (db *DB) Counts() (columns int, edges int, err error) {
	if err = db.QueryRow("SELECT COUNT(*) FROM columns").Scan(&columns); err != nil {
		return 0, 0, err
	}
	if err = db.QueryRow("SELECT COUNT(*) FROM edges").Scan(&edges); err != nil {
		return 0, 0, err
	}
	return columns, edges, nil
}

func scanColumns(rows *sql.Rows) ([]ColumnRecord, error) {
	var columns []ColumnRecord
	for rows.Next() {
		var c ColumnRecord
		var signed int64
		var dataType sql.NullString
		if err := rows.Scan(
			&signed, &c.DBName, &c.SourceName, &c.FieldName,
			&dataType, &c.TotalValues, &c.UniqueValues,
		); err != nil {
			return nil, err
		}
		c.Nid = uint64(signed)
		c.DataType = dataType.String
		columns = append(columns, c)
	}
	return columns, rows.Err()
}
