// Package catalog loads data source declarations and ingests them into
// the store. Declarations name databases, their tables and columns, and
// optional precomputed relationship edges.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"disco/internal/drs"
	"disco/internal/errors"
	"disco/internal/storage"
)

// Declaration is the root of a catalog declaration file.
type Declaration struct {
	Databases []DatabaseDecl `yaml:"databases" toml:"databases"`
	Edges     []EdgeDecl     `yaml:"edges" toml:"edges"`
}

// DatabaseDecl declares one database and its tables.
type DatabaseDecl struct {
	Name   string      `yaml:"name" toml:"name"`
	Tables []TableDecl `yaml:"tables" toml:"tables"`
}

// TableDecl declares one table and its columns.
type TableDecl struct {
	Name    string       `yaml:"name" toml:"name"`
	Columns []ColumnDecl `yaml:"columns" toml:"columns"`
}

// ColumnDecl declares one column with optional profile stats.
type ColumnDecl struct {
	Name         string `yaml:"name" toml:"name"`
	DataType     string `yaml:"dataType" toml:"dataType"`
	TotalValues  int64  `yaml:"totalValues" toml:"totalValues"`
	UniqueValues int64  `yaml:"uniqueValues" toml:"uniqueValues"`
}

// EdgeDecl declares a relationship edge between two columns, referenced
// as db.table.field paths.
type EdgeDecl struct {
	From     string  `yaml:"from" toml:"from"`
	To       string  `yaml:"to" toml:"to"`
	Relation string  `yaml:"relation" toml:"relation"`
	Score    float64 `yaml:"score" toml:"score"`
}

// LoadFile reads and validates a declaration file. The format is chosen
// by extension: .yaml/.yml or .toml.
func LoadFile(path string) (*Declaration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.CatalogInvalid, "failed to read declaration file", err)
	}

	var decl Declaration
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &decl); err != nil {
			return nil, errors.Wrap(errors.CatalogInvalid, "failed to parse YAML declaration", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &decl); err != nil {
			return nil, errors.Wrap(errors.CatalogInvalid, "failed to parse TOML declaration", err)
		}
	default:
		return nil, errors.Newf(errors.CatalogInvalid,
			"unsupported declaration format %q", filepath.Ext(path))
	}

	if err := decl.Validate(); err != nil {
		return nil, err
	}
	return &decl, nil
}

// Validate checks the declaration for structural errors: empty names,
// unknown relations, and edges referencing undeclared columns.
func (d *Declaration) Validate() error {
	if len(d.Databases) == 0 {
		return errors.New(errors.CatalogInvalid, "declaration has no databases")
	}

	declared := make(map[string]bool)
	for _, db := range d.Databases {
		if db.Name == "" {
			return errors.New(errors.CatalogInvalid, "database with empty name")
		}
		for _, table := range db.Tables {
			if table.Name == "" {
				return errors.Newf(errors.CatalogInvalid, "table with empty name in database %q", db.Name)
			}
			if len(table.Columns) == 0 {
				return errors.Newf(errors.CatalogInvalid, "table %q has no columns", table.Name)
			}
			for _, col := range table.Columns {
				if col.Name == "" {
					return errors.Newf(errors.CatalogInvalid, "column with empty name in table %q", table.Name)
				}
				declared[nodePath(db.Name, table.Name, col.Name)] = true
			}
		}
	}

	for _, e := range d.Edges {
		if _, err := drs.ParseRelation(e.Relation); err != nil {
			return errors.Newf(errors.CatalogInvalid, "edge %s -> %s: unknown relation %q", e.From, e.To, e.Relation)
		}
		for _, ref := range []string{e.From, e.To} {
			if _, _, _, err := splitNodePath(ref); err != nil {
				return err
			}
			if !declared[ref] {
				return errors.Newf(errors.CatalogInvalid, "edge references undeclared column %q", ref)
			}
		}
	}

	return nil
}

// Columns returns the declaration's columns as store records.
func (d *Declaration) Columns() []storage.ColumnRecord {
	var records []storage.ColumnRecord
	for _, db := range d.Databases {
		for _, table := range db.Tables {
			for _, col := range table.Columns {
				records = append(records, storage.ColumnRecord{
					Nid:          drs.FieldID(db.Name, table.Name, col.Name),
					DBName:       db.Name,
					SourceName:   table.Name,
					FieldName:    col.Name,
					DataType:     col.DataType,
					TotalValues:  col.TotalValues,
					UniqueValues: col.UniqueValues,
				})
			}
		}
	}
	return records
}

// EdgeRecords returns the declaration's edges as store records.
func (d *Declaration) EdgeRecords() ([]storage.EdgeRecord, error) {
	var records []storage.EdgeRecord
	for _, e := range d.Edges {
		rel, err := drs.ParseRelation(e.Relation)
		if err != nil {
			return nil, errors.Wrap(errors.CatalogInvalid, "invalid edge relation", err)
		}
		fromDB, fromTable, fromField, err := splitNodePath(e.From)
		if err != nil {
			return nil, err
		}
		toDB, toTable, toField, err := splitNodePath(e.To)
		if err != nil {
			return nil, err
		}
		records = append(records, storage.EdgeRecord{
			FromNid:  drs.FieldID(fromDB, fromTable, fromField),
			ToNid:    drs.FieldID(toDB, toTable, toField),
			Relation: rel,
			Score:    e.Score,
		})
	}
	return records, nil
}

// Ingest loads the declaration into the store and returns the number of
// columns and edges written.
func Ingest(db *storage.DB, decl *Declaration) (columns int, edges int, err error) {
	colRecords := decl.Columns()
	if err := db.InsertColumns(colRecords); err != nil {
		return 0, 0, errors.Wrap(errors.StoreUnavailable, "failed to store columns", err)
	}

	edgeRecords, err := decl.EdgeRecords()
	if err != nil {
		return 0, 0, err
	}
	if err := db.InsertEdges(edgeRecords); err != nil {
		return 0, 0, errors.Wrap(errors.StoreUnavailable, "failed to store edges", err)
	}

	return len(colRecords), len(edgeRecords), nil
}

func nodePath(db, table, field string) string {
	return fmt.Sprintf("%s.%s.%s", db, table, field)
}

// splitNodePath parses a db.table.field reference.
func splitNodePath(ref string) (db, table, field string, err error) {
	parts := strings.Split(ref, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", errors.Newf(errors.CatalogInvalid,
			"node reference %q is not of the form db.table.field", ref)
	}
	return parts[0], parts[1], parts[2], nil
}
