package storage

import (
	"database/sql"
	"fmt"
)

// Schema version tracking
const currentSchemaVersion = 1

// initializeSchema creates all tables for a new database
func (db *DB) initializeSchema() error {
	return db.WithTx(func(tx *sql.Tx) error {
		if err := createSchemaVersionTable(tx); err != nil {
			return err
		}

		if err := createColumnsTable(tx); err != nil {
			return err
		}
		if err := createEdgesTable(tx); err != nil {
			return err
		}
		if err := createAnnotationsTable(tx); err != nil {
			return err
		}
		if err := createCommentsTable(tx); err != nil {
			return err
		}
		if err := createTagsTable(tx); err != nil {
			return err
		}
		if err := createFTSTables(tx); err != nil {
			return err
		}

		if err := setSchemaVersion(tx, currentSchemaVersion); err != nil {
			return err
		}

		db.logger.Info("Database schema initialized", map[string]interface{}{
			"version": currentSchemaVersion,
		})

		return nil
	})
}

// runMigrations runs any pending schema migrations
func (db *DB) runMigrations() error {
	version, err := db.getSchemaVersion()
	if err != nil {
		return err
	}

	if version == currentSchemaVersion {
		db.logger.Debug("Database schema is up to date", map[string]interface{}{
			"version": version,
		})
		return nil
	}

	db.logger.Info("Running database migrations", map[string]interface{}{
		"from_version": version,
		"to_version":   currentSchemaVersion,
	})

	// Run migrations sequentially as the schema evolves

	return nil
}

// getSchemaVersion gets the current schema version
func (db *DB) getSchemaVersion() (int, error) {
	var tableName string
	err := db.QueryRow(`
		SELECT name FROM sqlite_master
		WHERE type='table' AND name='schema_version'
	`).Scan(&tableName)

	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var version int
	err = db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return version, nil
}

// setSchemaVersion sets the schema version
func setSchemaVersion(tx *sql.Tx, version int) error {
	_, err := tx.Exec("DELETE FROM schema_version")
	if err != nil {
		return err
	}
	_, err = tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version)
	return err
}

// createSchemaVersionTable creates the schema_version tracking table
func createSchemaVersionTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`)
	return err
}

// createColumnsTable creates the columns catalog table.
// nid is the content-derived node identifier; as INTEGER PRIMARY KEY it
// doubles as the rowid the FTS index is anchored to.
func createColumnsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS columns (
			nid INTEGER PRIMARY KEY,
			db_name TEXT NOT NULL,
			source_name TEXT NOT NULL,
			field_name TEXT NOT NULL,
			data_type TEXT,
			total_values INTEGER NOT NULL DEFAULT 0,
			unique_values INTEGER NOT NULL DEFAULT 0,

			UNIQUE (db_name, source_name, field_name)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create columns table: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_columns_source_name ON columns(source_name)",
		"CREATE INDEX IF NOT EXISTS idx_columns_db_name ON columns(db_name)",
	}

	for _, indexSQL := range indexes {
		if _, err := tx.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// createEdgesTable creates the relationship edges table
func createEdgesTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS edges (
			from_nid INTEGER NOT NULL,
			to_nid INTEGER NOT NULL,
			relation TEXT NOT NULL,
			score REAL NOT NULL DEFAULT 0,

			PRIMARY KEY (from_nid, to_nid, relation),
			FOREIGN KEY (from_nid) REFERENCES columns(nid) ON DELETE CASCADE,
			FOREIGN KEY (to_nid) REFERENCES columns(nid) ON DELETE CASCADE
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create edges table: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_edges_from_nid_relation ON edges(from_nid, relation)",
		"CREATE INDEX IF NOT EXISTS idx_edges_to_nid ON edges(to_nid)",
	}

	for _, indexSQL := range indexes {
		if _, err := tx.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// createAnnotationsTable creates the annotations table
func createAnnotationsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS annotations (
			id TEXT UNIQUE NOT NULL,
			author TEXT NOT NULL,
			text TEXT NOT NULL,
			class TEXT NOT NULL CHECK(class IN ('warning', 'insight', 'question')),
			source_nid INTEGER NOT NULL,
			target_nid INTEGER,
			relation TEXT,
			created_at TEXT NOT NULL,

			CHECK(
				(relation IS NULL AND target_nid IS NULL) OR
				(relation IS NOT NULL AND target_nid IS NOT NULL)
			)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create annotations table: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_annotations_source_nid ON annotations(source_nid)",
		"CREATE INDEX IF NOT EXISTS idx_annotations_target_nid ON annotations(target_nid)",
		"CREATE INDEX IF NOT EXISTS idx_annotations_relation ON annotations(relation)",
	}

	for _, indexSQL := range indexes {
		if _, err := tx.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// createCommentsTable creates the annotation comments table
func createCommentsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS comments (
			id TEXT PRIMARY KEY,
			annotation_id TEXT NOT NULL,
			author TEXT NOT NULL,
			text TEXT NOT NULL,
			created_at TEXT NOT NULL,

			FOREIGN KEY (annotation_id) REFERENCES annotations(id) ON DELETE CASCADE
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create comments table: %w", err)
	}

	if _, err := tx.Exec(
		"CREATE INDEX IF NOT EXISTS idx_comments_annotation_id ON comments(annotation_id)",
	); err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	return nil
}

// createTagsTable creates the annotation tags table
func createTagsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS tags (
			annotation_id TEXT NOT NULL,
			tag TEXT NOT NULL,
			author TEXT NOT NULL,

			PRIMARY KEY (annotation_id, tag),
			FOREIGN KEY (annotation_id) REFERENCES annotations(id) ON DELETE CASCADE
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create tags table: %w", err)
	}

	return nil
}

// createFTSTables creates the FTS5 indexes over columns and annotations,
// with triggers keeping them in sync with the content tables.
func createFTSTables(tx *sql.Tx) error {
	if _, err := tx.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS columns_fts USING fts5(
			db_name,
			source_name,
			field_name,
			content='columns',
			content_rowid='nid'
		)
	`); err != nil {
		return fmt.Errorf("failed to create columns_fts table: %w", err)
	}

	if _, err := tx.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS md_fts USING fts5(
			text,
			content='annotations',
			content_rowid='rowid'
		)
	`); err != nil {
		return fmt.Errorf("failed to create md_fts table: %w", err)
	}

	triggers := []string{
		`CREATE TRIGGER IF NOT EXISTS columns_fts_ai AFTER INSERT ON columns BEGIN
			INSERT INTO columns_fts(rowid, db_name, source_name, field_name)
			VALUES (new.nid, new.db_name, new.source_name, new.field_name);
		END`,

		`CREATE TRIGGER IF NOT EXISTS columns_fts_ad AFTER DELETE ON columns BEGIN
			INSERT INTO columns_fts(columns_fts, rowid, db_name, source_name, field_name)
			VALUES ('delete', old.nid, old.db_name, old.source_name, old.field_name);
		END`,

		`CREATE TRIGGER IF NOT EXISTS md_fts_ai AFTER INSERT ON annotations BEGIN
			INSERT INTO md_fts(rowid, text) VALUES (new.rowid, new.text);
		END`,

		`CREATE TRIGGER IF NOT EXISTS md_fts_ad AFTER DELETE ON annotations BEGIN
			INSERT INTO md_fts(md_fts, rowid, text) VALUES ('delete', old.rowid, old.text);
		END`,
	}

	for _, trigger := range triggers {
		if _, err := tx.Exec(trigger); err != nil {
			return fmt.Errorf("failed to create trigger: %w", err)
		}
	}

	return nil
}
