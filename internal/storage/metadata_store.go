package storage

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"disco/internal/metadata"
)

// AnnotationRecord is a stored annotation row.
type AnnotationRecord struct {
	ID        string
	Author    string
	Text      string
	Class     string
	SourceNid uint64
	TargetNid uint64
	Relation  string
	Score     float64
	CreatedAt string
}

// MDHit converts the record to its search-result form.
func (a AnnotationRecord) MDHit() metadata.MDHit {
	return metadata.MDHit{
		ID:        a.ID,
		Author:    a.Author,
		Text:      a.Text,
		Class:     a.Class,
		SourceNid: a.SourceNid,
		TargetNid: a.TargetNid,
		Relation:  a.Relation,
		Score:     a.Score,
	}
}

// InsertAnnotation stores a new annotation and returns it with its
// generated identifier.
func (db *DB) InsertAnnotation(author, text, class string, sourceNid uint64, target *metadata.TargetRef) (AnnotationRecord, error) {
	rec := AnnotationRecord{
		ID:        uuid.NewString(),
		Author:    author,
		Text:      text,
		Class:     class,
		SourceNid: sourceNid,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	var targetNid, relation interface{}
	if target != nil {
		rec.TargetNid = target.Nid
		rec.Relation = target.Relation
		targetNid = int64(target.Nid)
		relation = target.Relation
	}

	_, err := db.Exec(`
		INSERT INTO annotations (id, author, text, class, source_nid, target_nid, relation, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Author, rec.Text, rec.Class, int64(rec.SourceNid), targetNid, relation, rec.CreatedAt)
	if err != nil {
		return AnnotationRecord{}, err
	}

	return rec, nil
}

// AnnotationExists reports whether an annotation with the given id is stored.
func (db *DB) AnnotationExists(id string) (bool, error) {
	var one int
	err := db.QueryRow("SELECT 1 FROM annotations WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// InsertComment stores a comment attached to an existing annotation.
func (db *DB) InsertComment(author, text, annotationID string) (metadata.MDComment, error) {
	c := metadata.MDComment{
		ID:           uuid.NewString(),
		AnnotationID: annotationID,
		Author:       author,
		Text:         text,
	}

	_, err := db.Exec(`
		INSERT INTO comments (id, annotation_id, author, text, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, c.ID, c.AnnotationID, c.Author, c.Text, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return metadata.MDComment{}, err
	}

	return c, nil
}

// InsertTags attaches tags to an existing annotation. Duplicate tags are
// ignored.
func (db *DB) InsertTags(author string, tags []string, annotationID string) error {
	return db.WithTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT OR IGNORE INTO tags (annotation_id, tag, author) VALUES (?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, tag := range tags {
			if _, err := stmt.Exec(annotationID, tag, author); err != nil {
				return err
			}
		}
		return nil
	})
}

// QueryAnnotations returns stored annotations matching the query. A nil
// node id matches everything; without a relation, the node matches on
// either side of the edge.
func (db *DB) QueryAnnotations(q metadata.Query) ([]AnnotationRecord, error) {
	var rows *sql.Rows
	var err error

	const selectCols = "SELECT id, author, text, class, source_nid, target_nid, relation FROM annotations"

	switch {
	case q.Nid == nil:
		rows, err = db.Query(selectCols + " ORDER BY created_at")
	case q.Relation == "":
		rows, err = db.Query(
			selectCols+" WHERE source_nid = ? OR target_nid = ? ORDER BY created_at",
			int64(*q.Nid), int64(*q.Nid))
	case q.NidIsSource:
		rows, err = db.Query(
			selectCols+" WHERE relation = ? AND source_nid = ? ORDER BY created_at",
			q.Relation, int64(*q.Nid))
	default:
		rows, err = db.Query(
			selectCols+" WHERE relation = ? AND target_nid = ? ORDER BY created_at",
			q.Relation, int64(*q.Nid))
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAnnotations(rows, false)
}

// AllComments returns every stored comment.
func (db *DB) AllComments() ([]metadata.MDComment, error) {
	rows, err := db.Query(`
		SELECT id, annotation_id, author, text FROM comments ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []metadata.MDComment
	for rows.Next() {
		var c metadata.MDComment
		if err := rows.Scan(&c.ID, &c.AnnotationID, &c.Author, &c.Text); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// TagRecord is a stored annotation tag.
type TagRecord struct {
	AnnotationID string
	Tag          string
	Author       string
}

// AllTags returns every stored tag.
func (db *DB) AllTags() ([]TagRecord, error) {
	rows, err := db.Query(`
		SELECT annotation_id, tag, author FROM tags ORDER BY annotation_id, tag
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []TagRecord
	for rows.Next() {
		var t TagRecord
		if err := rows.Scan(&t.AnnotationID, &t.Tag, &t.Author); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func scanAnnotations(rows *sql.Rows, withScore bool) ([]AnnotationRecord, error) {
	var records []AnnotationRecord
	for rows.Next() {
		var a AnnotationRecord
		var source int64
		var target sql.NullInt64
		var relation sql.NullString

		dest := []interface{}{&a.ID, &a.Author, &a.Text, &a.Class, &source, &target, &relation}
		if withScore {
			dest = append(dest, &a.Score)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		a.SourceNid = uint64(source)
		if target.Valid {
			a.TargetNid = uint64(target.Int64)
		}
		a.Relation = relation.String
		records = append(records, a)
	}
	return records, rows.Err()
}
