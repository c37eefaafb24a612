package storage

import (
	"disco/internal/algebra"
	"disco/internal/drs"
	"disco/internal/errors"
	"disco/internal/metadata"
)

// Store adapts the database to the query engine's store collaborator.
type Store struct {
	db *DB
}

// NewStore wraps an open database.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

var _ algebra.Store = (*Store)(nil)

// SearchKeywords performs a keyword search over the catalog.
func (s *Store) SearchKeywords(keywords string, scope algebra.SearchScope, maxHits int) ([]drs.Hit, error) {
	hits, err := s.db.SearchColumns(keywords, scope, maxHits)
	if err != nil {
		return nil, errors.Wrap(errors.StoreUnavailable, "keyword search failed", err)
	}
	return hits, nil
}

// SearchKeywordsMD performs a keyword search over annotation text.
func (s *Store) SearchKeywordsMD(keywords string, maxHits int) ([]metadata.MDHit, error) {
	records, err := s.db.SearchAnnotations(keywords, maxHits)
	if err != nil {
		return nil, errors.Wrap(errors.StoreUnavailable, "metadata keyword search failed", err)
	}

	hits := make([]metadata.MDHit, 0, len(records))
	for _, r := range records {
		hits = append(hits, r.MDHit())
	}
	return hits, nil
}

// AddAnnotation stores a new annotation.
func (s *Store) AddAnnotation(author, text, class string, sourceNid uint64, target *metadata.TargetRef) (metadata.MDHit, error) {
	rec, err := s.db.InsertAnnotation(author, text, class, sourceNid, target)
	if err != nil {
		return metadata.MDHit{}, errors.Wrap(errors.StoreUnavailable, "failed to store annotation", err)
	}
	return rec.MDHit(), nil
}

// AddComment stores a comment on an existing annotation.
func (s *Store) AddComment(author, text, annotationID string) (metadata.MDComment, error) {
	ok, err := s.db.AnnotationExists(annotationID)
	if err != nil {
		return metadata.MDComment{}, errors.Wrap(errors.StoreUnavailable, "failed to look up annotation", err)
	}
	if !ok {
		return metadata.MDComment{}, errors.Newf(errors.AnnotationNotFound,
			"no annotation with id %s", annotationID)
	}

	c, err := s.db.InsertComment(author, text, annotationID)
	if err != nil {
		return metadata.MDComment{}, errors.Wrap(errors.StoreUnavailable, "failed to store comment", err)
	}
	return c, nil
}

// AddTags attaches tags to an existing annotation.
func (s *Store) AddTags(author string, tags []string, annotationID string) error {
	ok, err := s.db.AnnotationExists(annotationID)
	if err != nil {
		return errors.Wrap(errors.StoreUnavailable, "failed to look up annotation", err)
	}
	if !ok {
		return errors.Newf(errors.AnnotationNotFound, "no annotation with id %s", annotationID)
	}

	if err := s.db.InsertTags(author, tags, annotationID); err != nil {
		return errors.Wrap(errors.StoreUnavailable, "failed to store tags", err)
	}
	return nil
}

// Metadata returns stored annotations matching the query.
func (s *Store) Metadata(q metadata.Query) ([]metadata.MDHit, error) {
	records, err := s.db.QueryAnnotations(q)
	if err != nil {
		return nil, errors.Wrap(errors.StoreUnavailable, "metadata query failed", err)
	}

	hits := make([]metadata.MDHit, 0, len(records))
	for _, r := range records {
		hits = append(hits, r.MDHit())
	}
	return hits, nil
}
