package algebra

import (
	"disco/internal/drs"
	"disco/internal/errors"
	"disco/internal/metadata"
)

// AnnotationRef names the target side of a relational annotation.
type AnnotationRef struct {
	Target   Input
	Relation metadata.MDRelation
}

// Annotate stores annotations for every source node. With a ref, one
// annotation is stored per (source, target) pair; the relation's stored
// orientation decides which side is persisted as the source.
func (a *Algebra) Annotate(author, text string, class metadata.MDClass, source Input, ref *AnnotationRef) (*metadata.MRS, error) {
	src, err := a.fieldsOnly(source)
	if err != nil {
		return nil, err
	}

	classLabel, err := class.StorageLabel()
	if err != nil {
		return nil, err
	}

	out := metadata.NewMRS(nil)

	// Non-relational form: one annotation per source node.
	if ref == nil {
		for _, h := range src.Hits() {
			hit, err := a.store.AddAnnotation(author, text, classLabel, h.Nid, nil)
			if err != nil {
				return nil, err
			}
			out.Add(hit)
		}
		return out, nil
	}

	tgt, err := a.fieldsOnly(ref.Target)
	if err != nil {
		return nil, err
	}

	label, nidIsSource, err := ref.Relation.StorageRef()
	if err != nil {
		return nil, err
	}
	if !nidIsSource {
		src, tgt = tgt, src
	}

	for _, hs := range src.Hits() {
		for _, ht := range tgt.Hits() {
			hit, err := a.store.AddAnnotation(author, text, classLabel, hs.Nid,
				&metadata.TargetRef{Nid: ht.Nid, Relation: label})
			if err != nil {
				return nil, err
			}
			out.Add(hit)
		}
	}
	return out, nil
}

// AddComments attaches free-text comments to an existing annotation.
func (a *Algebra) AddComments(author string, comments []string, annotationID string) (*metadata.MRS, error) {
	out := metadata.NewMRS(nil)
	for _, text := range comments {
		c, err := a.store.AddComment(author, text, annotationID)
		if err != nil {
			return nil, err
		}
		out.Add(metadata.MDHit{
			ID:     c.ID,
			Author: c.Author,
			Text:   c.Text,
		})
	}
	return out, nil
}

// AddTags attaches tags to an existing annotation.
func (a *Algebra) AddTags(author string, tags []string, annotationID string) error {
	return a.store.AddTags(author, tags, annotationID)
}

// MDSearch returns stored metadata referencing the nodes of the general
// input; with a relation, only metadata mentioning the nodes on the
// relation's query side. An absent input returns all stored metadata.
func (a *Algebra) MDSearch(in Input, rel *metadata.MDRelation) (*metadata.MRS, error) {
	if in.IsNone() {
		hits, err := a.store.Metadata(metadata.Query{})
		if err != nil {
			return nil, err
		}
		return metadata.NewMRS(hits), nil
	}

	nodes, err := a.fieldsOnly(in)
	if err != nil {
		return nil, err
	}

	out := metadata.NewMRS(nil)

	if rel == nil {
		for _, h := range nodes.Hits() {
			nid := h.Nid
			hits, err := a.store.Metadata(metadata.Query{Nid: &nid})
			if err != nil {
				return nil, err
			}
			out.Extend(hits)
		}
		return out, nil
	}

	label, nidIsSource, err := rel.StorageRef()
	if err != nil {
		return nil, err
	}
	for _, h := range nodes.Hits() {
		nid := h.Nid
		hits, err := a.store.Metadata(metadata.Query{
			Nid:         &nid,
			Relation:    label,
			NidIsSource: nidIsSource,
		})
		if err != nil {
			return nil, err
		}
		out.Extend(hits)
	}
	return out, nil
}

// MDKeywordSearch performs a keyword search over annotations and comments.
func (a *Algebra) MDKeywordSearch(keywords string, maxResults int) (*metadata.MRS, error) {
	if maxResults <= 0 {
		maxResults = 10
	}
	hits, err := a.store.SearchKeywordsMD(keywords, maxResults)
	if err != nil {
		return nil, err
	}
	return metadata.NewMRS(hits), nil
}

// fieldsOnly normalizes an input and rejects anything but column
// granularity with INVALID_MODE.
func (a *Algebra) fieldsOnly(in Input) (*drs.DRS, error) {
	d, err := a.ToDRS(in)
	if err != nil {
		return nil, err
	}
	if d.Mode() != drs.ModeFields {
		return nil, errors.New(errors.InvalidMode, "metadata operations require column-granularity input")
	}
	return d, nil
}
