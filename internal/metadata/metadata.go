// Package metadata holds the annotation-side value types: annotation
// classes, semantic relations between annotated nodes, and the metadata
// result set.
package metadata

import "fmt"

// MDClass classifies an annotation.
type MDClass int

const (
	// Warning flags a data quality or usage concern
	Warning MDClass = iota
	// Insight records something learned about the data
	Insight
	// Question records an open question about the data
	Question
)

// StorageLabel returns the label an annotation class is persisted under.
func (c MDClass) StorageLabel() (string, error) {
	switch c {
	case Warning:
		return "warning", nil
	case Insight:
		return "insight", nil
	case Question:
		return "question", nil
	}
	return "", fmt.Errorf("unknown annotation class %d", c)
}

// ParseMDClass maps a user-supplied label to an MDClass.
func ParseMDClass(s string) (MDClass, error) {
	switch s {
	case "warning":
		return Warning, nil
	case "insight":
		return Insight, nil
	case "question":
		return Question, nil
	}
	return 0, fmt.Errorf("unknown annotation class %q", s)
}

// MDRelation describes a directed semantic link between two annotated nodes.
// Superclass/container relations are the inverse orientation of
// subclass/member and share the same stored label.
type MDRelation int

const (
	MeansSameAs MDRelation = iota
	MeansDiffFrom
	IsSubclassOf
	IsSuperclassOf
	IsMemberOf
	IsContainerOf
)

// StorageRef resolves a relation to its stored label plus whether the query
// node is the source (true) or the target (false) of the stored relation.
func (r MDRelation) StorageRef() (label string, nidIsSource bool, err error) {
	switch r {
	case MeansSameAs:
		return "same", true, nil
	case MeansDiffFrom:
		return "different", true, nil
	case IsSubclassOf:
		return "subclass", true, nil
	case IsSuperclassOf:
		return "subclass", false, nil
	case IsMemberOf:
		return "member", true, nil
	case IsContainerOf:
		return "member", false, nil
	}
	return "", false, fmt.Errorf("unknown metadata relation %d", r)
}

// ParseMDRelation maps a user-supplied label to an MDRelation.
func ParseMDRelation(s string) (MDRelation, error) {
	switch s {
	case "means-same-as":
		return MeansSameAs, nil
	case "means-diff-from":
		return MeansDiffFrom, nil
	case "is-subclass-of":
		return IsSubclassOf, nil
	case "is-superclass-of":
		return IsSuperclassOf, nil
	case "is-member-of":
		return IsMemberOf, nil
	case "is-container-of":
		return IsContainerOf, nil
	}
	return 0, fmt.Errorf("unknown metadata relation %q", s)
}

// MDHit is one stored annotation record.
type MDHit struct {
	ID        string  `json:"id"`
	Author    string  `json:"author"`
	Text      string  `json:"text"`
	Class     string  `json:"class"`
	SourceNid uint64  `json:"sourceNid"`
	TargetNid uint64  `json:"targetNid,omitempty"`
	Relation  string  `json:"relation,omitempty"`
	Score     float64 `json:"score"`
}

// MDComment is one comment attached to an annotation.
type MDComment struct {
	ID           string `json:"id"`
	AnnotationID string `json:"annotationId"`
	Author       string `json:"author"`
	Text         string `json:"text"`
}

// TargetRef names the stored target side of a relational annotation.
type TargetRef struct {
	Nid      uint64
	Relation string
}

// Query selects stored metadata. A nil Nid selects everything.
type Query struct {
	Nid         *uint64
	Relation    string
	NidIsSource bool
}
