package api

import (
	"disco/internal/algebra"
	"disco/internal/drs"
	"disco/internal/metadata"
)

// InputSpec is the wire form of a general input. Exactly one field
// should be set; an empty spec means no input.
type InputSpec struct {
	Nid   *uint64   `json:"nid,omitempty"`
	Table string    `json:"table,omitempty"`
	Node  *NodeSpec `json:"node,omitempty"`
}

// NodeSpec names a column as db/table/field.
type NodeSpec struct {
	DB    string `json:"db"`
	Table string `json:"table"`
	Field string `json:"field"`
}

// ToInput converts the spec to an engine input.
func (in InputSpec) ToInput() algebra.Input {
	switch {
	case in.Nid != nil:
		return algebra.FromNid(*in.Nid)
	case in.Node != nil:
		return algebra.FromNode(in.Node.DB, in.Node.Table, in.Node.Field)
	case in.Table != "":
		return algebra.FromString(in.Table)
	default:
		return algebra.NoInput()
	}
}

// HitEntry is the wire form of a result hit.
type HitEntry struct {
	Nid        uint64  `json:"nid"`
	DBName     string  `json:"dbName"`
	SourceName string  `json:"sourceName"`
	FieldName  string  `json:"fieldName,omitempty"`
	Score      float64 `json:"score"`
}

// OperationEntry is the wire form of one provenance trail entry.
type OperationEntry struct {
	Op      string     `json:"op"`
	Keyword string     `json:"keyword,omitempty"`
	Params  []HitEntry `json:"params,omitempty"`
}

// DRSResponse is the wire form of a result set.
type DRSResponse struct {
	Mode       string           `json:"mode"`
	Size       int              `json:"size"`
	Hits       []HitEntry       `json:"hits"`
	Provenance []OperationEntry `json:"provenance,omitempty"`
}

func hitEntry(h drs.Hit) HitEntry {
	return HitEntry{
		Nid:        h.Nid,
		DBName:     h.DBName,
		SourceName: h.SourceName,
		FieldName:  h.FieldName,
		Score:      h.Score,
	}
}

// renderDRS converts a result set to its wire form; with explain set,
// the provenance trail is included.
func renderDRS(d *drs.DRS, explain bool) DRSResponse {
	resp := DRSResponse{
		Mode: d.Mode().String(),
		Size: d.Size(),
		Hits: make([]HitEntry, 0, d.Size()),
	}
	for _, h := range d.Hits() {
		resp.Hits = append(resp.Hits, hitEntry(h))
	}
	if explain {
		for _, op := range d.Provenance() {
			entry := OperationEntry{
				Op:      op.Kind.String(),
				Keyword: op.Keyword,
			}
			for _, p := range op.Params {
				entry.Params = append(entry.Params, hitEntry(p))
			}
			resp.Provenance = append(resp.Provenance, entry)
		}
	}
	return resp
}

// MDHitEntry is the wire form of a metadata hit.
type MDHitEntry struct {
	ID        string  `json:"id"`
	Author    string  `json:"author"`
	Text      string  `json:"text"`
	Class     string  `json:"class,omitempty"`
	SourceNid uint64  `json:"sourceNid,omitempty"`
	TargetNid uint64  `json:"targetNid,omitempty"`
	Relation  string  `json:"relation,omitempty"`
	Score     float64 `json:"score,omitempty"`
}

// MRSResponse is the wire form of a metadata result set.
type MRSResponse struct {
	Size int          `json:"size"`
	Hits []MDHitEntry `json:"hits"`
}

func renderMRS(m *metadata.MRS) MRSResponse {
	resp := MRSResponse{
		Size: m.Size(),
		Hits: make([]MDHitEntry, 0, m.Size()),
	}
	for _, h := range m.Hits() {
		resp.Hits = append(resp.Hits, MDHitEntry{
			ID:        h.ID,
			Author:    h.Author,
			Text:      h.Text,
			Class:     h.Class,
			SourceNid: h.SourceNid,
			TargetNid: h.TargetNid,
			Relation:  h.Relation,
			Score:     h.Score,
		})
	}
	return resp
}
