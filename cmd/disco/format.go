package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"disco/internal/drs"
	"disco/internal/metadata"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *DRSResponseCLI:
		return formatDRSHuman(v), nil
	case *MRSResponseCLI:
		return formatMRSHuman(v), nil
	case *TablesResponseCLI:
		return formatTablesHuman(v), nil
	case *StatusResponseCLI:
		return formatStatusHuman(v), nil
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

// HitCLI is one discovered column or table placeholder.
type HitCLI struct {
	Nid        uint64  `json:"nid"`
	DBName     string  `json:"dbName"`
	SourceName string  `json:"sourceName"`
	FieldName  string  `json:"fieldName,omitempty"`
	Score      float64 `json:"score"`
}

// OperationCLI is one provenance trail entry.
type OperationCLI struct {
	Kind    string   `json:"kind"`
	Keyword string   `json:"keyword,omitempty"`
	Params  []HitCLI `json:"params,omitempty"`
}

// DRSResponseCLI carries a discovery result set for CLI output.
type DRSResponseCLI struct {
	Mode       string         `json:"mode"`
	Size       int            `json:"size"`
	Hits       []HitCLI       `json:"hits"`
	Provenance []OperationCLI `json:"provenance,omitempty"`
}

// MRSResponseCLI carries a metadata result set for CLI output.
type MRSResponseCLI struct {
	Size int              `json:"size"`
	Hits []metadata.MDHit `json:"hits"`
}

// TablesResponseCLI lists known tables, or the columns of one table.
type TablesResponseCLI struct {
	Tables  []TableEntryCLI `json:"tables,omitempty"`
	Columns []HitCLI        `json:"columns,omitempty"`
}

// TableEntryCLI names one table in the catalog.
type TableEntryCLI struct {
	DBName     string `json:"dbName"`
	SourceName string `json:"sourceName"`
}

// StatusResponseCLI summarizes the workspace catalog.
type StatusResponseCLI struct {
	Version string `json:"version"`
	Columns int    `json:"columns"`
	Edges   int    `json:"edges"`
}

func convertHit(h drs.Hit) HitCLI {
	return HitCLI{
		Nid:        h.Nid,
		DBName:     h.DBName,
		SourceName: h.SourceName,
		FieldName:  h.FieldName,
		Score:      h.Score,
	}
}

func convertDRS(d *drs.DRS, explain bool) *DRSResponseCLI {
	hits := make([]HitCLI, 0, d.Size())
	for _, h := range d.Hits() {
		hits = append(hits, convertHit(h))
	}
	resp := &DRSResponseCLI{
		Mode: d.Mode().String(),
		Size: d.Size(),
		Hits: hits,
	}
	if explain {
		trail := d.Provenance()
		resp.Provenance = make([]OperationCLI, 0, len(trail))
		for _, op := range trail {
			entry := OperationCLI{Kind: op.Kind.String(), Keyword: op.Keyword}
			for _, p := range op.Params {
				entry.Params = append(entry.Params, convertHit(p))
			}
			resp.Provenance = append(resp.Provenance, entry)
		}
	}
	return resp
}

func convertMRS(m *metadata.MRS) *MRSResponseCLI {
	return &MRSResponseCLI{Size: m.Size(), Hits: m.Hits()}
}

func formatDRSHuman(resp *DRSResponseCLI) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%d result(s), mode %s\n", resp.Size, resp.Mode))
	for _, h := range resp.Hits {
		if h.FieldName == "" {
			b.WriteString(fmt.Sprintf("  %s.%s  (table, score %.3f)\n",
				h.DBName, h.SourceName, h.Score))
			continue
		}
		b.WriteString(fmt.Sprintf("  %s.%s.%s  (score %.3f)\n",
			h.DBName, h.SourceName, h.FieldName, h.Score))
	}

	if len(resp.Provenance) > 0 {
		b.WriteString("\nProvenance:\n")
		for i, op := range resp.Provenance {
			line := op.Kind
			if op.Keyword != "" {
				line += fmt.Sprintf("(%q)", op.Keyword)
			}
			for _, p := range op.Params {
				line += fmt.Sprintf(" %s.%s.%s", p.DBName, p.SourceName, p.FieldName)
			}
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, line))
		}
	}

	return b.String()
}

func formatMRSHuman(resp *MRSResponseCLI) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%d annotation(s)\n", resp.Size))
	for _, h := range resp.Hits {
		b.WriteString(fmt.Sprintf("  [%s] %s: %s (by %s)\n", h.ID, h.Class, h.Text, h.Author))
		if h.Relation != "" {
			b.WriteString(fmt.Sprintf("      relation %s: %d -> %d\n", h.Relation, h.SourceNid, h.TargetNid))
		}
	}

	return b.String()
}

func formatTablesHuman(resp *TablesResponseCLI) string {
	var b strings.Builder

	if len(resp.Columns) > 0 {
		b.WriteString(fmt.Sprintf("%d column(s)\n", len(resp.Columns)))
		for _, c := range resp.Columns {
			b.WriteString(fmt.Sprintf("  %s.%s.%s\n", c.DBName, c.SourceName, c.FieldName))
		}
		return b.String()
	}

	b.WriteString(fmt.Sprintf("%d table(s)\n", len(resp.Tables)))
	for _, t := range resp.Tables {
		b.WriteString(fmt.Sprintf("  %s.%s\n", t.DBName, t.SourceName))
	}
	return b.String()
}

func formatStatusHuman(resp *StatusResponseCLI) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("disco v%s\n", resp.Version))
	b.WriteString(strings.Repeat("=", 40) + "\n")
	b.WriteString(fmt.Sprintf("  Columns: %d\n", resp.Columns))
	b.WriteString(fmt.Sprintf("  Edges:   %d\n", resp.Edges))

	return b.String()
}
