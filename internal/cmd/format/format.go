// Package format provides common output formatting utilities for CLI commands.
// Each helper picks a table-friendly shape for the table format and the raw
// value for structured formats.
package format

import (
	"io"

	"github.com/agentstation/rostermerge/internal/cmd/output"
	"github.com/agentstation/rostermerge/internal/cmd/table"
	"github.com/agentstation/rostermerge/pkg/provenance"
	"github.com/agentstation/rostermerge/pkg/reconciler"
	"github.com/agentstation/rostermerge/pkg/records"
	"github.com/agentstation/rostermerge/pkg/schema"
)

// Rows writes the canonical table.
func Rows(w io.Writer, f output.Format, t records.Table) error {
	var data any
	if isTable(f) {
		data = table.RecordsToTableData(t, true)
	} else {
		data = t.Maps()
	}
	return output.NewFormatter(f).Format(w, data)
}

// Fields writes the schema's canonical fields.
func Fields(w io.Writer, f output.Format, fields []schema.Field) error {
	var data any = fields
	if isTable(f) {
		data = table.SchemaToTableData(fields)
	}
	return output.NewFormatter(f).Format(w, data)
}

// Lookup writes the surface label to display label lookup.
func Lookup(w io.Writer, f output.Format, lookup map[string]string) error {
	var data any = lookup
	if isTable(f) {
		data = table.LookupToTableData(lookup)
	}
	return output.NewFormatter(f).Format(w, data)
}

// Provenance writes the provenance of fields matching patterns.
func Provenance(w io.Writer, f output.Format, m provenance.Map, patterns []string) error {
	if isTable(f) {
		return output.NewFormatter(f).Format(w, table.ProvenanceToTableData(m, patterns))
	}

	filtered := make(provenance.Map, len(m))
	for _, e := range m.Entries() {
		if table.MatchField(e.Field, patterns) {
			key := e.Row + ":" + e.Field
			filtered[key] = append(filtered[key], e.Provenance)
		}
	}
	return output.NewFormatter(f).Format(w, filtered)
}

// Summary is the structured form of a finished run.
type Summary struct {
	RunID      string                      `json:"run_id" yaml:"run_id"`
	Message    string                      `json:"message" yaml:"message"`
	Report     string                      `json:"report,omitempty" yaml:"report,omitempty"`
	Provenance string                      `json:"provenance,omitempty" yaml:"provenance,omitempty"`
	Sheets     []string                    `json:"sheets" yaml:"sheets"`
	Warnings   []string                    `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Stats      reconciler.ResultStatistics `json:"stats" yaml:"stats"`
}

// NewSummary builds the summary of result. Empty paths are omitted.
func NewSummary(result *reconciler.Result, reportPath, provenancePath string) Summary {
	return Summary{
		RunID:      result.RunID,
		Message:    result.Summary(),
		Report:     reportPath,
		Provenance: provenancePath,
		Sheets:     result.Metadata.Sheets,
		Warnings:   result.Warnings,
		Stats:      result.Metadata.Stats,
	}
}

// Stats writes the run summary. The table format shows the statistics as a
// property table.
func Stats(w io.Writer, f output.Format, s Summary) error {
	var data any = s
	if isTable(f) {
		data = s.Stats
	}
	return output.NewFormatter(f).Format(w, data)
}

func isTable(f output.Format) bool {
	return f == output.FormatTable || f == ""
}
