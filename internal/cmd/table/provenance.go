package table

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agentstation/rostermerge/pkg/provenance"
)

// ProvenanceToTableData converts provenance to table format, one line per
// fused field. Only fields matching one of patterns are shown; no patterns
// means all fields.
func ProvenanceToTableData(m provenance.Map, patterns []string) Data {
	var rows [][]string
	lastRow := ""
	for _, e := range m.Entries() {
		if !MatchField(e.Field, patterns) {
			continue
		}

		// Row id only on the first line of each row
		row := ""
		if e.Row != lastRow {
			row = e.Row
			lastRow = e.Row
		}

		reason := e.Reason
		if reason == "" {
			reason = Placeholder
		}
		rows = append(rows, []string{row, e.Field, e.Value, string(e.Origin), e.Source, reason})
	}

	return Data{
		Headers: []string{"Order", "Field", "Value", "Table", "Source", "Reason"},
		Rows:    rows,
		ColumnAlignment: []Align{
			AlignLeft,   // Order
			AlignLeft,   // Field
			AlignLeft,   // Value
			AlignCenter, // Table
			AlignLeft,   // Source
			AlignLeft,   // Reason
		},
	}
}

// MatchField checks if a field matches any of the provided patterns.
// Supports wildcard matching (e.g., "*name" matches "First Name").
// Matching is case-insensitive for better user experience.
func MatchField(field string, patterns []string) bool {
	if len(patterns) == 0 {
		return true // No patterns means match all
	}

	fieldLower := strings.ToLower(field)
	for _, pattern := range patterns {
		matched, err := filepath.Match(strings.ToLower(pattern), fieldLower)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
