// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"sort"
	"strings"

	"github.com/agentstation/rostermerge/pkg/records"
	"github.com/agentstation/rostermerge/pkg/schema"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// Placeholder is shown for missing values.
const Placeholder = "-"

// RecordsToTableData converts the canonical table, with a leading row
// number column when numbered is true.
func RecordsToTableData(t records.Table, numbered bool) Data {
	headers := append([]string(nil), t.Columns...)
	if numbered {
		headers = append([]string{"#"}, headers...)
	}

	rows := make([][]string, 0, len(t.Rows))
	for i, rec := range t.Rows {
		row := make([]string, 0, len(headers))
		if numbered {
			row = append(row, FormatNumber(i+1))
		}
		for _, v := range rec {
			row = append(row, v.StringOr(Placeholder))
		}
		rows = append(rows, row)
	}

	data := Data{Headers: headers, Rows: rows}
	if numbered {
		data.ColumnAlignment = make([]Align, len(headers))
		data.ColumnAlignment[0] = AlignRight
		for i := 1; i < len(headers); i++ {
			data.ColumnAlignment[i] = AlignLeft
		}
	}
	return data
}

// SchemaToTableData lists the canonical fields in declared order.
func SchemaToTableData(fields []schema.Field) Data {
	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		aliases := strings.Join(f.Aliases, ", ")
		if aliases == "" {
			aliases = Placeholder
		}
		rows = append(rows, []string{f.Key, f.Label, aliases})
	}
	return Data{
		Headers: []string{"Key", "Label", "Aliases"},
		Rows:    rows,
	}
}

// LookupToTableData lists every accepted surface label with the display
// label it resolves to, sorted by surface label.
func LookupToTableData(lookup map[string]string) Data {
	surfaces := make([]string, 0, len(lookup))
	for s := range lookup {
		surfaces = append(surfaces, s)
	}
	sort.Strings(surfaces)

	rows := make([][]string, 0, len(surfaces))
	for _, s := range surfaces {
		rows = append(rows, []string{s, lookup[s]})
	}
	return Data{
		Headers: []string{"Column Label", "Field"},
		Rows:    rows,
	}
}

// FormatNumber formats an integer with thousands separators.
func FormatNumber(n int) string {
	s := strings.TrimPrefix(itoa(n), "-")
	var b strings.Builder
	if n < 0 {
		b.WriteByte('-')
	}
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}
