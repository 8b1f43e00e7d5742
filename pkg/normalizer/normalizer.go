// Package normalizer projects raw sheets onto the canonical field set of a
// schema registry. Aliased columns are renamed, unknown columns dropped, and
// rows without any identifying value discarded.
package normalizer

import (
	"strings"

	"github.com/agentstation/rostermerge/pkg/errors"
	"github.com/agentstation/rostermerge/pkg/records"
	"github.com/agentstation/rostermerge/pkg/schema"
)

// Normalizer turns raw sheets into normalized records.
type Normalizer struct {
	registry *schema.Registry
}

// New creates a normalizer bound to a registry.
func New(registry *schema.Registry) *Normalizer {
	return &Normalizer{registry: registry}
}

// Plan is the validated projection of one sheet's columns onto the schema.
type Plan struct {
	// Sources lists, per canonical field, the sheet column indexes that
	// resolve to it, in column order.
	Sources [][]int

	// Unknown lists the column labels that resolve to no canonical field.
	Unknown []string
}

// Plan resolves a sheet header against the registry.
func (n *Normalizer) Plan(columns []string) Plan {
	p := Plan{Sources: make([][]int, n.registry.Len())}
	for i, column := range columns {
		label, ok := n.registry.Resolve(column)
		if !ok {
			p.Unknown = append(p.Unknown, column)
			continue
		}
		pos := n.registry.LabelIndex(label)
		p.Sources[pos] = append(p.Sources[pos], i)
	}
	return p
}

// Has reports whether at least one sheet column feeds the field at pos.
func (p Plan) Has(pos int) bool {
	return len(p.Sources[pos]) > 0
}

// Normalize projects a raw sheet onto the canonical fields.
//
// A sheet with no order id, first name or last name column is rejected with
// a MissingIdentityFieldsError and yields no records. Otherwise every
// returned record holds all canonical fields, and rows where the three
// identity fields are all missing are dropped. When several columns feed the
// same field, the first non-missing cell in column order wins. Cells are
// trimmed of surrounding whitespace.
func (n *Normalizer) Normalize(sheet records.RawSheet) ([]records.Record, error) {
	plan := n.Plan(sheet.Columns)

	orderID, first, last := n.registry.OrderID(), n.registry.FirstName(), n.registry.LastName()
	if !plan.Has(orderID) && !plan.Has(first) && !plan.Has(last) {
		return nil, errors.NewMissingIdentityFieldsError(sheet.File, sheet.Sheet)
	}

	out := make([]records.Record, 0, len(sheet.Rows))
	for r := range sheet.Rows {
		rec := n.project(sheet, plan, r)
		if rec[orderID].IsMissing() && rec[first].IsMissing() && rec[last].IsMissing() {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// project builds the record for row r.
func (n *Normalizer) project(sheet records.RawSheet, plan Plan, r int) records.Record {
	rec := records.NewRecord(n.registry.Len())
	for pos, cols := range plan.Sources {
		for _, c := range cols {
			if v := clean(sheet.At(r, c)); v.Valid {
				rec[pos] = v
				break
			}
		}
	}
	return rec
}

// clean trims a cell, mapping blank to missing.
func clean(v records.Value) records.Value {
	if !v.Valid {
		return v
	}
	return records.Cell(strings.TrimSpace(v.String))
}
