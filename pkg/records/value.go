// Package records defines the tabular data model shared by the reconciliation
// engine: string-or-missing cells, raw sheets as produced by sources,
// normalized records aligned to the schema, and the canonical output table.
package records

import "strings"

// Value is a cell that is either a string or missing.
// The zero value is missing.
type Value struct {
	String string
	Valid  bool
}

// Of returns a present value holding s. An empty string is still present;
// use Cell to map blank input to missing.
func Of(s string) Value {
	return Value{String: s, Valid: true}
}

// Missing returns a missing value.
func Missing() Value {
	return Value{}
}

// Cell converts a raw spreadsheet cell into a Value. Blank cells are missing.
func Cell(s string) Value {
	if strings.TrimSpace(s) == "" {
		return Missing()
	}
	return Of(s)
}

// IsMissing reports whether the value is absent.
func (v Value) IsMissing() bool {
	return !v.Valid
}

// Or returns v when present, otherwise fallback.
func (v Value) Or(fallback Value) Value {
	if v.Valid {
		return v
	}
	return fallback
}

// StringOr returns the string when present, otherwise def.
func (v Value) StringOr(def string) string {
	if v.Valid {
		return v.String
	}
	return def
}

// MarshalText renders missing values as an empty string.
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.String), nil
}
