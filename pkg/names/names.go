// Package names canonicalizes person names and holds the allow-list used by
// search mode. Matching is exact after canonicalization: surrounding
// whitespace is trimmed and case is folded to "Xxxx", nothing else.
package names

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/rostermerge/pkg/records"
	"github.com/agentstation/rostermerge/pkg/schema"
)

// Canonicalize trims s and capitalizes it: the first rune in title case,
// the rest lower case. A blank result is missing.
func Canonicalize(s string) records.Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return records.Missing()
	}

	// cases.Caser is stateful; a fresh one per call keeps this safe to share.
	first, size := utf8.DecodeRuneInString(s)
	rest := cases.Lower(language.Und).String(s[size:])
	return records.Of(string(unicode.ToTitle(first)) + rest)
}

// CanonicalizeValue applies Canonicalize to a cell, treating missing as empty.
func CanonicalizeValue(v records.Value) records.Value {
	return Canonicalize(v.StringOr(""))
}

// CanonicalizeRecords rewrites the first and last name fields of each record
// in place. Applying it twice yields the same records as once.
func CanonicalizeRecords(reg *schema.Registry, recs []records.Record) {
	first, last := reg.FirstName(), reg.LastName()
	for _, rec := range recs {
		rec[first] = CanonicalizeValue(rec[first])
		rec[last] = CanonicalizeValue(rec[last])
	}
}

// Key is a (first name, last name) pair. Either part may be missing.
type Key struct {
	First records.Value
	Last  records.Value
}

// KeyOf extracts the name key of a record.
func KeyOf(reg *schema.Registry, rec records.Record) Key {
	return Key{First: rec.Get(reg.FirstName()), Last: rec.Get(reg.LastName())}
}

// NewKey canonicalizes a raw first and last name into a key.
func NewKey(first, last string) Key {
	return Key{First: Canonicalize(first), Last: Canonicalize(last)}
}

// Complete reports whether both parts are present.
func (k Key) Complete() bool {
	return k.First.Valid && k.Last.Valid
}

// String renders the key as "First Last" with "?" for a missing part.
func (k Key) String() string {
	return k.First.StringOr("?") + " " + k.Last.StringOr("?")
}

// Less orders keys by first name then last name, missing before present.
func (k Key) Less(other Key) bool {
	if c := compare(k.First, other.First); c != 0 {
		return c < 0
	}
	return compare(k.Last, other.Last) < 0
}

func compare(a, b records.Value) int {
	switch {
	case !a.Valid && !b.Valid:
		return 0
	case !a.Valid:
		return -1
	case !b.Valid:
		return 1
	default:
		return strings.Compare(a.String, b.String)
	}
}
