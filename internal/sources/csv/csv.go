// Package csv reads comma separated files as a single sheet named after the
// file, with the first record taken as the header.
package csv

import (
	"context"
	"encoding/csv"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/rostermerge/pkg/errors"
	"github.com/agentstation/rostermerge/pkg/records"
	"github.com/agentstation/rostermerge/pkg/sources"
)

// Source reads one csv file.
type Source struct {
	path  string
	name  string
	comma rune
}

// Option configures a csv source.
type Option func(*Source)

// WithName sets the file id reported on the sheet. It defaults to the path.
func WithName(name string) Option {
	return func(s *Source) {
		s.name = name
	}
}

// WithComma sets the field delimiter.
func WithComma(r rune) Option {
	return func(s *Source) {
		s.comma = r
	}
}

// New creates a source for the file at path.
func New(path string, opts ...Option) *Source {
	s := &Source{path: path, name: path, comma: ','}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the file id.
func (s *Source) ID() sources.ID {
	return sources.ID(s.name)
}

// SheetName is the sheet id given to a csv file: its base name without
// extension.
func SheetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Sheets yields the file as one sheet.
func (s *Source) Sheets(ctx context.Context) iter.Seq2[records.RawSheet, error] {
	return func(yield func(records.RawSheet, error) bool) {
		if err := ctx.Err(); err != nil {
			yield(records.RawSheet{}, err)
			return
		}

		sheet, err := s.read()
		if err != nil {
			yield(records.RawSheet{}, err)
			return
		}
		yield(sheet, nil)
	}
}

func (s *Source) read() (records.RawSheet, error) {
	f, err := os.Open(s.path) //nolint:gosec // path comes from directory discovery
	if err != nil {
		return records.RawSheet{}, errors.WrapIO("open", s.path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.Comma = s.comma
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return records.RawSheet{}, errors.WrapParse("csv", s.path, err)
	}

	name := SheetName(s.path)
	if len(rows) == 0 {
		return records.NewRawSheet(s.name, name, nil, nil), nil
	}
	header := rows[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return records.NewRawSheet(s.name, name, header, rows[1:]), nil
}
