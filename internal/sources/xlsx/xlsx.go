// Package xlsx reads Excel workbooks. Every sheet of a workbook becomes one
// raw sheet, with the first row taken as the header.
package xlsx

import (
	"context"
	"iter"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/rostermerge/pkg/errors"
	"github.com/agentstation/rostermerge/pkg/records"
	"github.com/agentstation/rostermerge/pkg/sources"
)

// Source reads one workbook.
type Source struct {
	path string
	name string
}

// Option configures an xlsx source.
type Option func(*Source)

// WithName sets the file id reported on each sheet. It defaults to the path.
func WithName(name string) Option {
	return func(s *Source) {
		s.name = name
	}
}

// New creates a source for the workbook at path.
func New(path string, opts ...Option) *Source {
	s := &Source{path: path, name: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the file id of the workbook.
func (s *Source) ID() sources.ID {
	return sources.ID(s.name)
}

// Sheets yields the workbook's sheets in workbook order.
func (s *Source) Sheets(ctx context.Context) iter.Seq2[records.RawSheet, error] {
	return func(yield func(records.RawSheet, error) bool) {
		f, err := excelize.OpenFile(s.path)
		if err != nil {
			yield(records.RawSheet{}, errors.WrapParse("xlsx", s.path, err))
			return
		}
		defer func() { _ = f.Close() }()

		for _, name := range f.GetSheetList() {
			if err := ctx.Err(); err != nil {
				yield(records.RawSheet{}, err)
				return
			}

			rows, err := f.GetRows(name)
			if err != nil {
				yield(records.RawSheet{}, errors.WrapParse("xlsx", s.path, err))
				return
			}
			if !yield(toSheet(s.name, name, rows), nil) {
				return
			}
		}
	}
}

// toSheet splits off the header row. An empty sheet has no columns.
func toSheet(file, sheet string, rows [][]string) records.RawSheet {
	if len(rows) == 0 {
		return records.NewRawSheet(file, sheet, nil, nil)
	}
	return records.NewRawSheet(file, sheet, rows[0], rows[1:])
}
