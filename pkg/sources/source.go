// Package sources defines where raw sheets come from. A source yields every
// sheet it knows about, one at a time and in a stable discovery order, so the
// reconciliation engine can absorb them strictly sequentially.
//
// Concrete sources live in internal/sources: xlsx workbooks, csv files, and a
// directory walker that dispatches to both by extension.
//
// Example usage:
//
//	src := sources.Concat(a, b)
//	for sheet, err := range src.Sheets(ctx) {
//	    if err != nil {
//	        return err
//	    }
//	    // absorb sheet
//	}
package sources

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/agentstation/rostermerge/pkg/records"
)

// ID represents the identifier of a data source.
type ID string

// String returns the string representation of a source name.
func (id ID) String() string {
	return string(id)
}

// Source represents a producer of raw sheets.
type Source interface {
	// ID returns the identifier of this source
	ID() ID

	// Sheets yields every sheet in discovery order. A non-nil error is
	// yielded once and ends the sequence.
	Sheets(ctx context.Context) iter.Seq2[records.RawSheet, error]
}

// static is an in-memory source.
type static struct {
	id     ID
	sheets []records.RawSheet
}

// Static returns a source that yields the given sheets in order.
func Static(id ID, sheets ...records.RawSheet) Source {
	return &static{id: id, sheets: sheets}
}

func (s *static) ID() ID {
	return s.id
}

func (s *static) Sheets(ctx context.Context) iter.Seq2[records.RawSheet, error] {
	return func(yield func(records.RawSheet, error) bool) {
		for _, sheet := range s.sheets {
			if err := ctx.Err(); err != nil {
				yield(records.RawSheet{}, err)
				return
			}
			if !yield(sheet, nil) {
				return
			}
		}
	}
}

// concat chains sources.
type concat struct {
	sources []Source
}

// Concat returns a source yielding the sheets of each source in turn.
func Concat(srcs ...Source) Source {
	if len(srcs) == 1 {
		return srcs[0]
	}
	return &concat{sources: srcs}
}

func (c *concat) ID() ID {
	ids := make([]string, len(c.sources))
	for i, src := range c.sources {
		ids[i] = src.ID().String()
	}
	return ID(fmt.Sprintf("concat(%s)", strings.Join(ids, ",")))
}

func (c *concat) Sheets(ctx context.Context) iter.Seq2[records.RawSheet, error] {
	return func(yield func(records.RawSheet, error) bool) {
		for _, src := range c.sources {
			for sheet, err := range src.Sheets(ctx) {
				if !yield(sheet, err) || err != nil {
					return
				}
			}
		}
	}
}

// Collect drains a source into a slice, stopping at the first error.
func Collect(ctx context.Context, src Source) ([]records.RawSheet, error) {
	var out []records.RawSheet
	for sheet, err := range src.Sheets(ctx) {
		if err != nil {
			return nil, err
		}
		out = append(out, sheet)
	}
	return out, nil
}
