// Package report defines the output boundary: writers that persist the
// canonical table, and the formats they produce.
package report

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/agentstation/rostermerge/pkg/constants"
	"github.com/agentstation/rostermerge/pkg/errors"
	"github.com/agentstation/rostermerge/pkg/records"
)

// Writer persists a canonical table.
type Writer interface {
	Write(ctx context.Context, table records.Table) error
}

// Format is a report file format.
type Format int

// Format constants.
const (
	FormatXLSX Format = iota
	FormatCSV
)

// IsValid checks if the format is valid.
func (f Format) IsValid() bool {
	switch f {
	case FormatXLSX, FormatCSV:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatXLSX:
		return "xlsx"
	case FormatCSV:
		return "csv"
	}
	return "unknown"
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case constants.ExtXLSX:
		return FormatXLSX, nil
	case constants.ExtCSV:
		return FormatCSV, nil
	}
	return 0, &errors.ResourceError{
		Operation: "write",
		Resource:  "report",
		ID:        path,
		Message:   "unsupported extension, use .xlsx or .csv",
		Err:       errors.ErrUnsupportedFormat,
	}
}

// Options is the configuration shared by report writers.
type Options struct {
	sheet string
}

// Sheet returns the sheet name used by workbook writers.
func (o *Options) Sheet() string {
	return o.sheet
}

// Defaults returns the default report options.
func Defaults() *Options {
	return &Options{
		sheet: constants.DefaultSheetName,
	}
}

// Apply applies the given options to the report options.
func (o *Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(o)
	}
	return *o
}

// Option is a function that configures report options.
type Option func(*Options)

// WithSheet names the sheet a workbook writer fills.
func WithSheet(name string) Option {
	return func(o *Options) {
		if name != "" {
			o.sheet = name
		}
	}
}
