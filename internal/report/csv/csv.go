// Package csv writes the canonical table as comma separated values: one
// header record of display labels, then one record per row.
package csv

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/agentstation/rostermerge/pkg/constants"
	"github.com/agentstation/rostermerge/pkg/errors"
	"github.com/agentstation/rostermerge/pkg/records"
	"github.com/agentstation/rostermerge/pkg/report"
)

// Writer writes a csv report to a file.
type Writer struct {
	path string
}

// New creates a writer for path. Report options are accepted for symmetry
// with the workbook writer; csv has no sheets.
func New(path string, _ ...report.Option) *Writer {
	return &Writer{path: path}
}

// Write creates or truncates the file and encodes the table into it.
func (w *Writer) Write(ctx context.Context, table records.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(w.path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(w.path), err)
	}

	f, err := os.Create(w.path) //nolint:gosec // path comes from the command line
	if err != nil {
		return errors.WrapIO("create", w.path, err)
	}
	if err := Encode(f, table); err != nil {
		_ = f.Close()
		return errors.WrapIO("write", w.path, err)
	}
	return errors.WrapIO("close", w.path, f.Close())
}

// Encode writes the table to out. Missing values are empty fields.
func Encode(out io.Writer, table records.Table) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(table.Columns); err != nil {
		return err
	}
	for _, row := range table.Rows {
		if err := cw.Write(row.Strings()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
