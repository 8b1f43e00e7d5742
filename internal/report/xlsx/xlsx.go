// Package xlsx writes the canonical table to an Excel workbook: a bold
// header row of display labels followed by the rows, with no index column.
package xlsx

import (
	"context"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/rostermerge/pkg/constants"
	"github.com/agentstation/rostermerge/pkg/errors"
	"github.com/agentstation/rostermerge/pkg/records"
	"github.com/agentstation/rostermerge/pkg/report"
)

// Writer writes an xlsx report.
type Writer struct {
	path    string
	options report.Options
}

// New creates a writer for path.
func New(path string, opts ...report.Option) *Writer {
	return &Writer{path: path, options: report.Defaults().Apply(opts...)}
}

// Write builds the workbook and saves it, replacing any existing file.
func (w *Writer) Write(ctx context.Context, table records.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := Build(table, w.options.Sheet())
	if err != nil {
		return errors.WrapResource("build", "report", w.path, err)
	}
	defer func() { _ = f.Close() }()

	if err := os.MkdirAll(filepath.Dir(w.path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(w.path), err)
	}
	if err := f.SaveAs(w.path); err != nil {
		return errors.WrapIO("write", w.path, err)
	}
	return nil
}

// Build returns an in-memory workbook holding the table on one sheet.
// Missing values are left as empty cells.
func Build(table records.Table, sheet string) (*excelize.File, error) {
	f := excelize.NewFile()
	if sheet != constants.DefaultSheetName {
		if err := f.SetSheetName(constants.DefaultSheetName, sheet); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	header := make([]any, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := boldHeader(f, sheet, len(header)); err != nil {
		_ = f.Close()
		return nil, err
	}

	for r, row := range table.Rows {
		cells := make([]any, len(row))
		for i, v := range row {
			if v.Valid {
				cells[i] = v.String
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return f, nil
}

func boldHeader(f *excelize.File, sheet string, columns int) error {
	if columns == 0 {
		return nil
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}
