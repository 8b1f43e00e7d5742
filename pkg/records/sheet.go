package records

import "fmt"

// RawSheet is one sheet as read from an input file, before normalization.
// Rows are positional against Columns; a row shorter than Columns is padded
// with missing values by At.
type RawSheet struct {
	File    string
	Sheet   string
	Columns []string
	Rows    [][]Value
}

// ID identifies the sheet for logging and provenance.
func (s RawSheet) ID() string {
	return fmt.Sprintf("%s#%s", s.File, s.Sheet)
}

// At returns the cell at row r, column c, or missing when the row is short.
func (s RawSheet) At(r, c int) Value {
	row := s.Rows[r]
	if c < 0 || c >= len(row) {
		return Missing()
	}
	return row[c]
}

// NewRawSheet builds a sheet from a header and string rows, mapping blank
// cells to missing. It is the common path for spreadsheet and CSV readers.
func NewRawSheet(file, sheet string, header []string, rows [][]string) RawSheet {
	out := RawSheet{
		File:    file,
		Sheet:   sheet,
		Columns: append([]string(nil), header...),
		Rows:    make([][]Value, 0, len(rows)),
	}
	for _, row := range rows {
		values := make([]Value, len(row))
		for i, cell := range row {
			values[i] = Cell(cell)
		}
		out.Rows = append(out.Rows, values)
	}
	return out
}
