package records

// Table is the canonical output: display labels in schema order and one
// record per reconciled entity.
type Table struct {
	Columns []string
	Rows    []Record
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of the column labelled label, or -1.
func (t Table) Index(label string) int {
	for i, c := range t.Columns {
		if c == label {
			return i
		}
	}
	return -1
}

// Maps renders each row as a label to string map, omitting missing values.
// It is the shape used by the JSON and YAML formatters.
func (t Table) Maps() []map[string]string {
	out := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		m := make(map[string]string, len(t.Columns))
		for i, label := range t.Columns {
			if v := row.Get(i); v.Valid {
				m[label] = v.String
			}
		}
		out = append(out, m)
	}
	return out
}

// StringRows renders every row with missing values as empty strings.
func (t Table) StringRows() [][]string {
	out := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, row.Strings())
	}
	return out
}
