package records

// Record is a normalized row: one Value per canonical field, in the schema's
// declared field order. Records are treated as immutable once built.
type Record []Value

// NewRecord returns a record of n missing values.
func NewRecord(n int) Record {
	return make(Record, n)
}

// Clone returns a copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	copy(out, r)
	return out
}

// Get returns the value at index i, or missing when out of range.
func (r Record) Get(i int) Value {
	if i < 0 || i >= len(r) {
		return Missing()
	}
	return r[i]
}

// Equal reports whether two records hold the same values.
func (r Record) Equal(other Record) bool {
	if len(r) != len(other) {
		return false
	}
	for i := range r {
		if r[i] != other[i] {
			return false
		}
	}
	return true
}

// Strings renders the record with missing values as empty strings.
func (r Record) Strings() []string {
	out := make([]string, len(r))
	for i, v := range r {
		out[i] = v.String
	}
	return out
}
