package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue(t *testing.T) {
	assert.True(t, Missing().IsMissing())
	assert.True(t, Value{}.IsMissing())
	assert.False(t, Of("").IsMissing())

	assert.Equal(t, Missing(), Cell("   "))
	assert.Equal(t, Of(" T1 "), Cell(" T1 "))

	assert.Equal(t, Of("a"), Of("a").Or(Of("b")))
	assert.Equal(t, Of("b"), Missing().Or(Of("b")))
	assert.Equal(t, "-", Missing().StringOr("-"))
}

func TestRecordClone(t *testing.T) {
	r := Record{Of("T1"), Missing()}
	c := r.Clone()
	c[1] = Of("Lee")

	assert.True(t, r[1].IsMissing())
	assert.False(t, r.Equal(c))
	assert.Equal(t, []string{"T1", "Lee"}, c.Strings())
	assert.Equal(t, Missing(), r.Get(5))
}

func TestRawSheet(t *testing.T) {
	s := NewRawSheet("a.xlsx", "Sheet1", []string{"Tube", "Name"}, [][]string{{"T1"}, {"", "Min"}})

	assert.Equal(t, "a.xlsx#Sheet1", s.ID())
	assert.Equal(t, Of("T1"), s.At(0, 0))
	assert.Equal(t, Missing(), s.At(0, 1), "short rows pad with missing")
	assert.Equal(t, Missing(), s.At(1, 0))
	assert.Equal(t, Of("Min"), s.At(1, 1))
}

func TestTableMaps(t *testing.T) {
	table := Table{
		Columns: []string{"Tube Number", "First Name"},
		Rows:    []Record{{Of("T1"), Missing()}},
	}

	assert.Equal(t, 1, table.Len())
	assert.Equal(t, 1, table.Index("First Name"))
	assert.Equal(t, -1, table.Index("Nope"))
	assert.Equal(t, []map[string]string{{"Tube Number": "T1"}}, table.Maps())
	assert.Equal(t, [][]string{{"T1", ""}}, table.StringRows())
}
