package reconciler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentstation/rostermerge/pkg/records"
	"github.com/agentstation/rostermerge/pkg/schema"
)

// testRegistry is a four-field schema: tube number, names and date of birth.
func testRegistry(t testing.TB) *schema.Registry {
	t.Helper()
	reg, err := schema.New([]schema.Field{
		{Key: "tube-number", Label: "Tube Number", Aliases: []string{"Tube No"}},
		{Key: "first-name", Label: "First Name", Aliases: []string{"Given Name"}},
		{Key: "last-name", Label: "Last Name", Aliases: []string{"Surname"}},
		{Key: "date-of-birth", Label: "Date of Birth", Aliases: []string{"DOB"}},
	})
	require.NoError(t, err)
	return reg
}

// rec builds a record in schema order; "" is missing.
func rec(fields ...string) records.Record {
	r := records.NewRecord(4)
	for i, f := range fields {
		r[i] = records.Cell(f)
	}
	return r
}

// sheet builds a raw sheet with the schema's display labels as header.
func sheet(file string, rows ...[]string) records.RawSheet {
	return records.NewRawSheet(file, "Sheet1", []string{"Tube Number", "First Name", "Last Name", "Date of Birth"}, rows)
}
