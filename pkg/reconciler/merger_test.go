package reconciler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/rostermerge/pkg/records"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name     string
		existing records.Record
		incoming records.Record
		want     records.Record
	}{
		{
			name:     "existing wins",
			existing: rec("T1", "Min", "Lee", ""),
			incoming: rec("T1", "Max", "Li", "2001-02-03"),
			want:     rec("T1", "Min", "Lee", "2001-02-03"),
		},
		{
			name:     "incoming fills gaps",
			existing: rec("T1", "", "Lee", ""),
			incoming: rec("", "Min", "", ""),
			want:     rec("T1", "Min", "Lee", ""),
		},
		{
			name:     "both missing stays missing",
			existing: rec("", "", "", ""),
			incoming: rec("", "", "", ""),
			want:     rec("", "", "", ""),
		},
		{
			name:     "shorter record is padded",
			existing: records.Record{records.Of("T1")},
			incoming: rec("T2", "Min", "Lee", ""),
			want:     rec("T1", "Min", "Lee", ""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing, incoming := tt.existing.Clone(), tt.incoming.Clone()

			got := Merge(tt.existing, tt.incoming)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, existing, tt.existing, "existing must not change")
			assert.Equal(t, incoming, tt.incoming, "incoming must not change")
		})
	}
}

func TestMergeIsFirstWriteWins(t *testing.T) {
	a := rec("T1", "Min", "", "2001-02-03")
	b := rec("T1", "Max", "Lee", "1999-01-01")

	// Every field present in the first argument survives, whichever order.
	ab, ba := Merge(a, b), Merge(b, a)
	for i := range a {
		if a[i].Valid {
			assert.Equal(t, a[i], ab[i])
		}
		if b[i].Valid {
			assert.Equal(t, b[i], ba[i])
		}
	}
}

func TestTablePut(t *testing.T) {
	table := NewTable[string]()

	assert.True(t, table.Put("T1", rec("T1", "", "Lee", ""), "a#S"))
	assert.True(t, table.Put("T2", rec("T2", "Ann", "Ko", ""), "a#S"))
	assert.False(t, table.Put("T1", rec("T1", "Min", "Li", "2001-02-03"), "b#S"))

	is := assert.New(t)
	is.Equal(2, table.Len())

	e, ok := table.Get("T1")
	is.True(ok)
	is.Equal(rec("T1", "Min", "Lee", "2001-02-03"), e.Record)
	is.Equal([]string{"a#S", "b#S", "a#S", "b#S"}, e.Sources)
	is.Equal("", e.Source(9))

	entries := table.Entries()
	is.Equal("T1", entries[0].Key, "first-insertion order")
	is.Equal("T2", entries[1].Key)

	_, ok = table.Get("T3")
	is.False(ok)
}
