package reconciler

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/rostermerge/pkg/provenance"
	"github.com/agentstation/rostermerge/pkg/records"
)

func TestAggregateFusesOrderAndIdentity(t *testing.T) {
	reg := testRegistry(t)
	acc, err := NewAccumulator(reg)
	require.NoError(t, err)

	acc.Absorb("a#S", []records.Record{rec("T1", "Min", "Lee", "")})
	acc.Absorb("b#S", []records.Record{rec("", "Min", "Lee", "2001-02-03")})

	table := Aggregate(reg, acc.OrderTable(), acc.IdentityTable())

	assert.Equal(t, []string{"Tube Number", "First Name", "Last Name", "Date of Birth"}, table.Columns)
	assert.Equal(t, []records.Record{rec("T1", "Min", "Lee", "2001-02-03")}, table.Rows)
}

func TestAggregateResolvesPartialName(t *testing.T) {
	reg := testRegistry(t)
	acc, _ := NewAccumulator(reg)

	acc.Absorb("a#S", []records.Record{rec("T1", "", "Lee", "")})
	acc.Absorb("b#S", []records.Record{rec("", "Min", "Lee", "")})

	table := Aggregate(reg, acc.OrderTable(), acc.IdentityTable())
	require.Equal(t, 1, table.Len())
	assert.Equal(t, rec("T1", "Min", "Lee", ""), table.Rows[0])
}

func TestAggregateAmbiguousPartialNameIsDiscarded(t *testing.T) {
	reg := testRegistry(t)
	acc, _ := NewAccumulator(reg)

	acc.Absorb("a#S", []records.Record{rec("T1", "", "Lee", "")})
	acc.Absorb("b#S", []records.Record{
		rec("", "Min", "Lee", ""),
		rec("", "Sun", "Lee", ""),
	})

	agg := newAggregator(reg, nil, nil).run(acc.OrderTable(), acc.IdentityTable())
	assert.Equal(t, 0, agg.table.Len())
	assert.Equal(t, 1, agg.unresolved)
	assert.Equal(t, 2, agg.unclaimed)
}

func TestAggregateDropsIncomplete(t *testing.T) {
	reg := testRegistry(t)
	acc, _ := NewAccumulator(reg)

	acc.Absorb("a#S", []records.Record{
		rec("T1", "", "", "2001-02-03"),
		rec("T2", "Ann", "", ""),
		rec("T3", "Ann", "Ko", ""),
		rec("", "Bo", "Ko", ""),
	})

	table := Aggregate(reg, acc.OrderTable(), acc.IdentityTable())

	require.Equal(t, 1, table.Len())
	for _, row := range table.Rows {
		assert.True(t, row[reg.OrderID()].Valid)
		assert.True(t, row[reg.FirstName()].Valid)
		assert.True(t, row[reg.LastName()].Valid)
	}
}

func TestAggregateCompleteness(t *testing.T) {
	reg := testRegistry(t)
	acc, _ := NewAccumulator(reg)

	acc.Absorb("a#S", []records.Record{
		rec("T1", "Min", "Lee", ""),
		rec("T2", "Min", "Lee", ""),
	})
	acc.Absorb("b#S", []records.Record{rec("", "Min", "Lee", "2001-02-03")})

	table := Aggregate(reg, acc.OrderTable(), acc.IdentityTable())

	// One row per order entry; the identity value reaches each of them.
	require.Equal(t, 2, table.Len())
	for _, row := range table.Rows {
		assert.Equal(t, records.Of("2001-02-03"), row[reg.Index("date-of-birth")])
	}
}

func TestAggregateSortOrder(t *testing.T) {
	reg := testRegistry(t)
	acc, _ := NewAccumulator(reg)

	acc.Absorb("a#S", []records.Record{
		rec("T9", "Min", "Lee", ""),
		rec("T3", "Ann", "Ko", ""),
		rec("T5", "Min", "Kim", ""),
		rec("T1", "Min", "Lee", ""),
	})

	table := Aggregate(reg, acc.OrderTable(), acc.IdentityTable())

	want := [][]string{
		{"T3", "Ann", "Ko", ""},
		{"T5", "Min", "Kim", ""},
		{"T1", "Min", "Lee", ""},
		{"T9", "Min", "Lee", ""},
	}
	if diff := cmp.Diff(want, table.StringRows()); diff != "" {
		t.Errorf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestAggregateTracksProvenance(t *testing.T) {
	reg := testRegistry(t)
	acc, _ := NewAccumulator(reg)

	acc.Absorb("a.xlsx#S", []records.Record{rec("T1", "", "Lee", "")})
	acc.Absorb("b.xlsx#S", []records.Record{rec("", "Min", "Lee", "2001-02-03")})

	tracker := provenance.NewTracker(true)
	newAggregator(reg, tracker, nil).run(acc.OrderTable(), acc.IdentityTable())

	first := tracker.FindByField("T1", "First Name")
	require.Len(t, first, 1)
	assert.Equal(t, provenance.OriginIdentity, first[0].Origin)
	assert.Equal(t, "b.xlsx#S", first[0].Source)
	assert.Equal(t, reasonPartial, first[0].Reason)

	tube := tracker.FindByField("T1", "Tube Number")
	require.Len(t, tube, 1)
	assert.Equal(t, provenance.OriginOrder, tube[0].Origin)
	assert.Equal(t, "a.xlsx#S", tube[0].Source)

	assert.Len(t, tracker.FindByRow("T1"), 4)
}
