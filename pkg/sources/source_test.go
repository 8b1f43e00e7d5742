package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/rostermerge/pkg/records"
)

func sheet(file string) records.RawSheet {
	return records.NewRawSheet(file, "Sheet1", []string{"Tube Number"}, [][]string{{"T1"}})
}

func TestStatic(t *testing.T) {
	src := Static("mem", sheet("a.xlsx"), sheet("b.xlsx"))
	assert.Equal(t, ID("mem"), src.ID())

	got, err := Collect(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a.xlsx", got[0].File)
	assert.Equal(t, "b.xlsx", got[1].File)
}

func TestConcat(t *testing.T) {
	src := Concat(Static("one", sheet("a.xlsx")), Static("two", sheet("b.xlsx"), sheet("c.xlsx")))
	assert.Equal(t, ID("concat(one,two)"), src.ID())

	got, err := Collect(context.Background(), src)
	require.NoError(t, err)

	files := make([]string, len(got))
	for i, s := range got {
		files[i] = s.File
	}
	assert.Equal(t, []string{"a.xlsx", "b.xlsx", "c.xlsx"}, files)

	single := Static("only")
	assert.Same(t, single, Concat(single))
}

func TestStaticStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Collect(ctx, Static("mem", sheet("a.xlsx")))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConcatStopsEarly(t *testing.T) {
	src := Concat(Static("one", sheet("a.xlsx"), sheet("b.xlsx")), Static("two", sheet("c.xlsx")))

	var seen int
	for range src.Sheets(context.Background()) {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}
