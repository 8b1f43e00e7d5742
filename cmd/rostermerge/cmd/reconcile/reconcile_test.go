package reconcile

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/rostermerge"
	"github.com/agentstation/rostermerge/internal/appcontext"
	"github.com/agentstation/rostermerge/pkg/records"
	"github.com/agentstation/rostermerge/pkg/schema"
	"github.com/agentstation/rostermerge/pkg/sources"
)

func testRosterMerge(t *testing.T) rostermerge.RosterMerge {
	t.Helper()
	reg, err := schema.New([]schema.Field{
		{Key: "tube-number", Label: "Tube Number", Aliases: []string{"Tube No"}},
		{Key: "first-name", Label: "First Name"},
		{Key: "last-name", Label: "Last Name", Aliases: []string{"Surname"}},
		{Key: "date-of-birth", Label: "Date of Birth", Aliases: []string{"DOB"}},
	})
	require.NoError(t, err)

	src := sources.Static("mem",
		records.NewRawSheet("orders.xlsx", "Sheet1", []string{"Tube No", "Surname"}, [][]string{{"T1", "Lee"}}),
		records.NewRawSheet("people.csv", "people", []string{"First Name", "Last Name", "DOB"}, [][]string{{"Min", "Lee", "2001-02-03"}}),
		records.NewRawSheet("notes.xlsx", "Misc", []string{"Comment"}, [][]string{{"hello"}}),
	)

	rm, err := rostermerge.New(rostermerge.WithRegistry(reg), rostermerge.WithSource(src))
	require.NoError(t, err)
	return rm
}

type env struct {
	app            *appcontext.Mock
	reportPath     string
	provenancePath string
}

func newEnv(t *testing.T, format string) *env {
	t.Helper()
	dir := t.TempDir()
	rm := testRosterMerge(t)
	e := &env{
		reportPath: filepath.Join(dir, "report.csv"),
	}
	e.app = &appcontext.Mock{
		RosterMergeFunc:    func() (rostermerge.RosterMerge, error) { return rm, nil },
		OutputFormatFunc:   func() string { return format },
		ReportPathFunc:     func() string { return e.reportPath },
		ProvenancePathFunc: func() string { return e.provenancePath },
	}
	return e
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestReconcilePreview(t *testing.T) {
	e := newEnv(t, "json")

	stdout, stderr, err := execute(t, NewCommand(e.app), "--preview")
	require.NoError(t, err)

	assert.JSONEq(t, `[{"Tube Number":"T1","First Name":"Min","Last Name":"Lee","Date of Birth":"2001-02-03"}]`, stdout)
	assert.Contains(t, stderr, "Skipped 1 sheet(s)")
	assert.Contains(t, stderr, "Reconciled 1 rows")

	data, err := os.ReadFile(e.reportPath)
	require.NoError(t, err)
	assert.Equal(t, "Tube Number,First Name,Last Name,Date of Birth\nT1,Min,Lee,2001-02-03\n", string(data))
}

func TestReconcileSummary(t *testing.T) {
	e := newEnv(t, "json")

	stdout, _, err := execute(t, NewCommand(e.app))
	require.NoError(t, err)

	assert.Contains(t, stdout, `"rows_written": 1`)
	assert.Contains(t, stdout, `"report": "`+e.reportPath+`"`)
}

func TestReconcileDryRun(t *testing.T) {
	e := newEnv(t, "table")

	_, _, err := execute(t, NewCommand(e.app), "--dry-run")
	require.NoError(t, err)

	_, statErr := os.Stat(e.reportPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestReconcileExplain(t *testing.T) {
	e := newEnv(t, "yaml")
	e.provenancePath = filepath.Join(filepath.Dir(e.reportPath), "provenance.yaml")

	stdout, _, err := execute(t, NewCommand(e.app), "--explain", "--fields", "first*")
	require.NoError(t, err)

	assert.Contains(t, stdout, "T1:First Name")
	assert.Contains(t, stdout, "people.csv#people")
	assert.NotContains(t, stdout, "Date of Birth")
	assert.FileExists(t, e.provenancePath)
}

func TestReconcileUnsupportedReport(t *testing.T) {
	e := newEnv(t, "table")
	e.reportPath = filepath.Join(t.TempDir(), "report.txt")

	_, _, err := execute(t, NewCommand(e.app))
	assert.Error(t, err)
}
