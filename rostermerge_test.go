package rostermerge

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/agentstation/rostermerge/pkg/errors"
	"github.com/agentstation/rostermerge/pkg/logging"
	"github.com/agentstation/rostermerge/pkg/names"
	"github.com/agentstation/rostermerge/pkg/provenance"
	"github.com/agentstation/rostermerge/pkg/records"
	"github.com/agentstation/rostermerge/pkg/reconciler"
	"github.com/agentstation/rostermerge/pkg/sources"
)

const testSchema = `# field aliases
tube-number: Tube Number, Tube No
first-name: First Name, Given Name
last-name: Last Name, Surname
date-of-birth: Date of Birth, DOB
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// workspace lays out a schema file and a files root with one workbook and
// one csv file.
func workspace(t *testing.T) (schemaPath, root string) {
	t.Helper()
	dir := t.TempDir()
	schemaPath = filepath.Join(dir, "config.txt")
	root = filepath.Join(dir, "files")
	writeFile(t, schemaPath, testSchema)

	require.NoError(t, os.MkdirAll(root, 0o755))
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for r, row := range [][]any{
		{"Tube No", "Surname", "Comment"},
		{"T1", "lee", "urgent"},
		{"T2", "Doe", ""},
	} {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(filepath.Join(root, "a.xlsx")))

	writeFile(t, filepath.Join(root, "b", "people.csv"),
		"Given Name,Surname,DOB\n min ,Lee,2001-02-03\nJane,doe,1990-05-06\nJohn,Smith,1980-01-01\n")
	return schemaPath, root
}

func TestReconcile(t *testing.T) {
	schemaPath, root := workspace(t)

	rm, err := New(WithSchemaFile(schemaPath), WithFilesRoot(root), WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)

	result, err := rm.Reconcile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Tube Number", "First Name", "Last Name", "Date of Birth"}, result.Table.Columns)
	assert.Equal(t, [][]string{
		{"T2", "Jane", "Doe", "1990-05-06"},
		{"T1", "Min", "Lee", "2001-02-03"},
	}, result.Table.StringRows())
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 2, result.Metadata.Stats.SheetsProcessed)
	assert.Equal(t, 1, result.Metadata.Stats.UnclaimedIdents, "John Smith has no order")
}

func TestSearch(t *testing.T) {
	schemaPath, root := workspace(t)

	allow, err := names.ParseAllowList(strings.NewReader("jane DOE\n"))
	require.NoError(t, err)

	src := sources.Static("mem", records.NewRawSheet("c.xlsx", "S",
		[]string{"Tube No", "Given Name", "Surname"},
		[][]string{{"T2", "Jane", "Doe"}, {"T3", "John", "Smith"}},
	))
	rm, err := New(WithSchemaFile(schemaPath), WithSource(src), WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)

	result, err := rm.Search(context.Background(), allow)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"T2", "Jane", "Doe", ""}}, result.Table.StringRows())
	assert.Equal(t, 1, result.Metadata.Stats.RecordsFiltered)

	_, err = rm.Search(context.Background(), nil)
	assert.True(t, errors.IsValidationError(err))

	// Order rows with a partial name cannot match the list and are filtered
	// before they could be fused with identity rows.
	rm, err = New(WithSchemaFile(schemaPath), WithFilesRoot(root), WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)

	result, err = rm.Search(context.Background(), allow)
	require.NoError(t, err)
	assert.True(t, result.IsEmpty())
}

func TestNewWithBadSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.txt")
	writeFile(t, path, "tube-number Tube Number\n")

	_, err := New(WithSchemaFile(path))
	assert.True(t, errors.IsConfigFormat(err))

	_, err = New(WithSchemaFile(filepath.Join(t.TempDir(), "missing.txt")))
	assert.True(t, errors.IsNotFound(err))

	_, err = New(WithFilesRoot(""))
	assert.True(t, errors.IsValidationError(err))
}

func TestWithSourceAndHooks(t *testing.T) {
	schemaPath, _ := workspace(t)

	src := sources.Static("mem",
		records.NewRawSheet("x.xlsx", "Notes", []string{"Comment"}, [][]string{{"n/a"}}),
		records.NewRawSheet("y.xlsx", "S", []string{"Tube Number", "First Name", "Last Name"}, [][]string{{"T9", "ann", "ko"}}),
	)
	rm, err := New(WithSchemaFile(schemaPath), WithSource(src), WithProvenance(false), WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	assert.Equal(t, sources.ID("mem"), rm.Source().ID())
	assert.Equal(t, 4, rm.Schema().Len())

	var warnings []string
	var results int
	rm.OnWarning(func(w string) { warnings = append(warnings, w) })
	rm.OnResult(func(*reconciler.Result) { results++ })

	result, err := rm.Reconcile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"T9", "Ann", "Ko", ""}}, result.Table.StringRows())
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Notes")
	assert.Equal(t, 1, results)
	assert.Nil(t, result.Provenance)
}

func TestWriteReport(t *testing.T) {
	table := records.Table{
		Columns: []string{"Tube Number", "First Name"},
		Rows:    []records.Record{{records.Of("T1"), records.Of("Min")}},
	}
	dir := t.TempDir()

	require.NoError(t, WriteReport(context.Background(), table, filepath.Join(dir, "report.csv")))
	data, err := os.ReadFile(filepath.Join(dir, "report.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Tube Number,First Name\nT1,Min\n", string(data))

	require.NoError(t, WriteReport(context.Background(), table, filepath.Join(dir, "report.xlsx")))
	assert.FileExists(t, filepath.Join(dir, "report.xlsx"))

	err = WriteReport(context.Background(), table, filepath.Join(dir, "report.json"))
	assert.ErrorIs(t, err, errors.ErrUnsupportedFormat)
}

func TestSaveProvenance(t *testing.T) {
	schemaPath, root := workspace(t)

	rm, err := New(WithSchemaFile(schemaPath), WithFilesRoot(root), WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	result, err := rm.Reconcile(context.Background())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "provenance.yaml")
	require.NoError(t, SaveProvenance(path, result))

	loaded, err := provenance.Load(path)
	require.NoError(t, err)
	assert.Equal(t, result.RunID, loaded.RunID)

	first := loaded.Provenance["T1:First Name"]
	require.Len(t, first, 1)
	assert.Equal(t, "b/people.csv#people", first[0].Source)
	assert.Equal(t, provenance.OriginIdentity, first[0].Origin)

	assert.Error(t, SaveProvenance(path, &reconciler.Result{}))
}
