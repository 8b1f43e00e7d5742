package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/agentstation/rostermerge/pkg/errors"
	"github.com/agentstation/rostermerge/pkg/logging"
	"github.com/agentstation/rostermerge/pkg/sources"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func writeXLSX(t *testing.T, path string, rows ...[]any) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func tree(t *testing.T) string {
	root := t.TempDir()
	writeXLSX(t, filepath.Join(root, "b", "orders.xlsx"), []any{"Tube No"}, []any{"T1"})
	writeFile(t, filepath.Join(root, "a.csv"), "Surname\nLee\n")
	writeFile(t, filepath.Join(root, "b", "~$orders.xlsx"), "lock")
	writeFile(t, filepath.Join(root, "notes.txt"), "ignored")
	writeFile(t, filepath.Join(root, "c", "UPPER.CSV"), "Surname\nKo\n")
	return root
}

func TestFiles(t *testing.T) {
	files, err := New(tree(t)).Files()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv", "b/orders.xlsx", "c/UPPER.CSV"}, files)
}

func TestSheets(t *testing.T) {
	logger := logging.NewTestLogger(t)
	src := New(tree(t), WithLogger(logger.Logger))

	got, err := sources.Collect(context.Background(), src)
	require.NoError(t, err)

	ids := make([]string, len(got))
	for i, s := range got {
		ids[i] = s.ID()
	}
	assert.Equal(t, []string{"a.csv#a", "b/orders.xlsx#Sheet1", "c/UPPER.CSV#UPPER"}, ids)
	logger.AssertContains(t, "Discovered input files")
}

func TestMissingRoot(t *testing.T) {
	_, err := sources.Collect(context.Background(), New(filepath.Join(t.TempDir(), "nope")))
	assert.True(t, errors.IsNotFound(err))
}

func TestRootIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.csv")
	writeFile(t, path, "x\n")

	_, err := New(path).Files()
	assert.True(t, errors.IsValidationError(err))
}

func TestOpenUnsupported(t *testing.T) {
	_, err := Open("notes.txt", "notes.txt")
	assert.ErrorIs(t, err, errors.ErrUnsupportedFormat)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("x.XLSX"))
	assert.True(t, Supported("dir/x.csv"))
	assert.False(t, Supported("~$x.xlsx"))
	assert.False(t, Supported("x.xls"))
}
