package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/rostermerge/pkg/constants"
)

// TestLoadConfigDefaults verifies the built-in defaults.
func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultSchemaFile, config.SchemaFile)
	assert.Equal(t, constants.DefaultFilesRoot, config.FilesRoot)
	assert.Equal(t, constants.DefaultOutputFile, config.ReportFile)
	assert.Equal(t, constants.DefaultNamesFile, config.NamesFile)
	assert.Empty(t, config.ProvenanceFile)
	assert.Equal(t, "auto", config.LogFormat)
	assert.Equal(t, "stderr", config.LogOutput)
	// Empty triggers the precedence logic in logger.go
	assert.Empty(t, config.LogLevel)
}

// TestLoadConfigEnvironment verifies ROSTERMERGE_* variables.
func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ROSTERMERGE_OUTPUT", "merged.csv")
	t.Setenv("ROSTERMERGE_ROOT", "intake")
	t.Setenv("ROSTERMERGE_FORMAT", "json")
	t.Setenv("ROSTERMERGE_LOG_LEVEL", "debug")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "merged.csv", config.ReportFile)
	assert.Equal(t, "intake", config.FilesRoot)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "debug", config.LogLevel)
}

// TestLoadConfigFile verifies an explicit YAML config file.
func TestLoadConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "rm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("schema: aliases.txt\nprovenance: prov.yaml\nnames: vip.txt\n"), 0o600))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "aliases.txt", config.SchemaFile)
	assert.Equal(t, "prov.yaml", config.ProvenanceFile)
	assert.Equal(t, "vip.txt", config.NamesFile)
	assert.Equal(t, path, config.ConfigFile)
}

// TestLoadConfigMissingFile verifies an explicit file must exist.
func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

// TestUpdateFromFlags verifies flags win and empty flags are ignored.
func TestUpdateFromFlags(t *testing.T) {
	config := &Config{
		SchemaFile: "config.txt",
		ReportFile: "report.xlsx",
		Format:     "yaml",
	}

	config.UpdateFromFlags(Flags{
		Output:  "out.csv",
		Verbose: true,
	})

	assert.Equal(t, "config.txt", config.SchemaFile)
	assert.Equal(t, "out.csv", config.ReportFile)
	assert.Equal(t, "yaml", config.Format)
	assert.True(t, config.Verbose)
}
