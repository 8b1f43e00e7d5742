package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/rostermerge/pkg/errors"
)

const testConfig = `tube-number: Tube Number, Tube No, Tube #
first-name: First Name, Given Name
last-name: Last Name, Surname, Family Name
date-of-birth: Date of Birth, Birth Date, DOB
`

func mustLoad(t *testing.T, text string) *Registry {
	t.Helper()
	r, err := Load(strings.NewReader(text))
	require.NoError(t, err)
	return r
}

func TestLoad(t *testing.T) {
	r := mustLoad(t, testConfig)

	assert.Equal(t, 4, r.Len())
	assert.Equal(t, []string{"Tube Number", "First Name", "Last Name", "Date of Birth"}, r.Labels())
	assert.Equal(t, 0, r.OrderID())
	assert.Equal(t, 1, r.FirstName())
	assert.Equal(t, 2, r.LastName())
	assert.Equal(t, 3, r.Index("date-of-birth"))
	assert.Equal(t, -1, r.Index("nope"))

	label, ok := r.Label("last-name")
	require.True(t, ok)
	assert.Equal(t, "Last Name", label)

	fields := r.Fields()
	assert.Equal(t, Field{Key: "first-name", Label: "First Name", Aliases: []string{"Given Name"}}, fields[1])
}

func TestLookup(t *testing.T) {
	r := mustLoad(t, testConfig)
	lookup := r.Lookup()

	assert.Equal(t, "First Name", lookup["Given Name"])
	assert.Equal(t, "First Name", lookup["First Name"], "display label maps to itself")
	assert.Equal(t, "Tube Number", lookup["Tube #"])
	assert.Len(t, lookup, 11)

	lookup["Given Name"] = "tampered"
	got, ok := r.Resolve("Given Name")
	require.True(t, ok)
	assert.Equal(t, "First Name", got, "Lookup returns a copy")

	got, ok = r.Resolve("  Surname ")
	require.True(t, ok)
	assert.Equal(t, "Last Name", got)

	_, ok = r.Resolve("surname")
	assert.False(t, ok, "matching is case sensitive")
}

func TestLoadIgnoresBlankAndCommentLines(t *testing.T) {
	r := mustLoad(t, "\ufeff# aliases\n\ntube-number : Tube Number ,\nfirst-name: First Name\n\nlast-name:Last Name\n")

	assert.Equal(t, []string{"Tube Number", "First Name", "Last Name"}, r.Labels())
	assert.Empty(t, r.Fields()[0].Aliases, "trailing comma adds no alias")
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		config   string
		wantLine int
		wantMsg  string
	}{
		{
			name:     "missing separator",
			config:   "tube-number: Tube Number\nfirst-name First Name\n",
			wantLine: 2,
			wantMsg:  "missing ':' separator",
		},
		{
			name:     "no labels",
			config:   "tube-number: Tube Number\nfirst-name: , \n",
			wantLine: 2,
			wantMsg:  "no labels",
		},
		{
			name:     "empty key",
			config:   ": Tube Number\n",
			wantLine: 1,
			wantMsg:  "empty field key",
		},
		{
			name:     "duplicate display label",
			config:   "tube-number: Tube Number\nfirst-name: Tube Number\n",
			wantLine: 2,
			wantMsg:  "used by more than one field",
		},
		{
			name:     "repeated label within a field",
			config:   "first-name: First Name, Given Name, Given Name\n",
			wantLine: 1,
			wantMsg:  "appears twice",
		},
		{
			name:     "alias shared by two fields",
			config:   "first-name: First Name, Name\nlast-name: Last Name, Name\n",
			wantLine: 2,
			wantMsg:  "already maps to",
		},
		{
			name:     "duplicate key",
			config:   "first-name: First Name\nfirst-name: Given Name\n",
			wantLine: 2,
			wantMsg:  "defined twice",
		},
		{
			name:    "missing required key",
			config:  "tube-number: Tube Number\nfirst-name: First Name\n",
			wantMsg: "required field last-name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.config))
			require.Error(t, err)
			assert.True(t, errors.IsConfigFormat(err))

			var cfe *errors.ConfigFormatError
			require.ErrorAs(t, err, &cfe)
			assert.Equal(t, tt.wantLine, cfe.Line)
			assert.Contains(t, cfe.Message, tt.wantMsg)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.txt")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o644))

	r, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, r.Len())

	_, err = LoadFile(filepath.Join(dir, "missing.txt"))
	assert.True(t, errors.IsNotFound(err))
}

func TestNew(t *testing.T) {
	r, err := New([]Field{
		{Key: "tube-number", Label: "Tube"},
		{Key: "first-name", Label: "First", Aliases: []string{"Given"}},
		{Key: "last-name", Label: "Last"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, r.Len())

	_, err = New([]Field{{Key: "tube-number"}})
	assert.True(t, errors.IsConfigFormat(err))
}
