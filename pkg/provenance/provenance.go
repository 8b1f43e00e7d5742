// Package provenance records, for every field of every canonical row, which
// input sheet supplied the value and which accumulator it was fused from.
package provenance

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/rostermerge/pkg/constants"
	"github.com/agentstation/rostermerge/pkg/errors"
)

// Origin names the accumulator a fused value was taken from.
type Origin string

const (
	// OriginOrder is the table keyed by order identifier.
	OriginOrder Origin = "order"
	// OriginIdentity is the table keyed by (first name, last name).
	OriginIdentity Origin = "identity"
)

// Provenance tracks the origin of one field value.
type Provenance struct {
	Source string `json:"source" yaml:"source"`                     // "file#sheet" that first wrote the value
	Origin Origin `json:"origin" yaml:"origin"`                     // accumulator the value was fused from
	Field  string `json:"field" yaml:"field"`                       // display label
	Value  string `json:"value" yaml:"value"`                       // the value itself
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"` // why this value was selected
}

// Map tracks provenance for multiple rows.
type Map map[string][]Provenance // key is "rowID:field"

// Tracker manages provenance tracking during aggregation.
type Tracker interface {
	// Track records provenance for a field of a row
	Track(rowID, field string, p Provenance)

	// FindByField retrieves provenance for a specific field
	FindByField(rowID, field string) []Provenance

	// FindByRow retrieves all provenance for a row, keyed by field
	FindByRow(rowID string) map[string][]Provenance

	// Map returns the complete provenance map
	Map() Map

	// Clear removes all provenance data
	Clear()
}

// tracker is the default implementation.
type tracker struct {
	provenance Map
	enabled    bool
}

// NewTracker creates a new provenance tracker. A disabled tracker records
// nothing and returns nil from every lookup.
func NewTracker(enabled bool) Tracker {
	return &tracker{
		provenance: make(Map),
		enabled:    enabled,
	}
}

// Track records provenance for a field.
func (p *tracker) Track(rowID, field string, history Provenance) {
	if !p.enabled {
		return
	}
	if history.Field == "" {
		history.Field = field
	}
	key := makeKey(rowID, field)
	p.provenance[key] = append(p.provenance[key], history)
}

// FindByField retrieves provenance for a specific field.
func (p *tracker) FindByField(rowID, field string) []Provenance {
	if !p.enabled {
		return nil
	}
	return p.provenance[makeKey(rowID, field)]
}

// FindByRow retrieves all provenance for a row.
func (p *tracker) FindByRow(rowID string) map[string][]Provenance {
	if !p.enabled {
		return nil
	}

	result := make(map[string][]Provenance)
	prefix := rowID + ":"
	for key, info := range p.provenance {
		if field, found := strings.CutPrefix(key, prefix); found {
			result[field] = info
		}
	}
	return result
}

// Map returns a copy of the complete provenance map.
func (p *tracker) Map() Map {
	if !p.enabled {
		return nil
	}

	result := make(Map, len(p.provenance))
	for k, v := range p.provenance {
		result[k] = append([]Provenance{}, v...)
	}
	return result
}

// Clear removes all provenance data.
func (p *tracker) Clear() {
	p.provenance = make(Map)
}

// makeKey creates a unique key for provenance tracking.
func makeKey(rowID, field string) string {
	return fmt.Sprintf("%s:%s", rowID, field)
}

// Keys returns the map keys in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Entry is one flattened provenance record, convenient for tabular output.
type Entry struct {
	Row string
	Provenance
}

// Entries flattens the map in key order.
func (m Map) Entries() []Entry {
	var out []Entry
	for _, key := range m.Keys() {
		row, _, _ := strings.Cut(key, ":")
		for _, p := range m[key] {
			out = append(out, Entry{Row: row, Provenance: p})
		}
	}
	return out
}

// File represents a provenance file stored on disk.
type File struct {
	RunID      string `yaml:"run_id,omitempty"`
	Provenance Map    `yaml:"provenance"`
}

// Save writes provenance data to a YAML file.
func Save(path string, file *File) error {
	data, err := yaml.MarshalWithOptions(file, yaml.Indent(2), yaml.IndentSequence(false))
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// Load reads provenance data from a YAML file.
// Returns nil, nil if the file doesn't exist (not an error).
func Load(path string) (*File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return &f, nil
}
