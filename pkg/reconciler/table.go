package reconciler

import (
	"github.com/agentstation/rostermerge/pkg/names"
	"github.com/agentstation/rostermerge/pkg/records"
)

// Entry is one keyed row of an accumulator table.
type Entry[K comparable] struct {
	Key    K
	Record records.Record

	// Sources holds, per field, the sheet that supplied the value, or ""
	// while the field is missing.
	Sources []string
}

// Source returns the sheet that supplied field i.
func (e Entry[K]) Source(i int) string {
	if i < 0 || i >= len(e.Sources) {
		return ""
	}
	return e.Sources[i]
}

// Table accumulates records under a key. Entries keep first-insertion order
// and the index guarantees a single entry per key; values are only ever
// filled, never overwritten.
type Table[K comparable] struct {
	entries []Entry[K]
	index   map[K]int
}

// OrderTable is keyed by order identifier.
type OrderTable = Table[string]

// IdentityTable is keyed by (first name, last name).
type IdentityTable = Table[names.Key]

// NewTable creates an empty table.
func NewTable[K comparable]() *Table[K] {
	return &Table[K]{index: make(map[K]int)}
}

// Len returns the number of entries.
func (t *Table[K]) Len() int {
	return len(t.entries)
}

// Get returns the entry stored under key.
func (t *Table[K]) Get(key K) (Entry[K], bool) {
	i, ok := t.index[key]
	if !ok {
		return Entry[K]{}, false
	}
	return t.entries[i], true
}

// Entries returns the entries in first-insertion order.
func (t *Table[K]) Entries() []Entry[K] {
	out := make([]Entry[K], len(t.entries))
	copy(out, t.entries)
	return out
}

// Put merges rec into the entry for key, creating it when absent, and reports
// whether a new entry was created.
func (t *Table[K]) Put(key K, rec records.Record, source string) bool {
	if i, ok := t.index[key]; ok {
		e := t.entries[i]
		t.entries[i] = Entry[K]{
			Key:     key,
			Record:  Merge(e.Record, rec),
			Sources: mergeSources(e.Record, e.Sources, rec, source),
		}
		return false
	}

	t.index[key] = len(t.entries)
	t.entries = append(t.entries, Entry[K]{
		Key:     key,
		Record:  rec.Clone(),
		Sources: mergeSources(nil, nil, rec, source),
	})
	return true
}
