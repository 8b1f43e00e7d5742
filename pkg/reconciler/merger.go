package reconciler

import "github.com/agentstation/rostermerge/pkg/records"

// Merge combines two records of the same key space. Each field of the result
// is the existing value when present, otherwise the incoming one: the first
// write to a field wins and later writes only fill gaps. Neither argument is
// modified.
func Merge(existing, incoming records.Record) records.Record {
	n := max(len(existing), len(incoming))
	merged := records.NewRecord(n)
	for i := range merged {
		merged[i] = existing.Get(i).Or(incoming.Get(i))
	}
	return merged
}

// mergeSources mirrors Merge for the per-field source list of an entry: a
// field keeps the sheet that first supplied it.
func mergeSources(existing records.Record, sources []string, incoming records.Record, source string) []string {
	n := max(len(existing), len(incoming))
	out := make([]string, n)
	for i := range out {
		switch {
		case existing.Get(i).Valid:
			if i < len(sources) {
				out[i] = sources[i]
			}
		case incoming.Get(i).Valid:
			out[i] = source
		}
	}
	return out
}
