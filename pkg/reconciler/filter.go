package reconciler

import "github.com/agentstation/rostermerge/pkg/names"

// filter restricts absorption to the names of an allow-list.
type filter struct {
	allow *names.AllowList
}

// newFilter creates a new filter; a nil list disables filtering.
func newFilter(allow *names.AllowList) *filter {
	return &filter{allow: allow}
}

// isEnabled returns true if filtering is enabled
func (f *filter) isEnabled() bool {
	return f != nil && f.allow != nil
}

// keep reports whether a record with the given canonical name passes.
// Records with an incomplete name never match an enabled filter.
func (f *filter) keep(key names.Key) bool {
	if !f.isEnabled() {
		return true
	}
	return key.Complete() && f.allow.Contains(key)
}
