package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/rostermerge"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	RosterMergeFunc    func() (rostermerge.RosterMerge, error)
	LoggerFunc         func() *zerolog.Logger
	OutputFormatFunc   func() string
	ReportPathFunc     func() string
	NamesPathFunc      func() string
	ProvenancePathFunc func() string
	VersionFunc        func() string
	CommitFunc         func() string
	DateFunc           func() string
	BuiltByFunc        func() string
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)

// RosterMerge returns an instance using the mock function or nil.
func (m *Mock) RosterMerge() (rostermerge.RosterMerge, error) {
	if m.RosterMergeFunc != nil {
		return m.RosterMergeFunc()
	}
	return nil, nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// ReportPath returns the report path using the mock function or "".
func (m *Mock) ReportPath() string {
	if m.ReportPathFunc != nil {
		return m.ReportPathFunc()
	}
	return ""
}

// NamesPath returns the allow-list path using the mock function or "".
func (m *Mock) NamesPath() string {
	if m.NamesPathFunc != nil {
		return m.NamesPathFunc()
	}
	return ""
}

// ProvenancePath returns the provenance path using the mock function or "".
func (m *Mock) ProvenancePath() string {
	if m.ProvenancePathFunc != nil {
		return m.ProvenancePathFunc()
	}
	return ""
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
