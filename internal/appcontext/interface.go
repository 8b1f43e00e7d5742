// Package appcontext provides the shared application context interface
// used by all commands. Commands accept this interface rather than the
// concrete App type so they can be tested against a Mock.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/rostermerge"
)

// Interface defines the application dependencies commands need.
// The App struct from cmd/rostermerge/app implements it.
type Interface interface {
	// RosterMerge returns the configured instance, creating it lazily.
	// The schema is loaded on first use.
	RosterMerge() (rostermerge.RosterMerge, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// ReportPath returns where the canonical table is written.
	ReportPath() string

	// NamesPath returns the allow-list file used by search.
	NamesPath() string

	// ProvenancePath returns where provenance is exported, empty when disabled.
	ProvenancePath() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
