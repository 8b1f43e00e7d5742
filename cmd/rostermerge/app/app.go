// Package app provides the application context and dependency management
// for the rostermerge CLI. It centralizes configuration, logging and the
// lazily created RosterMerge instance that commands share.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/rostermerge"
	"github.com/agentstation/rostermerge/internal/cmd/output"
	"github.com/agentstation/rostermerge/pkg/errors"
)

// App represents the rostermerge application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// RosterMerge instance (lazy-initialized, singleton)
	mu sync.RWMutex
	rm rostermerge.RosterMerge
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration from file and environment
// that can be customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured format, detecting one from the
// terminal when none is set.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Format))
}

// ReportPath returns where the canonical table is written.
func (a *App) ReportPath() string {
	return a.config.ReportFile
}

// NamesPath returns the search allow-list file.
func (a *App) NamesPath() string {
	return a.config.NamesFile
}

// ProvenancePath returns the provenance export path, empty when disabled.
func (a *App) ProvenancePath() string {
	return a.config.ProvenanceFile
}

// RosterMerge returns the instance, creating it lazily if needed.
// The schema file is read on the first call only.
func (a *App) RosterMerge() (rostermerge.RosterMerge, error) {
	a.mu.RLock()
	if a.rm != nil {
		rm := a.rm
		a.mu.RUnlock()
		return rm, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.rm != nil {
		return a.rm, nil
	}

	rm, err := rostermerge.New(a.buildOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "rostermerge", "", err)
	}

	a.rm = rm
	return rm, nil
}

// Shutdown releases the cached instance.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.rm != nil {
		a.logger.Debug().Msg("Releasing rostermerge instance")
		a.rm = nil
	}
	return nil
}

// buildOptions constructs rostermerge options from the app configuration.
func (a *App) buildOptions() []rostermerge.Option {
	return []rostermerge.Option{
		rostermerge.WithSchemaFile(a.config.SchemaFile),
		rostermerge.WithFilesRoot(a.config.FilesRoot),
		rostermerge.WithLogger(a.logger),
	}
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return &errors.ValidationError{Field: "config", Message: "cannot be nil"}
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithRosterMerge sets a custom instance (useful for testing).
func WithRosterMerge(rm rostermerge.RosterMerge) Option {
	return func(a *App) error {
		a.rm = rm
		return nil
	}
}
