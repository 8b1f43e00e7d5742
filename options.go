package rostermerge

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/rostermerge/pkg/constants"
	"github.com/agentstation/rostermerge/pkg/errors"
	"github.com/agentstation/rostermerge/pkg/schema"
	"github.com/agentstation/rostermerge/pkg/sources"
)

// config holds the configuration for a RosterMerge instance
type config struct {
	schemaPath string
	registry   *schema.Registry
	filesRoot  string
	sources    []sources.Source
	logger     *zerolog.Logger
	provenance bool
}

func defaultConfig() *config {
	return &config{
		schemaPath: constants.DefaultSchemaFile,
		filesRoot:  constants.DefaultFilesRoot,
		provenance: true,
	}
}

// Option is a function that configures a RosterMerge instance
type Option func(*config) error

// WithSchemaFile sets the field alias configuration file.
func WithSchemaFile(path string) Option {
	return func(c *config) error {
		if path == "" {
			return &errors.ValidationError{Field: "schema", Message: "path cannot be empty"}
		}
		c.schemaPath = path
		return nil
	}
}

// WithRegistry uses an already built registry instead of loading a file.
func WithRegistry(registry *schema.Registry) Option {
	return func(c *config) error {
		if registry == nil {
			return &errors.ValidationError{Field: "registry", Message: "cannot be nil"}
		}
		c.registry = registry
		return nil
	}
}

// WithFilesRoot sets the directory walked for input files.
// It is ignored when WithSource is used.
func WithFilesRoot(root string) Option {
	return func(c *config) error {
		if root == "" {
			return &errors.ValidationError{Field: "root", Message: "path cannot be empty"}
		}
		c.filesRoot = root
		return nil
	}
}

// WithSource reads from src instead of the files root. Repeated use
// chains the sources in the order given.
func WithSource(src sources.Source) Option {
	return func(c *config) error {
		if src == nil {
			return &errors.ValidationError{Field: "source", Message: "cannot be nil"}
		}
		c.sources = append(c.sources, src)
		return nil
	}
}

// WithLogger sets the logger for runs. Without it the logger carried by the
// run's context is used.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return &errors.ValidationError{Field: "logger", Message: "cannot be nil"}
		}
		c.logger = logger
		return nil
	}
}

// WithProvenance configures whether field-level provenance is tracked.
func WithProvenance(enabled bool) Option {
	return func(c *config) error {
		c.provenance = enabled
		return nil
	}
}
