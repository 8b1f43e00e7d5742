package reconciler

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentstation/rostermerge/pkg/errors"
	"github.com/agentstation/rostermerge/pkg/names"
)

// Options configures a reconciler.
type options struct {
	allow    *names.AllowList
	logger   *zerolog.Logger // nil means the logger carried by the context
	tracking bool
	runID    string
}

func defaultOptions() *options {
	return &options{
		tracking: true,
		runID:    uuid.NewString(),
	}
}

// Option is a function that configures a Reconciler or an Accumulator.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithNameFilter restricts absorption to the names on the allow-list.
// Records whose canonical (first, last) pair is not listed are discarded
// before they reach either table.
func WithNameFilter(allow *names.AllowList) Option {
	return func(o *options) error {
		if allow == nil {
			return &errors.ValidationError{
				Field:   "allow_list",
				Message: "cannot be nil",
			}
		}
		o.allow = allow
		return nil
	}
}

// WithLogger sets the logger used for run diagnostics.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return &errors.ValidationError{
				Field:   "logger",
				Message: "cannot be nil",
			}
		}
		o.logger = logger
		return nil
	}
}

// WithProvenance enables field-level tracking.
func WithProvenance(enabled bool) Option {
	return func(o *options) error {
		o.tracking = enabled
		return nil
	}
}

// WithRunID overrides the generated run identifier.
func WithRunID(id string) Option {
	return func(o *options) error {
		if id == "" {
			return &errors.ValidationError{
				Field:   "run_id",
				Message: "cannot be empty",
			}
		}
		o.runID = id
		return nil
	}
}
