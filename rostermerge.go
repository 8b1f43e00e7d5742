// Package rostermerge reconciles personal and order records scattered across
// many spreadsheets into one de-duplicated table keyed by order identifier.
//
// Each input file may label the same field differently; a field alias
// configuration maps every accepted label onto a canonical field. Records
// carrying an order identifier (tube number) are fused with records that only
// identify a person by name, and the result is one row per order.
//
// Example usage:
//
//	rm, err := rostermerge.New(
//	    rostermerge.WithSchemaFile("config.txt"),
//	    rostermerge.WithFilesRoot("files"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rm.OnWarning(func(w string) {
//	    log.Printf("skipped: %s", w)
//	})
//
//	result, err := rm.Reconcile(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := rostermerge.WriteReport(ctx, result.Table, "report.xlsx"); err != nil {
//	    log.Fatal(err)
//	}
package rostermerge

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/agentstation/rostermerge/internal/sources/local"
	"github.com/agentstation/rostermerge/pkg/errors"
	"github.com/agentstation/rostermerge/pkg/logging"
	"github.com/agentstation/rostermerge/pkg/names"
	"github.com/agentstation/rostermerge/pkg/reconciler"
	"github.com/agentstation/rostermerge/pkg/schema"
	"github.com/agentstation/rostermerge/pkg/sources"
)

// RosterMerge runs reconciliations against a fixed schema and input set.
type RosterMerge interface {
	// Schema returns the loaded field alias registry
	Schema() *schema.Registry

	// Source returns the input the runs read from
	Source() sources.Source

	// Reconcile merges every input record into the canonical table
	Reconcile(ctx context.Context) (*reconciler.Result, error)

	// Search is Reconcile restricted to the names on the allow-list
	Search(ctx context.Context, allow *names.AllowList) (*reconciler.Result, error)

	// OnWarning registers a callback for sheets skipped during a run
	OnWarning(WarningHook)

	// OnResult registers a callback for completed runs
	OnResult(ResultHook)
}

// rostermerge is the internal implementation of the RosterMerge interface
type rostermerge struct {
	config   *config
	registry *schema.Registry
	source   sources.Source
	hooks    *hooks
}

// New creates a new RosterMerge instance with the given options.
// The schema is loaded once here and shared by every run.
func New(opts ...Option) (RosterMerge, error) {
	rm := &rostermerge{
		config: defaultConfig(),
		hooks:  newHooks(),
	}

	if err := rm.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	rm.registry = rm.config.registry
	if rm.registry == nil {
		registry, err := schema.LoadFile(rm.config.schemaPath)
		if err != nil {
			return nil, fmt.Errorf("loading schema: %w", err)
		}
		rm.registry = registry
	}

	if len(rm.config.sources) > 0 {
		rm.source = sources.Concat(rm.config.sources...)
	} else {
		var localOpts []local.Option
		if rm.config.logger != nil {
			localOpts = append(localOpts, local.WithLogger(rm.config.logger))
		}
		rm.source = local.New(rm.config.filesRoot, localOpts...)
	}

	return rm, nil
}

// options applies the given options to the configuration.
func (rm *rostermerge) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(rm.config); err != nil {
			return err
		}
	}
	return nil
}

// Schema returns the loaded registry.
func (rm *rostermerge) Schema() *schema.Registry {
	return rm.registry
}

// Source returns the configured input.
func (rm *rostermerge) Source() sources.Source {
	return rm.source
}

// Reconcile merges every input record.
func (rm *rostermerge) Reconcile(ctx context.Context) (*reconciler.Result, error) {
	return rm.run(logging.WithOperation(ctx, "reconcile"))
}

// Search merges only the records of the listed people.
func (rm *rostermerge) Search(ctx context.Context, allow *names.AllowList) (*reconciler.Result, error) {
	if allow == nil {
		return nil, &errors.ValidationError{Field: "allow_list", Message: "cannot be nil"}
	}
	return rm.run(logging.WithOperation(ctx, "search"), reconciler.WithNameFilter(allow))
}

// run performs one reconciliation with a fresh run ID.
func (rm *rostermerge) run(ctx context.Context, extra ...reconciler.Option) (*reconciler.Result, error) {
	if rm.config.logger != nil {
		ctx = logging.WithLogger(ctx, rm.config.logger)
	}
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)

	opts := append([]reconciler.Option{
		reconciler.WithRunID(runID),
		reconciler.WithProvenance(rm.config.provenance),
	}, extra...)

	rec, err := reconciler.New(rm.registry, opts...)
	if err != nil {
		return nil, err
	}

	result, err := rec.Reconcile(ctx, rm.source)
	if err != nil {
		return nil, err
	}

	rm.hooks.trigger(result)
	return result, nil
}
