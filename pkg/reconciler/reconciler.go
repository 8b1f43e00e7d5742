// Package reconciler merges normalized spreadsheet records into one canonical
// table. Records are absorbed sheet by sheet into two accumulators, one keyed
// by order id and one keyed by name, and fused once every sheet is in.
//
// Within a key the first value written to a field wins; later records only
// fill missing fields. The engine is single-goroutine and sequential.
package reconciler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agentstation/rostermerge/pkg/errors"
	"github.com/agentstation/rostermerge/pkg/logging"
	"github.com/agentstation/rostermerge/pkg/names"
	"github.com/agentstation/rostermerge/pkg/normalizer"
	"github.com/agentstation/rostermerge/pkg/provenance"
	"github.com/agentstation/rostermerge/pkg/records"
	"github.com/agentstation/rostermerge/pkg/schema"
	"github.com/agentstation/rostermerge/pkg/sources"
)

// Reconciler runs one reconciliation. It is not safe for concurrent use and
// is meant to be used for a single run.
type Reconciler struct {
	registry   *schema.Registry
	normalizer *normalizer.Normalizer
	acc        *Accumulator
	provenance provenance.Tracker
	tracking   bool
	logger     *zerolog.Logger
	result     *Result
}

// New creates a new Reconciler with options.
func New(registry *schema.Registry, opts ...Option) (*Reconciler, error) {
	if registry == nil {
		return nil, &errors.ValidationError{Field: "registry", Message: "cannot be nil"}
	}

	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	result := NewResult(options.runID)
	result.Metadata.Filtered = options.allow != nil

	return &Reconciler{
		registry:   registry,
		normalizer: normalizer.New(registry),
		acc:        newAccumulator(registry, options),
		provenance: provenance.NewTracker(options.tracking),
		tracking:   options.tracking,
		logger:     options.logger,
		result:     result,
	}, nil
}

// RunID returns the identifier of this run.
func (r *Reconciler) RunID() string {
	return r.result.RunID
}

// Accumulator exposes the tables built so far.
func (r *Reconciler) Accumulator() *Accumulator {
	return r.acc
}

// loggerFor returns the configured logger, or the one carried by ctx.
func (r *Reconciler) loggerFor(ctx context.Context) *zerolog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return logging.FromContext(ctx)
}

// AbsorbSheet normalizes, canonicalizes and absorbs one sheet.
//
// A sheet without identity columns is rejected with a
// MissingIdentityFieldsError; the caller decides whether to continue.
func (r *Reconciler) AbsorbSheet(ctx context.Context, sheet records.RawSheet) error {
	ctx = logging.WithSheet(logging.WithLogger(ctx, r.loggerFor(ctx)), sheet.File, sheet.Sheet)
	logger := logging.FromContext(ctx)

	recs, err := r.normalizer.Normalize(sheet)
	if err != nil {
		return err
	}
	names.CanonicalizeRecords(r.registry, recs)

	n := r.acc.absorb(sheet.ID(), recs, logger)

	stats := &r.result.Metadata.Stats
	stats.SheetsProcessed++
	stats.RowsDropped += len(sheet.Rows) - len(recs)
	r.result.Metadata.Sheets = append(r.result.Metadata.Sheets, sheet.ID())

	logger.Debug().
		Int("rows", len(sheet.Rows)).
		Int("order", n.Order).
		Int("identity", n.Identity).
		Int("filtered", n.Filtered).
		Int("unkeyable", n.Unkeyable).
		Msg("Absorbed sheet")
	return nil
}

// Reconcile absorbs every sheet of src in order and aggregates the result.
//
// Sheets without identity columns are skipped and recorded as warnings. A
// source error aborts the run, and cancellation is honored between sheets.
func (r *Reconciler) Reconcile(ctx context.Context, src sources.Source) (*Result, error) {
	logger := r.loggerFor(ctx)
	logger.Info().
		Str("run_id", r.result.RunID).
		Str("source", src.ID().String()).
		Msg("Starting reconciliation")

	for sheet, err := range src.Sheets(ctx) {
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %w", errors.ErrCanceled, ctx.Err())
			}
			return nil, fmt.Errorf("reading %s: %w", src.ID(), err)
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrCanceled, err)
		}

		if err := r.AbsorbSheet(ctx, sheet); err != nil {
			if errors.IsMissingIdentityFields(err) {
				logger.Warn().Err(err).Msg("Skipping sheet")
				r.result.Warnings = append(r.result.Warnings, err.Error())
				r.result.Metadata.Stats.SheetsSkipped++
				continue
			}
			return nil, err
		}
	}

	result := r.Result(ctx)
	logger.Info().
		Str("run_id", result.RunID).
		Int("sheets", result.Metadata.Stats.SheetsProcessed).
		Int("skipped", result.Metadata.Stats.SheetsSkipped).
		Int("rows", result.Metadata.Stats.RowsWritten).
		Int("unresolved", result.Metadata.Stats.UnresolvedRows).
		Dur("duration", result.Metadata.Duration).
		Msg("Reconciliation complete")
	return result, nil
}

// Result aggregates the tables absorbed so far into a finalized result.
// It may be called more than once; each call re-aggregates.
func (r *Reconciler) Result(ctx context.Context) *Result {
	r.provenance.Clear()
	agg := newAggregator(r.registry, r.provenance, r.loggerFor(ctx)).
		run(r.acc.OrderTable(), r.acc.IdentityTable())

	totals := r.acc.Totals()
	stats := &r.result.Metadata.Stats
	stats.RecordsAbsorbed = totals.Order + totals.Identity
	stats.RecordsFiltered = totals.Filtered
	stats.UnkeyableRecords = totals.Unkeyable
	stats.OrderEntries = r.acc.OrderTable().Len()
	stats.IdentityEntries = r.acc.IdentityTable().Len()
	stats.PartialMatches = agg.partial
	stats.UnresolvedRows = agg.unresolved
	stats.UnclaimedIdents = agg.unclaimed
	stats.RowsWritten = agg.table.Len()

	r.result.Table = agg.table
	if r.tracking {
		r.result.Provenance = r.provenance.Map()
	}
	r.result.Finalize()

	out := *r.result
	out.Warnings = append([]string(nil), r.result.Warnings...)
	out.Metadata.Sheets = append([]string(nil), r.result.Metadata.Sheets...)
	return &out
}
