package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/rostermerge/pkg/provenance"
	"github.com/agentstation/rostermerge/pkg/records"
)

// Result represents the outcome of a reconciliation run.
type Result struct {
	// RunID identifies the run in logs and provenance exports
	RunID string

	// Core data
	Table records.Table

	// Provenance tracking, nil when disabled
	Provenance provenance.Map

	// Metadata
	Metadata ResultMetadata

	// Issues that did not stop the run, such as skipped sheets
	Warnings []string
}

// ResultMetadata contains metadata about the reconciliation process.
type ResultMetadata struct {
	// StartTime when reconciliation started
	StartTime time.Time

	// EndTime when reconciliation completed
	EndTime time.Time

	// Duration of the reconciliation
	Duration time.Duration

	// Sheets that were absorbed, as "file#sheet"
	Sheets []string

	// Filtered is true when a name filter was active
	Filtered bool

	// Statistics about the reconciliation
	Stats ResultStatistics
}

// ResultStatistics contains statistics about the reconciliation.
type ResultStatistics struct {
	SheetsProcessed  int   `json:"sheets_processed" yaml:"sheets_processed"`
	SheetsSkipped    int   `json:"sheets_skipped" yaml:"sheets_skipped"`
	RowsDropped      int   `json:"rows_dropped" yaml:"rows_dropped"` // normalized away: no order id and no name
	RecordsAbsorbed  int   `json:"records_absorbed" yaml:"records_absorbed"`
	RecordsFiltered  int   `json:"records_filtered" yaml:"records_filtered"`
	UnkeyableRecords int   `json:"unkeyable_records" yaml:"unkeyable_records"`
	OrderEntries     int   `json:"order_entries" yaml:"order_entries"`
	IdentityEntries  int   `json:"identity_entries" yaml:"identity_entries"`
	PartialMatches   int   `json:"partial_matches" yaml:"partial_matches"`
	UnresolvedRows   int   `json:"unresolved_rows" yaml:"unresolved_rows"`
	UnclaimedIdents  int   `json:"unclaimed_idents" yaml:"unclaimed_idents"`
	RowsWritten      int   `json:"rows_written" yaml:"rows_written"`
	TotalTimeMs      int64 `json:"total_time_ms" yaml:"total_time_ms"`
}

// IsEmpty returns true if the run produced no canonical rows.
func (r *Result) IsEmpty() bool {
	return r.Table.Len() == 0
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	s := r.Metadata.Stats
	msg := fmt.Sprintf("Reconciled %d rows from %d sheets", s.RowsWritten, s.SheetsProcessed)
	if s.SheetsSkipped > 0 {
		msg += fmt.Sprintf(", %d sheets skipped", s.SheetsSkipped)
	}
	if s.UnresolvedRows > 0 {
		msg += fmt.Sprintf(", %d unresolved order entries discarded", s.UnresolvedRows)
	}
	return msg
}

// NewResult creates a new result with defaults.
func NewResult(runID string) *Result {
	return &Result{
		RunID:    runID,
		Warnings: []string{},
		Metadata: ResultMetadata{
			StartTime: time.Now().UTC(),
			Sheets:    []string{},
		},
	}
}

// Finalize calculates duration and marks completion.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now().UTC()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
	r.Metadata.Stats.TotalTimeMs = r.Metadata.Duration.Milliseconds()
}
