package rostermerge

import (
	"context"

	"github.com/agentstation/rostermerge/internal/report/csv"
	"github.com/agentstation/rostermerge/internal/report/xlsx"
	"github.com/agentstation/rostermerge/pkg/errors"
	"github.com/agentstation/rostermerge/pkg/provenance"
	"github.com/agentstation/rostermerge/pkg/reconciler"
	"github.com/agentstation/rostermerge/pkg/records"
	"github.com/agentstation/rostermerge/pkg/report"
)

// NewReportWriter returns the writer for path, chosen by its extension.
func NewReportWriter(path string, opts ...report.Option) (report.Writer, error) {
	format, err := report.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case report.FormatCSV:
		return csv.New(path, opts...), nil
	default:
		return xlsx.New(path, opts...), nil
	}
}

// WriteReport writes the canonical table to path as .xlsx or .csv.
func WriteReport(ctx context.Context, table records.Table, path string, opts ...report.Option) error {
	w, err := NewReportWriter(path, opts...)
	if err != nil {
		return err
	}
	if err := w.Write(ctx, table); err != nil {
		return errors.WrapResource("write", "report", path, err)
	}
	return nil
}

// SaveProvenance exports the field provenance of a result as YAML.
func SaveProvenance(path string, result *reconciler.Result) error {
	if result.Provenance == nil {
		return &errors.ValidationError{Field: "provenance", Message: "tracking was disabled for this run"}
	}
	return provenance.Save(path, &provenance.File{
		RunID:      result.RunID,
		Provenance: result.Provenance,
	})
}
