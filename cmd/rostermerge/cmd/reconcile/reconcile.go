// Package reconcile implements the reconcile command and the run flow it
// shares with search.
package reconcile

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/rostermerge"
	"github.com/agentstation/rostermerge/internal/appcontext"
	"github.com/agentstation/rostermerge/internal/cmd/format"
	"github.com/agentstation/rostermerge/internal/cmd/notify"
	"github.com/agentstation/rostermerge/internal/cmd/output"
	"github.com/agentstation/rostermerge/pkg/reconciler"
	"github.com/agentstation/rostermerge/pkg/report"
)

// Mode performs one kind of run against an instance.
type Mode func(ctx context.Context, rm rostermerge.RosterMerge) (*reconciler.Result, error)

// NewCommand creates the reconcile command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "reconcile",
		GroupID: "core",
		Short:   "Merge every input spreadsheet into one report",
		Long: `Reconcile walks the files root for .xlsx and .csv files, maps every
column onto the canonical fields of the schema, and fuses rows that share a
tube number with rows that only carry a person's name.

The result has one row per tube number and is written to the report file.`,
		Example: `  rostermerge reconcile                              # files/ -> report.xlsx
  rostermerge reconcile -r intake -o merged.csv      # custom root and csv report
  rostermerge reconcile --preview --dry-run          # inspect without writing
  rostermerge reconcile --explain --fields '*name'   # show where names came from`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd, app, flags, func(ctx context.Context, rm rostermerge.RosterMerge) (*reconciler.Result, error) {
				return rm.Reconcile(ctx)
			})
		},
	}

	flags = AddFlags(cmd)
	return cmd
}

// Run executes mode, writes the report and provenance files, and prints
// the outcome in the configured format.
func Run(cmd *cobra.Command, app appcontext.Interface, flags *Flags, mode Mode) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := app.Logger()
	f := output.Format(app.OutputFormat())
	notifier := notify.NewFromCommand(cmd, f)

	rm, err := app.RosterMerge()
	if err != nil {
		return err
	}

	result, err := mode(ctx, rm)
	if err != nil {
		return err
	}

	if n := len(result.Warnings); n > 0 {
		if err := notifier.Warning(fmt.Sprintf("Skipped %d sheet(s)", n), result.Warnings...); err != nil {
			logger.Debug().Err(err).Msg("Failed to write alert")
		}
	}

	reportPath := ""
	if !flags.DryRun {
		reportPath = app.ReportPath()
		if err := rostermerge.WriteReport(ctx, result.Table, reportPath, report.WithSheet(flags.Sheet)); err != nil {
			return err
		}
		logger.Info().Str("path", reportPath).Int("rows", result.Table.Len()).Msg("Wrote report")
	}

	provenancePath := app.ProvenancePath()
	if provenancePath != "" {
		if err := rostermerge.SaveProvenance(provenancePath, result); err != nil {
			return err
		}
		logger.Info().Str("path", provenancePath).Msg("Wrote provenance")
	}

	out := cmd.OutOrStdout()
	switch {
	case flags.Explain:
		err = format.Provenance(out, f, result.Provenance, flags.Fields)
	case flags.Preview:
		err = format.Rows(out, f, result.Table)
	default:
		err = format.Stats(out, f, format.NewSummary(result, reportPath, provenancePath))
	}
	if err != nil {
		return err
	}

	var details []string
	if reportPath != "" {
		details = append(details, "report: "+reportPath)
	}
	if provenancePath != "" {
		details = append(details, "provenance: "+provenancePath)
	}
	if err := notifier.Success(result.Summary(), details...); err != nil {
		logger.Debug().Err(err).Msg("Failed to write alert")
	}
	return nil
}
