package reconcile

import "github.com/spf13/cobra"

// Flags holds the output flags shared by reconcile and search.
type Flags struct {
	Preview bool
	Explain bool
	Fields  []string
	DryRun  bool
	Sheet   string
}

// AddFlags adds run output flags to a command.
func AddFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}

	cmd.Flags().BoolVar(&flags.Preview, "preview", false,
		"Print the reconciled rows instead of the run statistics")
	cmd.Flags().BoolVar(&flags.Explain, "explain", false,
		"Print where every output value came from")
	cmd.Flags().StringSliceVar(&flags.Fields, "fields", nil,
		"Restrict --explain to matching field labels (e.g. '*name')")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false,
		"Reconcile without writing the report")
	cmd.Flags().StringVar(&flags.Sheet, "sheet", "",
		"Sheet name of the xlsx report (default Sheet1)")

	return flags
}
