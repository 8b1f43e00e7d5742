// Package schema implements the schema command.
package schema

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/rostermerge/internal/appcontext"
	"github.com/agentstation/rostermerge/internal/cmd/format"
	"github.com/agentstation/rostermerge/internal/cmd/output"
)

// NewCommand creates the schema command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var lookup bool

	cmd := &cobra.Command{
		Use:     "schema",
		GroupID: "management",
		Short:   "Show the canonical fields and their accepted labels",
		Example: `  rostermerge schema                 # fields in output order
  rostermerge schema --lookup        # every accepted column label
  rostermerge schema -c other.txt -f yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rm, err := app.RosterMerge()
			if err != nil {
				return err
			}
			reg := rm.Schema()
			f := output.Format(app.OutputFormat())

			if lookup {
				return format.Lookup(cmd.OutOrStdout(), f, reg.Lookup())
			}
			return format.Fields(cmd.OutOrStdout(), f, reg.Fields())
		},
	}

	cmd.Flags().BoolVar(&lookup, "lookup", false, "List every accepted column label")
	return cmd
}
