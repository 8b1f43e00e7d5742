// Package search implements the search command: a reconciliation limited
// to the people named on an allow-list.
package search

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/rostermerge"
	"github.com/agentstation/rostermerge/cmd/rostermerge/cmd/reconcile"
	"github.com/agentstation/rostermerge/internal/appcontext"
	"github.com/agentstation/rostermerge/pkg/names"
	"github.com/agentstation/rostermerge/pkg/reconciler"
)

// NewCommand creates the search command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		flags     *reconcile.Flags
		namesFile string
		inline    []string
	)

	cmd := &cobra.Command{
		Use:     "search",
		GroupID: "core",
		Short:   "Merge only the records of the listed people",
		Long: `Search runs a reconciliation restricted to an allow-list of people.

The allow-list has one "First Last" pair per line; case and surrounding
whitespace are ignored. Rows whose name is incomplete never match.`,
		Example: `  rostermerge search                           # uses names.txt
  rostermerge search --names vip.txt -o vip.xlsx
  rostermerge search --name "Jane Doe" --name "Min Lee" --preview`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			allow, err := loadAllowList(app, namesFile, inline)
			if err != nil {
				return err
			}
			app.Logger().Debug().Int("names", allow.Len()).Msg("Loaded allow-list")

			return reconcile.Run(cmd, app, flags, func(ctx context.Context, rm rostermerge.RosterMerge) (*reconciler.Result, error) {
				return rm.Search(ctx, allow)
			})
		},
	}

	flags = reconcile.AddFlags(cmd)
	cmd.Flags().StringVarP(&namesFile, "names", "n", "",
		"Allow-list file (default from config, ./names.txt)")
	cmd.Flags().StringArrayVar(&inline, "name", nil,
		`Allow a single "First Last" name; repeatable, replaces the file`)

	return cmd
}

// loadAllowList prefers inline names, then the --names file, then the
// configured path.
func loadAllowList(app appcontext.Interface, file string, inline []string) (*names.AllowList, error) {
	if len(inline) > 0 {
		return names.ParseAllowList(strings.NewReader(strings.Join(inline, "\n")))
	}
	if file == "" {
		file = app.NamesPath()
	}
	return names.LoadAllowList(file)
}
