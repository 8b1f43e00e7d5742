package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/rostermerge/cmd/rostermerge/cmd/reconcile"
	"github.com/agentstation/rostermerge/cmd/rostermerge/cmd/schema"
	"github.com/agentstation/rostermerge/cmd/rostermerge/cmd/search"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(reconcile.NewCommand(a))
	rootCmd.AddCommand(search.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(schema.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("rostermerge %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
