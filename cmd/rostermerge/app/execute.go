package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the rostermerge CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "rostermerge",
		Short:   "Reconcile order and patient rosters across spreadsheets",
		Version: a.version,
		Long: `rostermerge reads every spreadsheet under a directory, maps the many
ways each file labels a column onto one set of canonical fields, and merges
the rows into a single de-duplicated table keyed by tube number.

Rows that carry only a person's name fill in the gaps of rows that carry a
tube number for the same person.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default is $HOME/.rostermerge.yaml or ./.rostermerge.yaml)")
	pf.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	pf.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	pf.Bool("no-color", false, "disable colored output")
	pf.StringP("format", "f", "", "output format: table, json, yaml")
	pf.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	pf.StringP("schema", "c", "", "field alias configuration (default ./config.txt)")
	pf.StringP("root", "r", "", "directory of input spreadsheets (default ./files)")
	pf.StringP("output", "o", "", "report file, .xlsx or .csv (default ./report.xlsx)")
	pf.String("provenance", "", "also write field provenance to this YAML file")

	rootCmd.SetVersionTemplate("rostermerge {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// An explicit --config replaces whatever New loaded
	if configFile := mustGetString(cmd, "config"); configFile != "" {
		config, err := LoadConfig(configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(Flags{
		Verbose:    mustGetBool(cmd, "verbose"),
		Quiet:      mustGetBool(cmd, "quiet"),
		NoColor:    mustGetBool(cmd, "no-color"),
		Format:     mustGetString(cmd, "format"),
		LogLevel:   mustGetString(cmd, "log-level"),
		Schema:     mustGetString(cmd, "schema"),
		Root:       mustGetString(cmd, "root"),
		Output:     mustGetString(cmd, "output"),
		Provenance: mustGetString(cmd, "provenance"),
	})

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
