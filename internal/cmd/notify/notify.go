// Package notify provides a unified API for status alerts in the CLI.
// Alerts go to stderr so stdout stays parseable for json and yaml output.
package notify

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/agentstation/rostermerge/internal/cmd/alerts"
	"github.com/agentstation/rostermerge/internal/cmd/globals"
	"github.com/agentstation/rostermerge/internal/cmd/output"
)

// Notifier is the main public API for sending alerts.
type Notifier struct {
	alertWriter alerts.Writer
	config      Config
}

// Config controls notification behavior.
type Config struct {
	OutputFormat output.Format
	ShowAlerts   bool      // false silences everything but errors
	AlertWriter  io.Writer // default: stderr
	UseColor     bool
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		OutputFormat: output.FormatTable,
		ShowAlerts:   true,
		AlertWriter:  os.Stderr,
		UseColor:     true,
	}
}

// New creates a new Notifier with the given configuration.
func New(config Config) *Notifier {
	if config.AlertWriter == nil {
		config.AlertWriter = os.Stderr
	}
	w := alerts.NewFormatWriter(config.AlertWriter, config.OutputFormat)
	if !config.UseColor {
		w = w.WithConfig(alerts.WriterConfig{ShowDetails: true})
	}
	return &Notifier{alertWriter: w, config: config}
}

// NewFromCommand creates a Notifier writing to the command's stderr,
// silenced by --quiet.
func NewFromCommand(cmd *cobra.Command, format output.Format) *Notifier {
	flags := globals.Parse(cmd)
	return New(Config{
		OutputFormat: format,
		ShowAlerts:   !flags.Quiet,
		AlertWriter:  cmd.ErrOrStderr(),
		UseColor:     !flags.NoColor && isTerminal(cmd.ErrOrStderr()),
	})
}

// Alert sends an alert notification.
func (n *Notifier) Alert(alert *alerts.Alert) error {
	if !n.config.ShowAlerts && alert.Level != alerts.LevelError {
		return nil
	}
	return n.alertWriter.WriteAlert(alert)
}

// Success sends a success alert.
func (n *Notifier) Success(message string, details ...string) error {
	return n.Alert(alerts.NewSuccess(message).WithDetails(details...))
}

// Warning sends a warning alert.
func (n *Notifier) Warning(message string, details ...string) error {
	return n.Alert(alerts.NewWarning(message).WithDetails(details...))
}

// Info sends an info alert.
func (n *Notifier) Info(message string, details ...string) error {
	return n.Alert(alerts.NewInfo(message).WithDetails(details...))
}

// Error sends an error alert.
func (n *Notifier) Error(message string, err error) error {
	return n.Alert(alerts.NewError(message).WithError(err))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
