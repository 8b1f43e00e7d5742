// Package emoji provides symbol constants for CLI output.
package emoji

// Status symbols shared by alerts and command summaries.
const (
	// Success marks a completed operation.
	Success = "✓"

	// Error marks a failed operation.
	Error = "✗"

	// Warning marks a skipped sheet or other non-fatal issue.
	Warning = "!"

	// Info marks general information.
	Info = "i"

	// Unknown marks an indeterminate state.
	Unknown = "?"
)
