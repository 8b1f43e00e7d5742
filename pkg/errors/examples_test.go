package errors_test

import (
	"fmt"

	"github.com/agentstation/rostermerge/pkg/errors"
)

// Example demonstrates basic error creation and checking.
func Example() {
	err := errors.NewMissingIdentityFieldsError("files/a.xlsx", "Notes")

	if errors.IsMissingIdentityFields(err) {
		fmt.Println("Skipping sheet")
	}

	// Output: Skipping sheet
}

// Example_configFormatError shows how schema errors carry the offending line.
func Example_configFormatError() {
	err := fmt.Errorf("loading schema: %w", errors.NewConfigFormatError(3, "last-name", "missing ':' separator"))

	if errors.IsConfigFormat(err) {
		fmt.Println(err)
	}

	// Output: loading schema: config line 3 "last-name": missing ':' separator
}
