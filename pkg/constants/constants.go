// Package constants provides shared constants used throughout the rostermerge codebase.
// This includes default paths, file permissions, and the schema keys the
// reconciliation engine depends on.
package constants

// Default locations used when no flag, config file entry or environment
// variable overrides them.
const (
	// DefaultSchemaFile is the field alias configuration
	DefaultSchemaFile = "./config.txt"

	// DefaultFilesRoot is the directory walked for input spreadsheets
	DefaultFilesRoot = "./files"

	// DefaultOutputFile is where the canonical table is written
	DefaultOutputFile = "./report.xlsx"

	// DefaultNamesFile is the allow-list used by search mode
	DefaultNamesFile = "./names.txt"

	// DefaultSheetName is the sheet the xlsx report is written to
	DefaultSheetName = "Sheet1"
)

// Schema keys the engine requires to be present in every configuration.
const (
	// KeyOrderID is the canonical key of the order identifier (tube number)
	KeyOrderID = "tube-number"

	// KeyFirstName is the canonical key of the first name
	KeyFirstName = "first-name"

	// KeyLastName is the canonical key of the last name
	KeyLastName = "last-name"

	// KeyDateOfBirth is the canonical key of the date of birth
	KeyDateOfBirth = "date-of-birth"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Input file extensions recognised during discovery.
const (
	// ExtXLSX is the Excel workbook extension
	ExtXLSX = ".xlsx"

	// ExtCSV is the comma separated values extension
	ExtCSV = ".csv"
)
