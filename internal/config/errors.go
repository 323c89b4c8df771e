package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and by the file loader,
// and can be matched with errors.Is() for programmatic handling while
// still carrying a human-readable message.
var (
	// ErrEmptyFilename is returned when the report filename stem is empty.
	// Without a stem there is no way to name the output files.
	ErrEmptyFilename = errors.New("invalid filename: must not be empty")

	// ErrFilenameWithSeparator is returned when the filename stem contains
	// a path separator. The output directory is configured separately via
	// out_dir; the stem must be a bare file name.
	ErrFilenameWithSeparator = errors.New("invalid filename: must not contain path separators (set out_dir instead)")

	// ErrEmptyOutDir is returned when the output directory is empty.
	// Use "." to write reports into the current directory.
	ErrEmptyOutDir = errors.New("invalid out_dir: must not be empty")

	// ErrNoExportFormat is returned when every export flag is disabled.
	// A run that renders nothing has no observable result.
	ErrNoExportFormat = errors.New("no export format enabled: enable at least one of export_json, export_markdown, export_html")

	// ErrEmptyLicenseID is returned when the allow-list contains an empty
	// or all-whitespace license identifier. Such an entry can never match
	// a declared license and almost certainly indicates a config typo.
	ErrEmptyLicenseID = errors.New("invalid allowed_licenses: entries must be non-empty license identifiers")

	// ErrConfigNotFound is returned when an explicitly specified
	// configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
