package config

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "noticegen"

	// DefaultFilename is the stem for generated report files. The
	// renderers append .json, .md, and .html to it.
	DefaultFilename = "third-party-notices"

	// DefaultOutDir writes reports into the project directory itself.
	DefaultOutDir = "."

	// DefaultConfigFile is the configuration file name searched for in
	// the project directory and the user's home directory.
	DefaultConfigFile = ".noticegen"
)

// Config holds all configuration options for a noticegen run.
// It is populated from the YAML config file first and then overridden by
// CLI flags, and passed through the application via dependency injection
// rather than global state.
type Config struct {
	// AllowedLicenses is the set of pre-approved license identifiers.
	// An empty allow-list allows nothing: every dependency must then be
	// explicitly ignored or the run fails.
	AllowedLicenses []string

	// IgnorePackages lists package names excluded from license checking,
	// typically private or internal packages. Matching is exact on the
	// package name and version-agnostic: "mylib" ignores every version of
	// mylib in every ecosystem.
	IgnorePackages []string

	// ExportJSON enables the JSON report file.
	ExportJSON bool

	// ExportMarkdown enables the Markdown report file.
	ExportMarkdown bool

	// ExportHTML enables the HTML report file.
	ExportHTML bool

	// OutDir is the directory report files are written into.
	// It is created if it does not exist. Relative paths are resolved
	// against the working directory, not the project directory.
	OutDir string

	// Filename is the stem for report files, without extension.
	Filename string

	// ProjectDir is the directory the collectors run in. It must contain
	// the Cargo workspace and/or the pnpm workspace being audited.
	ProjectDir string

	// ConfigFilePath is the path to the configuration file. If empty, the
	// tool searches for .noticegen in the project directory and then in
	// the user's home directory.
	ConfigFilePath string

	// Verbose enables debug-level log output.
	Verbose bool

	// SaveToDB indicates whether to record the run in the history
	// database for later comparison with `noticegen compare`.
	SaveToDB bool

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory.
	DBDir string
}

// NewConfig creates a Config with default values: all three export
// formats enabled, reports written next to the project, and run history
// saved.
func NewConfig() *Config {
	return &Config{
		ExportJSON:     true,
		ExportMarkdown: true,
		ExportHTML:     true,
		OutDir:         DefaultOutDir,
		Filename:       DefaultFilename,
		ProjectDir:     ".",
		SaveToDB:       true,
		DBDir:          XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for noticegen.
// On Linux: ~/.local/share/noticegen
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for noticegen.
// On Linux: ~/.config/noticegen
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks that the configuration is usable.
// It is called once after flag parsing, before any collector runs, so a
// broken configuration fails before external processes are spawned.
// The first problem found is returned.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Filename) == "" {
		return ErrEmptyFilename
	}
	if strings.ContainsAny(c.Filename, `/\`) {
		return ErrFilenameWithSeparator
	}
	if strings.TrimSpace(c.OutDir) == "" {
		return ErrEmptyOutDir
	}
	if !c.ExportJSON && !c.ExportMarkdown && !c.ExportHTML {
		return ErrNoExportFormat
	}
	for _, id := range c.AllowedLicenses {
		if strings.TrimSpace(id) == "" {
			return ErrEmptyLicenseID
		}
	}
	return nil
}

// Formats returns the enabled export file extensions in render order.
func (c *Config) Formats() []string {
	var formats []string
	if c.ExportJSON {
		formats = append(formats, "json")
	}
	if c.ExportMarkdown {
		formats = append(formats, "md")
	}
	if c.ExportHTML {
		formats = append(formats, "html")
	}
	return formats
}
