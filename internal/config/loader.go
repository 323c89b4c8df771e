package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File mirrors the YAML configuration file. Every field is optional;
// pointer types distinguish "omitted" from "explicitly false" so that the
// file can partially override defaults without clobbering them.
type File struct {
	// AllowedLicenses lists pre-approved license identifiers.
	AllowedLicenses []string `yaml:"allowed_licenses"`

	// IgnorePackages lists package names excluded from checking.
	IgnorePackages []string `yaml:"ignore_packages"`

	// ExportJSON toggles the JSON report.
	ExportJSON *bool `yaml:"export_json"`

	// ExportMarkdown toggles the Markdown report.
	ExportMarkdown *bool `yaml:"export_markdown"`

	// ExportHTML toggles the HTML report.
	ExportHTML *bool `yaml:"export_html"`

	// OutDir is the report output directory.
	OutDir string `yaml:"out_dir"`

	// Filename is the report filename stem.
	Filename string `yaml:"filename"`
}

// LoadConfigFile loads settings from a YAML file.
// Unknown keys are rejected so that a typo such as "alowed_licenses"
// fails loudly instead of silently allowing nothing.
// If the file does not exist, ErrConfigNotFound is returned; callers
// decide whether that is fatal based on whether the path was explicit.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cf); err != nil {
		return nil, fmt.Errorf("malformed configuration file %s: %w", path, err)
	}

	return &cf, nil
}

// Apply overlays the file's settings onto the config.
// Only fields present in the file are applied; omitted fields keep the
// config's current (default or flag-provided) values.
func (f *File) Apply(cfg *Config) {
	if f.AllowedLicenses != nil {
		cfg.AllowedLicenses = f.AllowedLicenses
	}
	if f.IgnorePackages != nil {
		cfg.IgnorePackages = f.IgnorePackages
	}
	if f.ExportJSON != nil {
		cfg.ExportJSON = *f.ExportJSON
	}
	if f.ExportMarkdown != nil {
		cfg.ExportMarkdown = *f.ExportMarkdown
	}
	if f.ExportHTML != nil {
		cfg.ExportHTML = *f.ExportHTML
	}
	if f.OutDir != "" {
		cfg.OutDir = f.OutDir
	}
	if f.Filename != "" {
		cfg.Filename = f.Filename
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .noticegen in the project directory
// 3. Look for .noticegen in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath, projectDir string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	projectConfig := filepath.Join(projectDir, DefaultConfigFile)
	if _, err := os.Stat(projectConfig); err == nil {
		return projectConfig
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
