package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// writeFile is a test helper that creates a file with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// TestLoadConfigFile verifies YAML parsing, strict key checking, and the
// not-found sentinel.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads all fields", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".noticegen")
		writeFile(t, path, `
allowed_licenses:
  - MIT
  - Apache-2.0
ignore_packages:
  - my-internal-crate
export_json: false
export_markdown: true
export_html: false
out_dir: docs
filename: notices
`)

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !slices.Equal(cf.AllowedLicenses, []string{"MIT", "Apache-2.0"}) {
			t.Errorf("unexpected allowed_licenses: %v", cf.AllowedLicenses)
		}
		if !slices.Equal(cf.IgnorePackages, []string{"my-internal-crate"}) {
			t.Errorf("unexpected ignore_packages: %v", cf.IgnorePackages)
		}
		if cf.ExportJSON == nil || *cf.ExportJSON {
			t.Error("expected export_json to be explicitly false")
		}
		if cf.ExportMarkdown == nil || !*cf.ExportMarkdown {
			t.Error("expected export_markdown to be explicitly true")
		}
		if cf.OutDir != "docs" || cf.Filename != "notices" {
			t.Errorf("unexpected output settings: %q %q", cf.OutDir, cf.Filename)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".noticegen")
		writeFile(t, path, "alowed_licenses: [MIT]\n")

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected an error for a misspelled key")
		}
	})

	t.Run("malformed YAML is rejected", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".noticegen")
		writeFile(t, path, "allowed_licenses: [MIT\n")

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected an error for malformed YAML")
		}
	})
}

// TestFileApply verifies that only fields present in the file override
// the config.
func TestFileApply(t *testing.T) {
	t.Parallel()

	t.Run("omitted fields keep defaults", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		(&File{AllowedLicenses: []string{"MIT"}}).Apply(cfg)

		if !cfg.ExportJSON || !cfg.ExportMarkdown || !cfg.ExportHTML {
			t.Error("expected export defaults to survive a partial file")
		}
		if cfg.Filename != DefaultFilename {
			t.Errorf("expected default filename, got %q", cfg.Filename)
		}
		if !slices.Equal(cfg.AllowedLicenses, []string{"MIT"}) {
			t.Errorf("expected allow-list applied, got %v", cfg.AllowedLicenses)
		}
	})

	t.Run("explicit false overrides default true", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		f := false
		(&File{ExportHTML: &f}).Apply(cfg)

		if cfg.ExportHTML {
			t.Error("expected export_html=false to apply")
		}
		if !cfg.ExportJSON {
			t.Error("expected export_json default to survive")
		}
	})
}

// TestFindConfigFile verifies the explicit-path and project-directory
// search behavior. The home-directory fallback is not exercised to keep
// the test hermetic.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit path found", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "custom.yaml")
		writeFile(t, path, "allowed_licenses: [MIT]\n")

		if got := FindConfigFile(path, "."); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit path missing returns empty", func(t *testing.T) {
		t.Parallel()
		if got := FindConfigFile(filepath.Join(t.TempDir(), "nope.yaml"), "."); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})

	t.Run("project directory searched", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		writeFile(t, path, "allowed_licenses: [MIT]\n")

		if got := FindConfigFile("", dir); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})
}
