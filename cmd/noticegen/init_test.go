package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runInit executes the init command with the given arguments.
func runInit(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewInitCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// TestInitCmd verifies configuration file creation.
func TestInitCmd(t *testing.T) {
	t.Parallel()

	t.Run("creates a starter configuration file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".noticegen")

		out, err := runInit(t, "-o", path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, path) {
			t.Errorf("expected the created path in output, got:\n%s", out)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("expected the config file to exist: %v", err)
		}
		for _, want := range []string{"allowed_licenses", "ignore_packages", "out_dir", "filename"} {
			if !strings.Contains(string(content), want) {
				t.Errorf("expected template to mention %q", want)
			}
		}
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".noticegen")
		if err := os.WriteFile(path, []byte("existing"), 0600); err != nil {
			t.Fatal(err)
		}

		if _, err := runInit(t, "-o", path); err == nil {
			t.Error("expected an error for an existing file")
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(content) != "existing" {
			t.Error("expected the existing file to be untouched")
		}
	})

	t.Run("force overwrites an existing file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".noticegen")
		if err := os.WriteFile(path, []byte("existing"), 0600); err != nil {
			t.Fatal(err)
		}

		if _, err := runInit(t, "-o", path, "-f"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(content), "allowed_licenses") {
			t.Error("expected the file to be replaced with the template")
		}
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "nested", "dir", "compliance.yaml")

		if _, err := runInit(t, "-o", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected the file under nested directories: %v", err)
		}
	})
}
