package collector

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestHarvestNotices verifies NOTICE inclusion, copyright-line
// extraction, and boilerplate filtering.
func TestHarvestNotices(t *testing.T) {
	t.Parallel()

	t.Run("NOTICE file kept verbatim", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		content := "Example Product\nCopyright 2020 Example Corp\n"
		if err := os.WriteFile(filepath.Join(dir, "NOTICE"), []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		notices, err := harvestNotices(dir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		found := false
		for _, n := range notices {
			if n == content {
				found = true
			}
		}
		if !found {
			t.Errorf("expected NOTICE contents verbatim, got %v", notices)
		}
	})

	t.Run("copyright lines extracted from LICENSE", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		text := "MIT License\n\nCopyright (c) 2015 Jane Doe\n\nPermission is hereby granted...\n"
		if err := os.WriteFile(filepath.Join(dir, "LICENSE"), []byte(text), 0600); err != nil {
			t.Fatal(err)
		}

		notices, err := harvestNotices(dir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(notices) != 1 || !strings.Contains(notices[0], "Jane Doe") {
			t.Errorf("expected the copyright line, got %v", notices)
		}
	})

	t.Run("template boilerplate filtered out", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		text := "Copyright (c) <year> <copyright holder>\n"
		if err := os.WriteFile(filepath.Join(dir, "LICENSE.txt"), []byte(text), 0600); err != nil {
			t.Fatal(err)
		}

		notices, err := harvestNotices(dir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(notices) != 0 {
			t.Errorf("expected boilerplate to be filtered, got %v", notices)
		}
	})

	t.Run("unrelated files not scanned", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		text := "Copyright (c) 2015 Jane Doe\n"
		if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte(text), 0600); err != nil {
			t.Fatal(err)
		}

		notices, err := harvestNotices(dir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(notices) != 0 {
			t.Errorf("expected source files to be skipped, got %v", notices)
		}
	})

	t.Run("missing directory yields no notices", func(t *testing.T) {
		t.Parallel()
		notices, err := harvestNotices(filepath.Join(t.TempDir(), "does-not-exist"))
		if err != nil {
			t.Fatalf("expected no error for a missing directory, got %v", err)
		}
		if len(notices) != 0 {
			t.Errorf("expected no notices, got %v", notices)
		}
	})
}
