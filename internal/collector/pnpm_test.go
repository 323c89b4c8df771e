package collector

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/nao1215/noticegen/internal/model"
)

// writePnpmProject creates a project directory with a pnpm lockfile and
// returns it.
func writePnpmProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, pnpmLockFile), []byte("lockfileVersion: '9.0'\n"), 0600); err != nil {
		t.Fatal(err)
	}
	return dir
}

// writePackage creates an installed dependency directory with a
// package.json and returns its path.
func writePackage(t *testing.T, name, version, license string) string {
	t.Helper()
	dir := t.TempDir()
	manifest := fmt.Sprintf(`{"name": %q, "version": %q, "license": %q}`, name, version, license)
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(manifest), 0600); err != nil {
		t.Fatal(err)
	}
	return dir
}

// TestPnpmCollect verifies parsing of pnpm list output and the installed
// packages' manifests.
func TestPnpmCollect(t *testing.T) {
	t.Parallel()

	t.Run("missing lockfile yields no records", func(t *testing.T) {
		t.Parallel()
		p := NewPnpm(t.TempDir(), WithPnpmRunner(fakeRunner("", fmt.Errorf("must not run"))))

		records, err := p.Collect(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(records) != 0 {
			t.Errorf("expected no records, got %v", records)
		}
	})

	t.Run("dependencies and devDependencies collected", func(t *testing.T) {
		t.Parallel()
		projectDir := writePnpmProject(t)
		lodashDir := writePackage(t, "lodash", "4.17.21", "MIT")
		tsDir := writePackage(t, "typescript", "5.5.2", "Apache-2.0")

		listOutput := fmt.Sprintf(`[
			{
				"dependencies": {"lodash": {"path": %q}},
				"devDependencies": {"typescript": {"path": %q}}
			}
		]`, lodashDir, tsDir)

		p := NewPnpm(projectDir, WithPnpmRunner(fakeRunner(listOutput, nil)))
		records, err := p.Collect(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(records) != 2 {
			t.Fatalf("expected two records, got %d", len(records))
		}

		// Records come back sorted by name.
		if records[0].Name != "lodash" || records[1].Name != "typescript" {
			t.Errorf("unexpected records: %v", records)
		}
		if records[0].Source != model.EcosystemPnpm {
			t.Errorf("expected pnpm source, got %v", records[0].Source)
		}
		if !slices.Equal(records[0].Licenses, []string{"MIT"}) {
			t.Errorf("expected [MIT], got %v", records[0].Licenses)
		}
		if records[0].PackageURL != "https://www.npmjs.com/package/lodash/v/4.17.21" {
			t.Errorf("unexpected package URL: %q", records[0].PackageURL)
		}
	})

	t.Run("duplicate packages across projects merge", func(t *testing.T) {
		t.Parallel()
		projectDir := writePnpmProject(t)
		lodashDir := writePackage(t, "lodash", "4.17.21", "MIT")

		listOutput := fmt.Sprintf(`[
			{"dependencies": {"lodash": {"path": %q}}, "devDependencies": {}},
			{"dependencies": {"lodash": {"path": %q}}, "devDependencies": {}}
		]`, lodashDir, lodashDir)

		p := NewPnpm(projectDir, WithPnpmRunner(fakeRunner(listOutput, nil)))
		records, err := p.Collect(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(records) != 1 {
			t.Errorf("expected one merged record, got %d", len(records))
		}
	})

	t.Run("package without license yields empty license set", func(t *testing.T) {
		t.Parallel()
		projectDir := writePnpmProject(t)
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "package.json"),
			[]byte(`{"name": "mystery", "version": "0.1.0"}`), 0600); err != nil {
			t.Fatal(err)
		}

		listOutput := fmt.Sprintf(`[{"dependencies": {"mystery": {"path": %q}}, "devDependencies": {}}]`, dir)

		p := NewPnpm(projectDir, WithPnpmRunner(fakeRunner(listOutput, nil)))
		records, err := p.Collect(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(records[0].Licenses) != 0 {
			t.Errorf("expected empty license set, got %v", records[0].Licenses)
		}
	})

	t.Run("malformed list output returns ParseError", func(t *testing.T) {
		t.Parallel()
		p := NewPnpm(writePnpmProject(t), WithPnpmRunner(fakeRunner("not json", nil)))

		_, err := p.Collect(context.Background())
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected ParseError, got %v", err)
		}
		if parseErr.Ecosystem != model.EcosystemPnpm {
			t.Errorf("expected pnpm ecosystem in error, got %v", parseErr.Ecosystem)
		}
	})

	t.Run("malformed package.json returns ParseError", func(t *testing.T) {
		t.Parallel()
		projectDir := writePnpmProject(t)
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte("{broken"), 0600); err != nil {
			t.Fatal(err)
		}

		listOutput := fmt.Sprintf(`[{"dependencies": {"broken": {"path": %q}}, "devDependencies": {}}]`, dir)

		p := NewPnpm(projectDir, WithPnpmRunner(fakeRunner(listOutput, nil)))
		_, err := p.Collect(context.Background())
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected ParseError, got %v", err)
		}
	})

	t.Run("missing package.json is an error", func(t *testing.T) {
		t.Parallel()
		projectDir := writePnpmProject(t)
		listOutput := fmt.Sprintf(`[{"dependencies": {"ghost": {"path": %q}}, "devDependencies": {}}]`,
			filepath.Join(t.TempDir(), "ghost"))

		p := NewPnpm(projectDir, WithPnpmRunner(fakeRunner(listOutput, nil)))
		if _, err := p.Collect(context.Background()); err == nil {
			t.Error("expected an error for a missing package.json")
		}
	})
}

// TestPnpmName verifies the collector's ecosystem name.
func TestPnpmName(t *testing.T) {
	t.Parallel()

	if got := NewPnpm(".").Name(); got != "pnpm" {
		t.Errorf("expected 'pnpm', got %q", got)
	}
}
