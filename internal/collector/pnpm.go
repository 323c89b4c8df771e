package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/noticegen/internal/license"
	"github.com/nao1215/noticegen/internal/model"
)

// pnpmLockFile is the lockfile pnpm maintains. Its absence means the
// project has no pnpm-managed dependencies, which is not an error.
const pnpmLockFile = "pnpm-lock.yaml"

// Pnpm collects dependency metadata from a JavaScript workspace managed
// by pnpm. It enumerates installed dependencies via `pnpm list --json`
// and reads each dependency's package.json for name, version, and
// license.
type Pnpm struct {
	// dir is the project directory containing pnpm-lock.yaml.
	dir string

	// run executes external commands; injectable for tests.
	run CommandRunner

	// logger for structured logging.
	logger *slog.Logger
}

// PnpmOption configures a Pnpm collector.
type PnpmOption func(*Pnpm)

// WithPnpmRunner substitutes the command runner. Used by tests to feed
// canned `pnpm list` output.
func WithPnpmRunner(run CommandRunner) PnpmOption {
	return func(p *Pnpm) {
		p.run = run
	}
}

// WithPnpmLogger sets a custom logger.
func WithPnpmLogger(logger *slog.Logger) PnpmOption {
	return func(p *Pnpm) {
		p.logger = logger
	}
}

// NewPnpm creates a Pnpm collector for the given project directory.
func NewPnpm(dir string, opts ...PnpmOption) *Pnpm {
	p := &Pnpm{
		dir:    dir,
		run:    ExecRunner,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the collector's ecosystem name.
func (p *Pnpm) Name() string {
	return string(model.EcosystemPnpm)
}

// pnpmListItem is one project entry in `pnpm list --json` output.
type pnpmListItem struct {
	Dependencies    map[string]pnpmListDep `json:"dependencies"`
	DevDependencies map[string]pnpmListDep `json:"devDependencies"`
}

// pnpmListDep is one dependency entry, pointing at its install path.
type pnpmListDep struct {
	Path string `json:"path"`
}

// packageJSON mirrors the fields of package.json the collector consumes.
type packageJSON struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	License string `json:"license"`
}

// Collect enumerates the pnpm dependency graph and returns one record per
// unique (name, version) pair. If the project has no pnpm lockfile the
// collector returns no records: a Rust-only project is a normal case, not
// a failure.
func (p *Pnpm) Collect(ctx context.Context) ([]model.DependencyRecord, error) {
	if _, err := os.Stat(filepath.Join(p.dir, pnpmLockFile)); os.IsNotExist(err) {
		p.logger.Info("skipping pnpm packages because lockfile not found", "dir", p.dir)
		return nil, nil
	}

	out, err := p.run(ctx, p.dir, "pnpm", "list", "--json")
	if err != nil {
		return nil, fmt.Errorf("pnpm: %w", err)
	}

	var items []pnpmListItem
	if err := json.Unmarshal(out, &items); err != nil {
		return nil, &ParseError{
			Ecosystem: model.EcosystemPnpm,
			File:      "pnpm list output",
			Err:       err,
		}
	}

	merged := make(map[string]*model.DependencyRecord)
	for _, item := range items {
		for _, deps := range []map[string]pnpmListDep{item.Dependencies, item.DevDependencies} {
			for _, dep := range deps {
				record, err := p.toRecord(dep.Path)
				if err != nil {
					return nil, err
				}

				key := record.Name + "@" + record.Version
				if existing, ok := merged[key]; ok {
					existing.Licenses = mergeSorted(existing.Licenses, record.Licenses)
					continue
				}
				merged[key] = &record
			}
		}
	}

	records := make([]model.DependencyRecord, 0, len(merged))
	for _, r := range merged {
		records = append(records, *r)
	}
	model.SortRecords(records)

	p.logger.Debug("pnpm collection complete", "packages", len(records))
	return records, nil
}

// toRecord reads a dependency's package.json and converts it into a
// dependency record, including harvested copyright notices from the
// install directory.
func (p *Pnpm) toRecord(pkgDir string) (model.DependencyRecord, error) {
	manifestPath := filepath.Join(pkgDir, "package.json")
	data, err := os.ReadFile(manifestPath) //nolint:gosec // Path comes from pnpm list output
	if err != nil {
		return model.DependencyRecord{}, fmt.Errorf("pnpm: reading %s: %w", manifestPath, err)
	}

	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return model.DependencyRecord{}, &ParseError{
			Ecosystem: model.EcosystemPnpm,
			File:      manifestPath,
			Err:       err,
		}
	}

	notices, err := harvestNotices(pkgDir)
	if err != nil {
		return model.DependencyRecord{}, fmt.Errorf("pnpm: package %s: %w", pkg.Name, err)
	}

	return model.DependencyRecord{
		Name:       pkg.Name,
		Version:    pkg.Version,
		Licenses:   license.Split(pkg.License),
		Source:     model.EcosystemPnpm,
		PackageURL: fmt.Sprintf("https://www.npmjs.com/package/%s/v/%s", pkg.Name, pkg.Version),
		Notices:    notices,
	}, nil
}
