package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/nao1215/noticegen/internal/license"
	"github.com/nao1215/noticegen/internal/model"
)

// cratesIOSource is the source string cargo reports for packages fetched
// from the crates.io registry.
const cratesIOSource = "registry+https://github.com/rust-lang/crates.io-index"

// Cargo collects dependency metadata from a Rust workspace via
// `cargo metadata`. Local workspace members (packages without a source)
// are excluded: only third-party dependencies need notices.
type Cargo struct {
	// dir is the project directory containing Cargo.toml.
	dir string

	// run executes external commands; injectable for tests.
	run CommandRunner

	// logger for structured logging.
	logger *slog.Logger
}

// CargoOption configures a Cargo collector.
type CargoOption func(*Cargo)

// WithCargoRunner substitutes the command runner. Used by tests to feed
// canned `cargo metadata` output.
func WithCargoRunner(run CommandRunner) CargoOption {
	return func(c *Cargo) {
		c.run = run
	}
}

// WithCargoLogger sets a custom logger.
func WithCargoLogger(logger *slog.Logger) CargoOption {
	return func(c *Cargo) {
		c.logger = logger
	}
}

// NewCargo creates a Cargo collector for the given project directory.
func NewCargo(dir string, opts ...CargoOption) *Cargo {
	c := &Cargo{
		dir:    dir,
		run:    ExecRunner,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the collector's ecosystem name.
func (c *Cargo) Name() string {
	return string(model.EcosystemCargo)
}

// cargoMetadata mirrors the parts of `cargo metadata --format-version 1`
// output that the collector consumes.
type cargoMetadata struct {
	Packages []cargoPackage `json:"packages"`
}

// cargoPackage is one package entry in the cargo metadata output.
type cargoPackage struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	License      string   `json:"license"`
	Source       string   `json:"source"`
	ManifestPath string   `json:"manifest_path"`
	Authors      []string `json:"authors"`
}

// Collect enumerates the Cargo dependency graph and returns one record
// per unique (name, version) pair. Duplicate entries (the same crate
// reachable through several features) are merged, with license sets
// unioned.
func (c *Cargo) Collect(ctx context.Context) ([]model.DependencyRecord, error) {
	out, err := c.run(ctx, c.dir, "cargo", "metadata", "--format-version", "1")
	if err != nil {
		return nil, fmt.Errorf("cargo: %w", err)
	}

	var metadata cargoMetadata
	if err := json.Unmarshal(out, &metadata); err != nil {
		return nil, &ParseError{
			Ecosystem: model.EcosystemCargo,
			File:      "cargo metadata output",
			Err:       err,
		}
	}

	merged := make(map[string]*model.DependencyRecord)
	for _, pkg := range metadata.Packages {
		// Packages without a source are local workspace members.
		if pkg.Source == "" {
			c.logger.Debug("skipping local package", "name", pkg.Name)
			continue
		}

		record, err := c.toRecord(pkg)
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

	records := make([]model.DependencyRecord, 0, len(merged))
	for _, r := range merged {
		records = append(records, *r)
	}
	model.SortRecords(records)

	c.logger.Debug("cargo collection complete", "packages", len(records))
	return records, nil
}

// toRecord converts one cargo package into a dependency record, including
// harvested copyright notices from the crate's source directory.
func (c *Cargo) toRecord(pkg cargoPackage) (model.DependencyRecord, error) {
	packageURL := pkg.Source
	if pkg.Source == cratesIOSource {
		packageURL = fmt.Sprintf("https://crates.io/crates/%s/%s", pkg.Name, pkg.Version)
	}

	notices, err := harvestNotices(filepath.Dir(pkg.ManifestPath))
	if err != nil {
		return model.DependencyRecord{}, fmt.Errorf("cargo: package %s: %w", pkg.Name, err)
	}
	if len(pkg.Authors) > 0 {
		notices = mergeSorted(notices, []string{"Authors: " + strings.Join(pkg.Authors, ", ")})
	}

	return model.DependencyRecord{
		Name:       pkg.Name,
		Version:    pkg.Version,
		Licenses:   license.Split(pkg.License),
		Source:     model.EcosystemCargo,
		PackageURL: packageURL,
		Notices:    notices,
	}, nil
}

// mergeSorted unions two sorted string slices into a sorted, deduplicated
// result.
func mergeSorted(a, b []string) []string {
	set := make(map[string]struct{}, len(a)+len(b))
	for _, s := range a {
		set[s] = struct{}{}
	}
	for _, s := range b {
		set[s] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}
