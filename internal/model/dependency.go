package model

import (
	"fmt"
	"slices"
	"strings"
)

// Ecosystem identifies the package manager a dependency was collected from.
// Each collector stamps its own ecosystem on every record it produces, so
// the same package appearing in both ecosystems stays independently
// attributable in the final report.
type Ecosystem string

const (
	// EcosystemCargo is the Rust package manager (crates.io registry).
	EcosystemCargo Ecosystem = "cargo"

	// EcosystemPnpm is the pnpm JavaScript package manager (npm registry).
	EcosystemPnpm Ecosystem = "pnpm"
)

// Valid reports whether the ecosystem is one of the known values.
func (e Ecosystem) Valid() bool {
	switch e {
	case EcosystemCargo, EcosystemPnpm:
		return true
	}
	return false
}

// String returns the ecosystem name.
func (e Ecosystem) String() string {
	return string(e)
}

// DependencyRecord is one third-party dependency as reported by a collector.
// Records are immutable after collection and unique per
// (Name, Version, Source) triple. The license validator consumes these
// records; it never mutates them.
type DependencyRecord struct {
	// Name is the package name as declared in the ecosystem's registry.
	Name string `json:"name"`

	// Version is the resolved package version.
	Version string `json:"version"`

	// Licenses holds the individual license identifiers declared by the
	// package, split out of any SPDX expression, sorted and deduplicated.
	// An empty slice means the package declared no license at all; the
	// validator treats such records as violations.
	Licenses []string `json:"licenses"`

	// Source is the ecosystem the record was collected from.
	Source Ecosystem `json:"source"`

	// PackageURL points at the package's registry page
	// (crates.io or npmjs.com), or the raw source string for
	// non-registry packages such as git dependencies.
	PackageURL string `json:"package_url,omitempty"`

	// Notices holds copyright statements and NOTICE file contents
	// harvested from the package's installed directory, sorted.
	Notices []string `json:"notices,omitempty"`
}

// Key returns the identity triple used to distinguish records.
func (d DependencyRecord) Key() string {
	return fmt.Sprintf("%s@%s (%s)", d.Name, d.Version, d.Source)
}

// LicenseText returns the declared license identifiers joined for display,
// or "none" when the package declared no license.
func (d DependencyRecord) LicenseText() string {
	if len(d.Licenses) == 0 {
		return "none"
	}
	return strings.Join(d.Licenses, ", ")
}

// Compare orders records by name, then version, then source.
// The source tie-breaker gives cross-ecosystem duplicates a total order
// so report output is deterministic.
func (d DependencyRecord) Compare(other DependencyRecord) int {
	if c := strings.Compare(d.Name, other.Name); c != 0 {
		return c
	}
	if c := strings.Compare(d.Version, other.Version); c != 0 {
		return c
	}
	return strings.Compare(string(d.Source), string(other.Source))
}

// SortRecords sorts records in place by name, version, then source.
func SortRecords(records []DependencyRecord) {
	slices.SortFunc(records, DependencyRecord.Compare)
}
