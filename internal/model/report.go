package model

import (
	"slices"
	"strings"
	"time"
)

// NoticeReport is the validated aggregate of all third-party dependencies.
// It exists only when every entry passed the allow-list check; a run
// produces either a NoticeReport or a non-empty violation list, never both.
type NoticeReport struct {
	// Entries holds every validated dependency, sorted by name ascending,
	// then version ascending, then source.
	Entries []DependencyRecord `json:"dependencies"`

	// Licenses is the sorted set of license identifiers used by at least
	// one entry. Renderers use it for the per-license sections.
	Licenses []string `json:"licenses"`

	// GeneratedAt is the report creation time.
	GeneratedAt time.Time `json:"generated_at"`
}

// NewNoticeReport builds a report from validated records.
// Records are sorted and the license set is derived here so every
// renderer sees identical ordering.
func NewNoticeReport(records []DependencyRecord, generatedAt time.Time) *NoticeReport {
	entries := slices.Clone(records)
	SortRecords(entries)

	licenseSet := make(map[string]struct{})
	for _, r := range entries {
		for _, l := range r.Licenses {
			licenseSet[l] = struct{}{}
		}
	}
	licenses := make([]string, 0, len(licenseSet))
	for l := range licenseSet {
		licenses = append(licenses, l)
	}
	slices.Sort(licenses)

	return &NoticeReport{
		Entries:     entries,
		Licenses:    licenses,
		GeneratedAt: generatedAt,
	}
}

// CountBySource returns the number of entries per ecosystem.
func (r *NoticeReport) CountBySource() map[Ecosystem]int {
	counts := make(map[Ecosystem]int)
	for _, e := range r.Entries {
		counts[e.Source]++
	}
	return counts
}

// Violation is a dependency whose declared licenses are not covered by the
// allow-list and which is not ignored. OffendingLicenses is empty when the
// package declared no license at all; such packages can never pass.
type Violation struct {
	// Package is the offending package name.
	Package string `json:"package"`

	// Version is the offending package version.
	Version string `json:"version"`

	// Source is the ecosystem the package was collected from.
	Source Ecosystem `json:"source"`

	// OffendingLicenses holds the declared identifiers that are missing
	// from the allow-list, sorted. Empty means no license was declared.
	OffendingLicenses []string `json:"offending_licenses"`
}

// String renders the violation as a single human-readable line.
func (v Violation) String() string {
	offending := "no license declared"
	if len(v.OffendingLicenses) > 0 {
		offending = "not allowed: " + strings.Join(v.OffendingLicenses, ", ")
	}
	return v.Package + "@" + v.Version + " (" + string(v.Source) + "): " + offending
}

// SortViolations sorts violations in place by package, version, then source
// so CI output is reproducible regardless of collection order.
func SortViolations(violations []Violation) {
	slices.SortFunc(violations, func(a, b Violation) int {
		if c := strings.Compare(a.Package, b.Package); c != 0 {
			return c
		}
		if c := strings.Compare(a.Version, b.Version); c != 0 {
			return c
		}
		return strings.Compare(string(a.Source), string(b.Source))
	})
}

// Audit carries the state of one noticegen run through the pipeline.
// Collectors append records, the validator fills in either Report or
// Violations, and renderers consume Report. The struct is owned by a
// single run and discarded afterwards.
type Audit struct {
	// ProjectDir is the directory the collectors operate in.
	ProjectDir string

	// Records is the merged output of all collectors, in collection order.
	Records []DependencyRecord

	// Report is the validated aggregate, nil until validation succeeds.
	Report *NoticeReport

	// Violations is non-empty only when validation failed.
	Violations []Violation

	// StartedAt is when the run began.
	StartedAt time.Time
}

// NewAudit creates the run state for the given project directory.
func NewAudit(projectDir string) *Audit {
	return &Audit{
		ProjectDir: projectDir,
		StartedAt:  time.Now(),
	}
}
