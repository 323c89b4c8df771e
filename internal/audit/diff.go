package audit

import (
	"slices"

	"github.com/nao1215/noticegen/internal/model"
)

// RunDiff describes how a project's third-party surface changed between
// two validated runs.
type RunDiff struct {
	// Added holds dependencies present in the new run but not the old,
	// sorted.
	Added []model.DependencyRecord `json:"added"`

	// Removed holds dependencies present in the old run but not the new,
	// sorted.
	Removed []model.DependencyRecord `json:"removed"`

	// LicenseChanges holds dependencies present in both runs (matched by
	// name and ecosystem) whose declared license set changed.
	LicenseChanges []LicenseChange `json:"license_changes"`
}

// LicenseChange records a license difference for one dependency that
// survived between two runs.
type LicenseChange struct {
	// Name is the package name.
	Name string `json:"name"`

	// Source is the package's ecosystem.
	Source model.Ecosystem `json:"source"`

	// OldVersion and NewVersion are the versions in each run.
	OldVersion string `json:"old_version"`
	NewVersion string `json:"new_version"`

	// OldLicenses and NewLicenses are the declared license sets in each
	// run.
	OldLicenses []string `json:"old_licenses"`
	NewLicenses []string `json:"new_licenses"`
}

// Empty reports whether the diff contains no changes.
func (d *RunDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.LicenseChanges) == 0
}

// DiffRuns compares two sets of validated dependency records.
//
// Identity for added/removed is the full (name, version, source) triple:
// a version bump shows up as one removal plus one addition. License
// changes are additionally reported per (name, source) pair so a bump
// that swaps licenses is called out explicitly.
func DiffRuns(oldEntries, newEntries []model.DependencyRecord) *RunDiff {
	diff := &RunDiff{}

	oldByKey := make(map[string]model.DependencyRecord, len(oldEntries))
	for _, r := range oldEntries {
		oldByKey[r.Key()] = r
	}
	newByKey := make(map[string]model.DependencyRecord, len(newEntries))
	for _, r := range newEntries {
		newByKey[r.Key()] = r
	}

	for _, r := range newEntries {
		if _, ok := oldByKey[r.Key()]; !ok {
			diff.Added = append(diff.Added, r)
		}
	}
	for _, r := range oldEntries {
		if _, ok := newByKey[r.Key()]; !ok {
			diff.Removed = append(diff.Removed, r)
		}
	}
	model.SortRecords(diff.Added)
	model.SortRecords(diff.Removed)

	// License changes are matched by (name, source) so they survive
	// version bumps. When a run contains several versions of the same
	// package, the lexically last one wins; the added/removed lists
	// already show the full picture.
	oldByName := make(map[string]model.DependencyRecord, len(oldEntries))
	for _, r := range sortedCopy(oldEntries) {
		oldByName[r.Name+"|"+string(r.Source)] = r
	}
	for _, r := range sortedCopy(newEntries) {
		old, ok := oldByName[r.Name+"|"+string(r.Source)]
		if !ok {
			continue
		}
		if slices.Equal(old.Licenses, r.Licenses) {
			continue
		}
		diff.LicenseChanges = append(diff.LicenseChanges, LicenseChange{
			Name:        r.Name,
			Source:      r.Source,
			OldVersion:  old.Version,
			NewVersion:  r.Version,
			OldLicenses: old.Licenses,
			NewLicenses: r.Licenses,
		})
	}

	return diff
}

// sortedCopy returns the records sorted without mutating the input.
func sortedCopy(records []model.DependencyRecord) []model.DependencyRecord {
	c := slices.Clone(records)
	model.SortRecords(c)
	return c
}
