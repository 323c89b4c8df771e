package audit

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/nao1215/noticegen/internal/model"
)

// Validate checks every dependency record against the allow-list and
// returns exactly one of a notice report or a non-empty violation list.
//
// Rules:
//   - Records whose name is in ignorePackages are excluded entirely.
//     Matching is exact on name and version-agnostic.
//   - A record violates when its license set contains an identifier
//     missing from allowedLicenses. An empty allow-list allows nothing:
//     every non-ignored record then violates.
//   - A record with no declared license is a violation with an empty
//     offending set; it can never pass the check.
//   - Records from different ecosystems are never merged, so each
//     ecosystem's declaration stays independently attributable.
//
// Output ordering is fixed (name, version, source ascending) for both the
// report entries and the violation list, so permuting the input produces
// identical results.
func Validate(records []model.DependencyRecord, allowedLicenses, ignorePackages []string, generatedAt time.Time) (*model.NoticeReport, []model.Violation) {
	allowed := make(map[string]struct{}, len(allowedLicenses))
	for _, l := range allowedLicenses {
		allowed[l] = struct{}{}
	}
	ignored := make(map[string]struct{}, len(ignorePackages))
	for _, p := range ignorePackages {
		ignored[p] = struct{}{}
	}

	var passed []model.DependencyRecord
	var violations []model.Violation

	for _, record := range records {
		if _, ok := ignored[record.Name]; ok {
			continue
		}

		offending := offendingLicenses(record.Licenses, allowed)
		if len(record.Licenses) == 0 || len(offending) > 0 {
			violations = append(violations, model.Violation{
				Package:           record.Name,
				Version:           record.Version,
				Source:            record.Source,
				OffendingLicenses: offending,
			})
			continue
		}

		passed = append(passed, record)
	}

	if len(violations) > 0 {
		model.SortViolations(violations)
		return nil, violations
	}

	return model.NewNoticeReport(passed, generatedAt), nil
}

// offendingLicenses returns the sorted identifiers in licenses that are
// not present in the allow-list.
func offendingLicenses(licenses []string, allowed map[string]struct{}) []string {
	var offending []string
	for _, l := range licenses {
		if _, ok := allowed[l]; !ok {
			offending = append(offending, l)
		}
	}
	slices.Sort(offending)
	return slices.Compact(offending)
}

// ViolationError carries a non-empty violation list across the error
// boundary between the validator and the CLI. The CLI prints the complete
// list so a user can fix every problem in one pass.
type ViolationError struct {
	// Violations is the complete, sorted violation list.
	Violations []model.Violation
}

// Error implements the error interface with a one-line summary.
func (e *ViolationError) Error() string {
	return fmt.Sprintf("license validation failed: %d package(s) with disallowed or missing licenses", len(e.Violations))
}

// Detail renders the full violation list, one line per violation.
func (e *ViolationError) Detail() string {
	var b strings.Builder
	for _, v := range e.Violations {
		b.WriteString("  ")
		b.WriteString(v.String())
		b.WriteString("\n")
	}
	return b.String()
}
