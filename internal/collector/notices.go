package collector

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
)

// copyrightFileRE matches file names likely to contain copyright
// statements: license texts, COPYING files, readmes, and NOTICE files.
var copyrightFileRE = regexp.MustCompile(`(?i)^(license.*|copying.*|readme.*|copyright.*|notice.*)$`)

// copyrightRE matches copyright statement lines such as
// "Copyright (c) 2015 Jane Doe" or "Copyright © 2015 Jane Doe".
var copyrightRE = regexp.MustCompile(`(?im)copyright.*(©|\(c\)).*$`)

// notCopyrightRE rules out license boilerplate that merely describes how
// to fill in a copyright line ("Copyright (c) <year> <copyright holder>").
var notCopyrightRE = regexp.MustCompile(`(?i)(year|notice|holder|owner|interest|yyyy)`)

// harvestNotices collects copyright attributions from a package's
// installed directory. The full contents of a NOTICE file are kept
// verbatim, as Apache-2.0 requires; for other candidate files only the
// individual copyright statement lines are extracted.
//
// A missing directory yields no notices rather than an error: registry
// caches are occasionally pruned and attributions are best-effort
// supplements, not validation inputs.
func harvestNotices(dir string) ([]string, error) {
	set := make(map[string]struct{})

	noticePath := filepath.Join(dir, "NOTICE")
	if data, err := os.ReadFile(noticePath); err == nil { //nolint:gosec // Path derives from package-manager metadata
		set[string(data)] = struct{}{}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", noticePath, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning %s for notices: %w", dir, err)
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() || !copyrightFileRE.MatchString(entry.Name()) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name())) //nolint:gosec // Path derives from package-manager metadata
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", filepath.Join(dir, entry.Name()), err)
		}

		for _, m := range copyrightRE.FindAllString(string(data), -1) {
			if !notCopyrightRE.MatchString(m) {
				set[m] = struct{}{}
			}
		}
	}

	notices := make([]string, 0, len(set))
	for n := range set {
		notices = append(notices, n)
	}
	slices.Sort(notices)
	return notices, nil
}
