package modinfo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Discover enumerates the repository root's immediate child directories and
// loads a Descriptor from each one carrying an info.json. Children are
// visited in sorted name order so results are deterministic. Directories
// without an info.json are not mods and are skipped silently; directories
// whose info.json fails to parse are recorded in the report's Malformed list.
//
// If nameFilter is non-empty, only the mod with that exact name (or directory
// name) is returned and the Malformed list is narrowed the same way. A filter
// that hits only a malformed directory yields that MalformedDescriptorError;
// a filter that matches nothing at all yields ErrNoMatchingMod.
func Discover(root, nameFilter string) (*ScanReport, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotARepository, root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading repository root %s: %w", root, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	report := &ScanReport{}
	for _, name := range names {
		dir := filepath.Join(root, name)
		if _, err := os.Stat(filepath.Join(dir, InfoFileName)); err != nil {
			continue // not a mod
		}

		d, err := Load(dir)
		if err != nil {
			report.Malformed = append(report.Malformed, &MalformedDescriptorError{Dir: dir, Err: err})
			continue
		}
		report.Descriptors = append(report.Descriptors, *d)
	}

	if nameFilter != "" {
		var matched []Descriptor
		for _, d := range report.Descriptors {
			if d.Name == nameFilter || filepath.Base(d.SourceDir) == nameFilter {
				matched = append(matched, d)
			}
		}
		// Malformed entries have no parsed name, so they match by directory
		// only. Unrelated malformed mods are dropped from a filtered report.
		var matchedMalformed []*MalformedDescriptorError
		for _, m := range report.Malformed {
			if filepath.Base(m.Dir) == nameFilter {
				matchedMalformed = append(matchedMalformed, m)
			}
		}
		if len(matched) == 0 {
			// The filter hit a directory whose info.json failed to parse.
			// That is the real problem, not "no such mod".
			if len(matchedMalformed) > 0 {
				return nil, matchedMalformed[0]
			}
			return nil, fmt.Errorf("%w: %q", ErrNoMatchingMod, nameFilter)
		}
		report.Descriptors = matched
		report.Malformed = matchedMalformed
	}

	return report, nil
}
