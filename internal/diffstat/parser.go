// Package diffstat parses unified diffs into line-change counts and batches
// diff fetches through the revision cache.
package diffstat

import "strings"

// Stats holds line-change counts extracted from a unified diff.
type Stats struct {
	LinesAdded   int
	LinesDeleted int
}

// Total returns the combined churn (added + deleted).
func (s Stats) Total() int {
	return s.LinesAdded + s.LinesDeleted
}

// Parse counts added and deleted content lines in unified diff text.
//
// File header lines ("---" and "+++") are excluded even though they begin
// with the same markers as content lines. Property-change sections, which
// describe metadata rather than content, are suppressed until the next
// "Index:" or "@@" line. The parser is total: empty input yields zero
// counts, and a blob covering several files sums across all of them.
func Parse(diff string) Stats {
	if diff == "" {
		return Stats{}
	}

	var stats Stats
	inPropertySection := false

	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "Property changes on:") {
			inPropertySection = true
			continue
		}

		// A new file index or hunk header ends a property section.
		if strings.HasPrefix(line, "Index:") || strings.HasPrefix(line, "@@") {
			inPropertySection = false
		}

		if inPropertySection {
			continue
		}

		if strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "+"):
			stats.LinesAdded++
		case strings.HasPrefix(line, "-"):
			stats.LinesDeleted++
		}
	}

	return stats
}
