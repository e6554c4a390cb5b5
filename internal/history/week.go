package history

import "time"

// WeekStart returns the Monday at 00:00:00 UTC of the ISO week containing t.
// Both aggregators share this helper so Git and SVN pipelines bucket commits
// identically.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()

	// time.Weekday numbers Sunday as 0; ISO weekday numbers Monday as 1
	// through Sunday as 7.
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}

	monday := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekEnd returns the Sunday at 23:59:59 UTC of the ISO week whose Monday is
// weekStart.
func WeekEnd(weekStart time.Time) time.Time {
	end := time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 23, 59, 59, 0, time.UTC)
	return end.AddDate(0, 0, 6)
}

// groupByWeek buckets commits by their ISO week start.
func groupByWeek(commits []Commit) map[time.Time][]Commit {
	byWeek := make(map[time.Time][]Commit)
	for _, c := range commits {
		key := WeekStart(c.When)
		byWeek[key] = append(byWeek[key], c)
	}
	return byWeek
}
