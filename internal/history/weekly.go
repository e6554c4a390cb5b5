package history

import (
	"sort"
	"time"
)

// WeeklyAggregator groups commits into ISO-week buckets and computes
// per-week statistics.
type WeeklyAggregator struct{}

// NewWeeklyAggregator creates a new weekly aggregator.
func NewWeeklyAggregator() *WeeklyAggregator {
	return &WeeklyAggregator{}
}

// Aggregate groups commits by ISO week and computes one aggregate per week
// that contains at least one commit. The result is sorted by week start
// ascending. The function is total: it never fails, and empty input yields
// an empty result.
func (a *WeeklyAggregator) Aggregate(commits []Commit) []WeeklyAggregate {
	if len(commits) == 0 {
		return nil
	}

	byWeek := groupByWeek(commits)

	aggregates := make([]WeeklyAggregate, 0, len(byWeek))
	for weekStart, weekCommits := range byWeek {
		aggregates = append(aggregates, buildWeekAggregate(weekStart, weekCommits))
	}

	sort.Slice(aggregates, func(i, j int) bool {
		return aggregates[i].WeekStart.Before(aggregates[j].WeekStart)
	})

	return aggregates
}

func buildWeekAggregate(weekStart time.Time, commits []Commit) WeeklyAggregate {
	authors := make(map[string]struct{})
	contributors := make(map[string]struct{})
	versions := make(map[string]struct{})
	var added, deleted int

	for _, c := range commits {
		authors[c.Author] = struct{}{}
		added += c.LinesAdded
		deleted += c.LinesDeleted
		if c.Version != "" {
			versions[c.Version] = struct{}{}
		}
		for _, p := range c.Props {
			contributors[p] = struct{}{}
		}
	}

	return WeeklyAggregate{
		WeekStart:          weekStart,
		TotalCommits:       len(commits),
		UniqueAuthors:      len(authors),
		UniqueContributors: len(contributors),
		TotalLinesAdded:    added,
		TotalLinesDeleted:  deleted,
		VersionsReleased:   sortedKeys(versions),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
