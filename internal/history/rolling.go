package history

// DefaultWindowWeeks is the span of the rolling window in weeks.
const DefaultWindowWeeks = 12

// RollingAggregator combines consecutive weekly buckets into sliding windows,
// one window anchored at each weekly bucket.
type RollingAggregator struct {
	windowWeeks int
}

// NewRollingAggregator creates a rolling aggregator with the given window
// span in weeks. Non-positive spans fall back to DefaultWindowWeeks.
func NewRollingAggregator(windowWeeks int) *RollingAggregator {
	if windowWeeks <= 0 {
		windowWeeks = DefaultWindowWeeks
	}
	return &RollingAggregator{windowWeeks: windowWeeks}
}

// Aggregate produces one rolling window per weekly bucket, spanning that
// bucket and the following windowWeeks-1 buckets (fewer near the end of the
// series). The weekly slice must already be sorted by week start, as produced
// by WeeklyAggregator.Aggregate; output mirrors its order.
//
// Numeric totals are summed from the weekly aggregates. Distinct author,
// contributor, and version sets are recomputed from the underlying commits
// of the span, so an identity active in several weeks of one window is
// counted once.
func (a *RollingAggregator) Aggregate(commits []Commit, weekly []WeeklyAggregate) []RollingWindowAggregate {
	if len(weekly) == 0 {
		return nil
	}

	byWeek := groupByWeek(commits)

	windows := make([]RollingWindowAggregate, 0, len(weekly))
	for i := range weekly {
		end := i + a.windowWeeks
		if end > len(weekly) {
			end = len(weekly)
		}
		span := weekly[i:end]

		var pool []Commit
		for _, week := range span {
			pool = append(pool, byWeek[week.WeekStart]...)
		}

		windows = append(windows, buildWindowAggregate(span, pool))
	}

	return windows
}

// buildWindowAggregate folds a span of weekly aggregates and its commit pool
// into a single window. An empty span is a caller bug, not a data condition.
func buildWindowAggregate(span []WeeklyAggregate, pool []Commit) RollingWindowAggregate {
	if len(span) == 0 {
		panic("history: window aggregate built from zero weeks")
	}

	var totalCommits, added, deleted int
	for _, week := range span {
		totalCommits += week.TotalCommits
		added += week.TotalLinesAdded
		deleted += week.TotalLinesDeleted
	}

	authors := make(map[string]struct{})
	contributors := make(map[string]struct{})
	versions := make(map[string]struct{})
	for _, c := range pool {
		authors[c.Author] = struct{}{}
		if c.Version != "" {
			versions[c.Version] = struct{}{}
		}
		for _, p := range c.Props {
			contributors[p] = struct{}{}
		}
	}

	return RollingWindowAggregate{
		WindowStart:        span[0].WeekStart,
		WindowEnd:          WeekEnd(span[len(span)-1].WeekStart),
		TotalCommits:       totalCommits,
		UniqueAuthors:      len(authors),
		UniqueContributors: len(contributors),
		TotalLinesAdded:    added,
		TotalLinesDeleted:  deleted,
		VersionsReleased:   sortedKeys(versions),
	}
}
