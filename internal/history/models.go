package history

import "time"

// Commit represents minimal metadata about a single revision, independent of
// whether it came from Git or Subversion. Git commits carry a Hash; SVN
// commits carry a Revision number. Fields that only one backend can supply
// (Version for Git tags, Props for SVN attribution lines) are left at their
// zero values by the other backend.
type Commit struct {
	Hash     string
	Revision int
	Author   string
	When     time.Time
	Message  string

	// LinesAdded and LinesDeleted are only meaningful when HasLineStats is
	// true. SVN commits start without line stats and are enriched later by
	// the diff fetcher; unset stats sum as zero.
	LinesAdded   int
	LinesDeleted int
	HasLineStats bool

	// Version is the release tag pointing at this commit, if any.
	Version string

	// Props lists contributor identities credited in the commit message.
	Props []string
}

// Churn returns total lines changed (added + deleted).
func (c Commit) Churn() int {
	return c.LinesAdded + c.LinesDeleted
}

// WeeklyAggregate holds commit statistics for one ISO week. A bucket exists
// only for weeks that contain at least one commit.
type WeeklyAggregate struct {
	WeekStart          time.Time
	TotalCommits       int
	UniqueAuthors      int
	UniqueContributors int
	TotalLinesAdded    int
	TotalLinesDeleted  int
	VersionsReleased   []string
}

// RollingWindowAggregate holds statistics for a span of up to WindowWeeks
// consecutive weekly buckets, anchored at WindowStart.
type RollingWindowAggregate struct {
	WindowStart        time.Time
	WindowEnd          time.Time
	TotalCommits       int
	UniqueAuthors      int
	UniqueContributors int
	TotalLinesAdded    int
	TotalLinesDeleted  int
	VersionsReleased   []string
}

// ContributorStats tracks lifetime attribution metrics for one contributor.
type ContributorStats struct {
	Name            string
	FirstSeen       time.Time
	LatestSeen      time.Time
	TotalAttributed int
}

// LifetimeDays returns the contributor lifetime in whole days. A contributor
// attributed only once has a lifetime of zero.
func (s ContributorStats) LifetimeDays() int {
	return int(s.LatestSeen.Sub(s.FirstSeen).Hours() / 24)
}
