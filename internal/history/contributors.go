package history

import "time"

// ContributorTracker computes per-contributor lifetime statistics from
// attribution lists on commits.
type ContributorTracker struct{}

// NewContributorTracker creates a new contributor tracker.
func NewContributorTracker() *ContributorTracker {
	return &ContributorTracker{}
}

// Track returns lifetime statistics per contributor identity, considering
// only commits at or before cutoff. Commits after the cutoff neither start a
// new contributor's clock nor extend an existing one.
func (t *ContributorTracker) Track(commits []Commit, cutoff time.Time) map[string]ContributorStats {
	if len(commits) == 0 {
		return map[string]ContributorStats{}
	}

	stats := make(map[string]ContributorStats)

	for _, c := range commits {
		if c.When.After(cutoff) {
			continue
		}

		for _, name := range c.Props {
			s, ok := stats[name]
			if !ok {
				stats[name] = ContributorStats{
					Name:            name,
					FirstSeen:       c.When,
					LatestSeen:      c.When,
					TotalAttributed: 1,
				}
				continue
			}

			if c.When.Before(s.FirstSeen) {
				s.FirstSeen = c.When
			}
			if c.When.After(s.LatestSeen) {
				s.LatestSeen = c.When
			}
			s.TotalAttributed++
			stats[name] = s
		}
	}

	return stats
}
