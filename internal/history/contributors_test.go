package history

import (
	"testing"
	"time"
)

func propsCommit(when time.Time, names ...string) Commit {
	return Commit{Author: "committer", When: when, Props: names}
}

func TestContributorTracker_FirstAndLatest(t *testing.T) {
	cutoff := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	commits := []Commit{
		propsCommit(time.Date(2020, 3, 2, 10, 0, 0, 0, time.UTC), "alice"),
		propsCommit(time.Date(2022, 7, 14, 10, 0, 0, 0, time.UTC), "alice", "bob"),
		propsCommit(time.Date(2024, 11, 1, 10, 0, 0, 0, time.UTC), "alice"),
	}

	stats := NewContributorTracker().Track(commits, cutoff)

	alice, ok := stats["alice"]
	if !ok {
		t.Fatal("alice missing from tracked contributors")
	}
	if !alice.FirstSeen.Equal(commits[0].When) {
		t.Errorf("alice first seen = %v, expected %v", alice.FirstSeen, commits[0].When)
	}
	if !alice.LatestSeen.Equal(commits[2].When) {
		t.Errorf("alice latest seen = %v, expected %v", alice.LatestSeen, commits[2].When)
	}
	if alice.TotalAttributed != 3 {
		t.Errorf("alice attributed = %d, expected 3", alice.TotalAttributed)
	}

	bob := stats["bob"]
	if bob.TotalAttributed != 1 {
		t.Errorf("bob attributed = %d, expected 1", bob.TotalAttributed)
	}
	if !bob.FirstSeen.Equal(bob.LatestSeen) {
		t.Errorf("bob first/latest differ: %v vs %v", bob.FirstSeen, bob.LatestSeen)
	}
}

func TestContributorTracker_CutoffExcludesLaterCommits(t *testing.T) {
	cutoff := time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)
	commits := []Commit{
		propsCommit(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "alice"),
		propsCommit(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), "alice", "newcomer"),
	}

	stats := NewContributorTracker().Track(commits, cutoff)

	if stats["alice"].TotalAttributed != 1 {
		t.Errorf("alice attributed = %d, expected 1 (post-cutoff commit dropped)", stats["alice"].TotalAttributed)
	}
	if _, ok := stats["newcomer"]; ok {
		t.Error("contributor first seen after cutoff must not be tracked")
	}
}

func TestContributorTracker_OrderIndependence(t *testing.T) {
	cutoff := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	early := propsCommit(time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC), "x")
	late := propsCommit(time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), "x")

	tracker := NewContributorTracker()
	forward := tracker.Track([]Commit{early, late}, cutoff)
	reversed := tracker.Track([]Commit{late, early}, cutoff)

	if !forward["x"].FirstSeen.Equal(reversed["x"].FirstSeen) ||
		!forward["x"].LatestSeen.Equal(reversed["x"].LatestSeen) {
		t.Errorf("tracking depends on commit order: %+v vs %+v", forward["x"], reversed["x"])
	}
}

func TestContributorStats_LifetimeDays(t *testing.T) {
	tests := []struct {
		name     string
		first    time.Time
		latest   time.Time
		expected int
	}{
		{
			name:     "single appearance",
			first:    time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			latest:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			expected: 0,
		},
		{
			name:     "ten days apart",
			first:    time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			latest:   time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC),
			expected: 10,
		},
		{
			name:     "partial day truncates",
			first:    time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC),
			latest:   time.Date(2024, 3, 2, 1, 0, 0, 0, time.UTC),
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ContributorStats{FirstSeen: tt.first, LatestSeen: tt.latest}
			if got := s.LifetimeDays(); got != tt.expected {
				t.Errorf("LifetimeDays() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestContributorTracker_EmptyInput(t *testing.T) {
	stats := NewContributorTracker().Track(nil, time.Now())
	if len(stats) != 0 {
		t.Errorf("expected empty map, got %d entries", len(stats))
	}
}
