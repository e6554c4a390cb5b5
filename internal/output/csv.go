// Package output serializes analysis results as CSV files and console
// summaries.
package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gelbal/repo-history-analyze/internal/history"
)

const timestampLayout = time.RFC3339

// CSVWriter writes analysis results to CSV files.
type CSVWriter struct{}

// WriteCommits writes per-commit rows to path.
func (w *CSVWriter) WriteCommits(commits []history.Commit, path string) error {
	return writeCSV(path, commitHeader(commits), func(cw *csv.Writer) error {
		for _, c := range commits {
			if err := cw.Write(commitRow(c)); err != nil {
				return err
			}
		}
		return nil
	})
}

// commitHeader picks columns depending on whether these are Git commits
// (hash, version tag) or SVN commits (revision, props).
func commitHeader(commits []history.Commit) []string {
	if isSVN(commits) {
		return []string{"revision", "author", "commit_date", "lines_added", "lines_deleted", "props"}
	}
	return []string{"hash", "author", "commit_date", "lines_added", "lines_deleted", "version"}
}

func commitRow(c history.Commit) []string {
	date := c.When.UTC().Format(timestampLayout)
	added := strconv.Itoa(c.LinesAdded)
	deleted := strconv.Itoa(c.LinesDeleted)
	if c.Hash == "" {
		return []string{strconv.Itoa(c.Revision), c.Author, date, added, deleted, strings.Join(c.Props, ";")}
	}
	return []string{c.Hash, c.Author, date, added, deleted, c.Version}
}

func isSVN(commits []history.Commit) bool {
	for _, c := range commits {
		return c.Hash == ""
	}
	return false
}

// WriteCommitsByYear writes commits into per-year folders:
// <baseDir>/<name>/<YYYY>/commits.csv.
func (w *CSVWriter) WriteCommitsByYear(commits []history.Commit, baseDir, name string) error {
	if len(commits) == 0 {
		return nil
	}

	byYear := make(map[int][]history.Commit)
	for _, c := range commits {
		year := c.When.UTC().Year()
		byYear[year] = append(byYear[year], c)
	}

	for year, yearCommits := range byYear {
		path := filepath.Join(baseDir, name, strconv.Itoa(year), "commits.csv")
		if err := w.WriteCommits(yearCommits, path); err != nil {
			return fmt.Errorf("write commits for %d: %w", year, err)
		}
	}
	return nil
}

// WriteWeekly writes weekly aggregates to path. When withContributors is
// set, the SVN pipeline's distinct-contributor column is included.
func (w *CSVWriter) WriteWeekly(aggregates []history.WeeklyAggregate, path string, withContributors bool) error {
	header := []string{"week_start", "total_commits", "unique_authors", "total_lines_added", "total_lines_deleted", "versions_released"}
	if withContributors {
		header = []string{"week_start", "total_commits", "unique_authors", "unique_props_contributors", "total_lines_added", "total_lines_deleted", "versions_released"}
	}

	return writeCSV(path, header, func(cw *csv.Writer) error {
		for _, a := range aggregates {
			row := []string{a.WeekStart.Format(timestampLayout), strconv.Itoa(a.TotalCommits), strconv.Itoa(a.UniqueAuthors)}
			if withContributors {
				row = append(row, strconv.Itoa(a.UniqueContributors))
			}
			row = append(row,
				strconv.Itoa(a.TotalLinesAdded),
				strconv.Itoa(a.TotalLinesDeleted),
				strings.Join(a.VersionsReleased, ";"),
			)
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteRolling writes rolling window aggregates to path, adding the window
// end column to the weekly layout.
func (w *CSVWriter) WriteRolling(windows []history.RollingWindowAggregate, path string, withContributors bool) error {
	header := []string{"window_start", "window_end", "total_commits", "unique_authors", "total_lines_added", "total_lines_deleted", "versions_released"}
	if withContributors {
		header = []string{"window_start", "window_end", "total_commits", "unique_authors", "unique_props_contributors", "total_lines_added", "total_lines_deleted", "versions_released"}
	}

	return writeCSV(path, header, func(cw *csv.Writer) error {
		for _, win := range windows {
			row := []string{
				win.WindowStart.Format(timestampLayout),
				win.WindowEnd.Format(timestampLayout),
				strconv.Itoa(win.TotalCommits),
				strconv.Itoa(win.UniqueAuthors),
			}
			if withContributors {
				row = append(row, strconv.Itoa(win.UniqueContributors))
			}
			row = append(row,
				strconv.Itoa(win.TotalLinesAdded),
				strconv.Itoa(win.TotalLinesDeleted),
				strings.Join(win.VersionsReleased, ";"),
			)
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteContributors writes contributor lifetime stats to path, sorted by
// total attribution count descending.
func (w *CSVWriter) WriteContributors(stats map[string]history.ContributorStats, path string) error {
	sorted := make([]history.ContributorStats, 0, len(stats))
	for _, s := range stats {
		sorted = append(sorted, s)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].TotalAttributed != sorted[j].TotalAttributed {
			return sorted[i].TotalAttributed > sorted[j].TotalAttributed
		}
		return sorted[i].Name < sorted[j].Name
	})

	header := []string{"username", "first_contribution", "latest_contribution", "total_props_count", "lifetime_days"}
	return writeCSV(path, header, func(cw *csv.Writer) error {
		for _, s := range sorted {
			row := []string{
				s.Name,
				s.FirstSeen.Format(timestampLayout),
				s.LatestSeen.Format(timestampLayout),
				strconv.Itoa(s.TotalAttributed),
				strconv.Itoa(s.LifetimeDays()),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeCSV(path string, header []string, body func(*csv.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := body(cw); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}
