package output

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/gelbal/repo-history-analyze/internal/history"
)

// PrintSummary writes a short colored run summary to stdout.
func PrintSummary(title string, commits []history.Commit, weekly []history.WeeklyAggregate, windows []history.RollingWindowAggregate) {
	color.Green(title)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Commits:\t%d\n", len(commits))
	fmt.Fprintf(tw, "Weekly buckets:\t%d\n", len(weekly))
	fmt.Fprintf(tw, "Rolling windows:\t%d\n", len(windows))
	if len(weekly) > 0 {
		fmt.Fprintf(tw, "First week:\t%s\n", weekly[0].WeekStart.Format("2006-01-02"))
		fmt.Fprintf(tw, "Last week:\t%s\n", weekly[len(weekly)-1].WeekStart.Format("2006-01-02"))
	}
	tw.Flush()
}

// PrintTopContributors writes the leading contributors to stdout.
func PrintTopContributors(stats map[string]history.ContributorStats, top int) {
	if len(stats) == 0 {
		return
	}

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
	if top > 0 && top < len(sorted) {
		sorted = sorted[:top]
	}

	color.Green("Top contributors")
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tName\tProps\tFirst\tLatest\tLifetime (days)")
	for i, s := range sorted {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%d\n",
			i+1,
			s.Name,
			s.TotalAttributed,
			s.FirstSeen.Format("2006-01-02"),
			s.LatestSeen.Format("2006-01-02"),
			s.LifetimeDays(),
		)
	}
	tw.Flush()
}
