package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/gelbal/repo-history-analyze/config"
	"github.com/gelbal/repo-history-analyze/internal/diffstat"
	"github.com/gelbal/repo-history-analyze/internal/history"
	"github.com/gelbal/repo-history-analyze/internal/output"
	"github.com/gelbal/repo-history-analyze/internal/svn"
)

// SVNCmd returns the svn analysis command.
func SVNCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{
			Name:  "svn-url",
			Usage: "SVN repository URL (default: from config)",
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "Maximum number of revisions to fetch (0 = no limit)",
		},
		&cli.BoolFlag{
			Name:  "fetch-diffs",
			Usage: "Fetch diffs to calculate line changes per commit",
		},
		&cli.BoolFlag{
			Name:  "save-cache",
			Usage: "Persist the diff cache after fetching",
			Value: true,
		},
		&cli.StringFlag{
			Name:  "cache-dir",
			Usage: "Cache directory for diff stats",
		},
		&cli.StringFlag{
			Name:  "cache-backend",
			Usage: "Diff cache backend (json, bolt)",
		},
		&cli.IntFlag{
			Name:    "parallel",
			Aliases: []string{"p"},
			Usage:   "Number of parallel workers for diff fetching",
		},
	)

	return &cli.Command{
		Name:    "svn",
		Aliases: []string{"s"},
		Usage:   "Analyze SVN repository history with Props contributor tracking",
		Flags:   flags,
		Action:  svnAction,
	}
}

func svnAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	since, err := parseDateFlag(c.String("since"))
	if err != nil {
		return err
	}
	to, err := parseDateFlag(c.String("to"))
	if err != nil {
		return err
	}

	url := cfg.SVN.URL
	if v := c.String("svn-url"); v != "" {
		url = v
	}

	client := svn.NewClient(url, time.Duration(cfg.Diffs.TimeoutSeconds)*time.Second)
	if !client.Available() {
		return fmt.Errorf("svn command not found; install Subversion to use this pipeline")
	}

	log := logrus.WithField("url", client.URL())
	log.Info("fetching svn log")

	xmlContent, err := client.FetchLogXML(c.Context, since, to, c.Int("limit"))
	if err != nil {
		return err
	}

	commits, err := svn.ParseLog(xmlContent)
	if err != nil {
		return err
	}
	if len(commits) == 0 {
		fmt.Println("No commits found in the specified range.")
		return nil
	}
	log.WithField("commits", len(commits)).Info("log fetched")

	if c.Bool("fetch-diffs") {
		commits, err = enrichWithDiffs(c, cfg, client, commits)
		if err != nil {
			return err
		}
	}

	weekly := history.NewWeeklyAggregator().Aggregate(commits)
	rolling := history.NewRollingAggregator(cfg.Aggregation.WindowWeeks).Aggregate(commits, weekly)

	cutoff := to.AddDate(0, 0, 1).Add(-time.Second)
	contributors := history.NewContributorTracker().Track(commits, cutoff)

	writer := &output.CSVWriter{}
	outDir := filepath.Join(cfg.Output.Dir, "svn")
	if err := writer.WriteCommitsByYear(commits, cfg.Output.Dir, "svn"); err != nil {
		return err
	}
	if err := writer.WriteWeekly(weekly, filepath.Join(outDir, "weekly_aggregates.csv"), true); err != nil {
		return err
	}
	if err := writer.WriteRolling(rolling, filepath.Join(outDir, "rolling_aggregates.csv"), true); err != nil {
		return err
	}
	if err := writer.WriteContributors(contributors, filepath.Join(outDir, "contributor_stats.csv")); err != nil {
		return err
	}
	log.WithField("dir", outDir).Info("CSV files written")

	output.PrintSummary("SVN history analysis", commits, weekly, rolling)
	output.PrintTopContributors(contributors, 10)
	return nil
}

// enrichWithDiffs fetches line-change stats for every revision through the
// cache and attaches them to the commit records.
func enrichWithDiffs(c *cli.Context, cfg *config.Config, client *svn.Client, commits []history.Commit) ([]history.Commit, error) {
	cache, err := newDiffCache(cfg, client.URL())
	if err != nil {
		return nil, err
	}

	revisions := make([]int, 0, len(commits))
	for _, commit := range commits {
		revisions = append(revisions, commit.Revision)
	}

	log := logrus.WithField("revisions", len(revisions))
	log.WithField("cached", cache.Size()).Info("fetching diffs")

	fetcher := diffstat.NewBatchFetcher(client, cache, logrus.StandardLogger())
	stats, err := fetcher.FetchBatch(c.Context, revisions, diffstat.BatchOptions{
		Workers:   cfg.Diffs.Workers,
		SaveCache: c.Bool("save-cache"),
		OnProgress: func(completed, total int) {
			if completed%50 == 0 || completed == total {
				logrus.Infof("diffs fetched: %d/%d", completed, total)
			}
		},
	})
	if err != nil {
		return nil, err
	}

	enriched := make([]history.Commit, len(commits))
	for i, commit := range commits {
		if s, ok := stats[commit.Revision]; ok {
			commit.LinesAdded = s.LinesAdded
			commit.LinesDeleted = s.LinesDeleted
			commit.HasLineStats = true
		}
		enriched[i] = commit
	}
	return enriched, nil
}
