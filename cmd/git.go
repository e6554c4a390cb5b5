package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/gelbal/repo-history-analyze/internal/gitrepo"
	"github.com/gelbal/repo-history-analyze/internal/history"
	"github.com/gelbal/repo-history-analyze/internal/output"
)

// GitCmd returns the git analysis command.
func GitCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path to a local Git repository clone",
		},
		&cli.StringFlag{
			Name:  "repo-url",
			Usage: "Git repository URL to clone when --repo does not exist yet",
		},
		&cli.StringFlag{
			Name:  "name",
			Usage: "Repository name for output organization (default: inferred from URL or path)",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Glob patterns to include (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns to exclude (can be specified multiple times)",
		},
	)

	return &cli.Command{
		Name:    "git",
		Aliases: []string{"g"},
		Usage:   "Analyze Git repository history into weekly and rolling aggregates",
		Flags:   flags,
		Action:  gitAction,
	}
}

func gitAction(c *cli.Context) error {
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
	include := cfg.Filters.Include
	if v := c.StringSlice("include"); len(v) > 0 {
		include = v
	}
	exclude := cfg.Filters.Exclude
	if v := c.StringSlice("exclude"); len(v) > 0 {
		exclude = v
	}

	repoPath := c.String("repo")
	repoURL := c.String("repo-url")
	name := c.String("name")
	if name == "" {
		name = inferRepoName(repoURL, repoPath)
	}
	if repoPath == "" {
		repoPath = filepath.Join(cfg.Diffs.CacheDir, "repos", strings.ToLower(name))
	}

	log := logrus.WithFields(logrus.Fields{"repo": name, "path": repoPath})
	log.Info("opening repository")

	endOfDay := to.AddDate(0, 0, 1)
	reader, err := gitrepo.Open(gitrepo.ReadOptions{
		RepoPath: repoPath,
		RepoURL:  repoURL,
		Since:    &since,
		Until:    &endOfDay,
		Include:  include,
		Exclude:  exclude,
	})
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	commits, err := reader.ReadCommits()
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if len(commits) == 0 {
		fmt.Println("No commits found in the specified range.")
		return nil
	}
	log.WithField("commits", len(commits)).Info("history read")

	weekly := history.NewWeeklyAggregator().Aggregate(commits)
	rolling := history.NewRollingAggregator(cfg.Aggregation.WindowWeeks).Aggregate(commits, weekly)

	writer := &output.CSVWriter{}
	outDir := filepath.Join(cfg.Output.Dir, name)
	if err := writer.WriteCommitsByYear(commits, cfg.Output.Dir, name); err != nil {
		return err
	}
	if err := writer.WriteWeekly(weekly, filepath.Join(outDir, "weekly_aggregates.csv"), false); err != nil {
		return err
	}
	if err := writer.WriteRolling(rolling, filepath.Join(outDir, "rolling_aggregates.csv"), false); err != nil {
		return err
	}
	log.WithField("dir", outDir).Info("CSV files written")

	output.PrintSummary("Git history analysis", commits, weekly, rolling)
	return nil
}

// inferRepoName extracts a repository name from its URL or local path.
func inferRepoName(repoURL, repoPath string) string {
	source := repoURL
	if source == "" {
		source = repoPath
	}
	if source == "" {
		return "repository"
	}

	source = strings.TrimRight(source, "/")
	name := source[strings.LastIndex(source, "/")+1:]
	name = strings.TrimSuffix(name, ".git")
	if name == "" {
		return "repository"
	}
	return name
}
