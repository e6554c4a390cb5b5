// Package cmd wires the analysis pipelines into a CLI application.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/gelbal/repo-history-analyze/config"
	"github.com/gelbal/repo-history-analyze/internal/diffcache"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "repo-history",
		Usage:   "Mine Git and Subversion history into weekly and rolling statistics",
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			setupLogging(c.Bool("verbose"))
			return nil
		},
		Commands: []*cli.Command{
			GitCmd(),
			SVNCmd(),
			CacheCmd(),
		},
	}
}

func setupLogging(verbose bool) {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// commonFlags are shared by the git and svn commands.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "since",
			Usage:    "Start date (YYYY-MM-DD)",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "to",
			Usage:    "End date (YYYY-MM-DD)",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "output-dir",
			Aliases: []string{"o"},
			Usage:   "Output directory for CSV files",
		},
	}
}

// parseDateFlag parses a YYYY-MM-DD flag into midnight UTC.
func parseDateFlag(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q (expected YYYY-MM-DD)", s)
	}
	return t.UTC(), nil
}

// loadConfig loads configuration and applies command-line overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if dir := c.String("output-dir"); dir != "" {
		cfg.Output.Dir = dir
	}
	if c.IsSet("cache-dir") {
		cfg.Diffs.CacheDir = c.String("cache-dir")
	}
	if c.IsSet("cache-backend") {
		cfg.Diffs.CacheBackend = c.String("cache-backend")
	}
	if c.IsSet("parallel") {
		cfg.Diffs.Workers = c.Int("parallel")
	}

	return cfg, nil
}

// newDiffCache builds a revision cache over the configured store backend.
func newDiffCache(cfg *config.Config, repoURL string) (*diffcache.Cache, error) {
	var store diffcache.Store
	switch cfg.Diffs.CacheBackend {
	case "", "json":
		store = diffcache.NewJSONStore(cfg.Diffs.CacheDir, repoURL)
	case "bolt":
		store = diffcache.NewBoltStore(cfg.Diffs.CacheDir, repoURL)
	default:
		return nil, fmt.Errorf("unsupported cache backend %q (expected json or bolt)", cfg.Diffs.CacheBackend)
	}

	cache := diffcache.New(store)
	if err := cache.Load(); err != nil {
		return nil, fmt.Errorf("failed to load diff cache: %w", err)
	}
	return cache, nil
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
