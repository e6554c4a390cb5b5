package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

// CacheCmd returns the cache inspection command.
func CacheCmd() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Show diff cache status for an SVN repository",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "svn-url",
				Usage: "SVN repository URL (default: from config)",
			},
			&cli.StringFlag{
				Name:  "cache-dir",
				Usage: "Cache directory for diff stats",
			},
			&cli.StringFlag{
				Name:  "cache-backend",
				Usage: "Diff cache backend (json, bolt)",
			},
		},
		Action: cacheAction,
	}
}

func cacheAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	url := cfg.SVN.URL
	if v := c.String("svn-url"); v != "" {
		url = v
	}

	cache, err := newDiffCache(cfg, url)
	if err != nil {
		return err
	}

	color.Green("Diff cache status")
	fmt.Printf("Repository: %s\n", url)
	fmt.Printf("Backend: %s\n", cfg.Diffs.CacheBackend)
	fmt.Printf("Location: %s\n", cache.Location())
	fmt.Printf("Cached revisions: %d\n", cache.Size())
	return nil
}
