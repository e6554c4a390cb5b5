// Package gitrepo reads commit history from Git repositories via go-git.
package gitrepo

import (
	"fmt"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/gelbal/repo-history-analyze/internal/history"
)

// ReadOptions configures the history reader.
type ReadOptions struct {
	// RepoPath is the local working copy. When the path holds no repository
	// and RepoURL is set, the repository is cloned there first.
	RepoPath string
	RepoURL  string
	Since    *time.Time
	Until    *time.Time
	// Include and Exclude are doublestar glob patterns applied to changed
	// file paths when summing line stats.
	Include []string
	Exclude []string
}

// Reader reads commit history and enriches commits with release versions.
type Reader struct {
	repo     *git.Repository
	opts     ReadOptions
	versions *VersionMapper
}

// Open opens the repository at opts.RepoPath, cloning from opts.RepoURL if
// nothing is there yet.
func Open(opts ReadOptions) (*Reader, error) {
	repo, err := git.PlainOpen(opts.RepoPath)
	if err == git.ErrRepositoryNotExists && opts.RepoURL != "" {
		repo, err = git.PlainClone(opts.RepoPath, false, &git.CloneOptions{URL: opts.RepoURL})
		if err != nil {
			return nil, fmt.Errorf("clone %s: %w", opts.RepoURL, err)
		}
	} else if err != nil {
		return nil, err
	}

	versions, err := NewVersionMapper(repo)
	if err != nil {
		return nil, err
	}

	return &Reader{repo: repo, opts: opts, versions: versions}, nil
}

// Versions exposes the release-tag mapper built from the repository.
func (r *Reader) Versions() *VersionMapper {
	return r.versions
}

// ReadCommits walks the history from HEAD and returns one commit record per
// revision in the configured date range, with line stats summed over the
// paths that pass the include/exclude filters.
func (r *Reader) ReadCommits() ([]history.Commit, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return nil, err
	}

	logOpts := &git.LogOptions{From: ref.Hash()}
	if r.opts.Since != nil {
		logOpts.Since = r.opts.Since
	}
	if r.opts.Until != nil {
		logOpts.Until = r.opts.Until
	}

	iter, err := r.repo.Log(logOpts)
	if err != nil {
		return nil, err
	}

	var commits []history.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		added, deleted, err := r.lineStats(c)
		if err != nil {
			return err
		}

		commits = append(commits, history.Commit{
			Hash:         c.Hash.String(),
			Author:       c.Author.Name,
			When:         c.Author.When.UTC(),
			Message:      c.Message,
			LinesAdded:   added,
			LinesDeleted: deleted,
			HasLineStats: true,
			Version:      r.versions.VersionForCommit(c.Hash.String()),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return commits, nil
}

// lineStats sums added and deleted lines across the commit's filtered files.
func (r *Reader) lineStats(c *object.Commit) (added, deleted int, err error) {
	stats, err := c.Stats()
	if err != nil {
		return 0, 0, err
	}

	for _, fs := range stats {
		if !r.matchesFilters(fs.Name) {
			continue
		}
		added += fs.Addition
		deleted += fs.Deletion
	}
	return added, deleted, nil
}

// matchesFilters checks a path against the include/exclude globs.
func (r *Reader) matchesFilters(path string) bool {
	path = strings.ReplaceAll(path, "\\", "/")

	for _, pattern := range r.opts.Exclude {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return false
		}
	}

	if len(r.opts.Include) == 0 {
		return true
	}
	for _, pattern := range r.opts.Include {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
	}
	return false
}
