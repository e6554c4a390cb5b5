// Package svn wraps the svn command-line tool for log and diff retrieval.
package svn

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// DefaultDiffTimeout bounds a single diff fetch. An expired timeout is
// reported as an error for that revision only; the batch layer substitutes
// zero stats.
const DefaultDiffTimeout = 60 * time.Second

// Client runs svn against a remote repository URL.
type Client struct {
	url         string
	diffTimeout time.Duration
}

// NewClient creates a client for the given repository URL. A non-positive
// diffTimeout falls back to DefaultDiffTimeout.
func NewClient(url string, diffTimeout time.Duration) *Client {
	if diffTimeout <= 0 {
		diffTimeout = DefaultDiffTimeout
	}
	return &Client{
		url:         strings.TrimRight(url, "/") + "/",
		diffTimeout: diffTimeout,
	}
}

// URL returns the normalized repository URL.
func (c *Client) URL() string {
	return c.url
}

// Available reports whether the svn binary can be found.
func (c *Client) Available() bool {
	_, err := exec.LookPath("svn")
	return err == nil
}

// FetchLogXML retrieves the commit log for a date range in XML form.
// A positive limit caps the number of revisions returned.
func (c *Client) FetchLogXML(ctx context.Context, start, end time.Time, limit int) (string, error) {
	args := []string{
		"log", c.url,
		"-r", fmt.Sprintf("{%s}:{%s}", start.Format("2006-01-02"), end.Format("2006-01-02")),
		"--xml",
	}
	if limit > 0 {
		args = append(args, "-l", strconv.Itoa(limit))
	}

	out, err := exec.CommandContext(ctx, "svn", args...).Output()
	if err != nil {
		return "", fmt.Errorf("svn log failed: %w: %s", err, exitStderr(err))
	}
	return string(out), nil
}

// FetchDiff retrieves the unified diff for a single revision, subject to the
// client's per-invocation timeout.
func (c *Client) FetchDiff(ctx context.Context, revision int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.diffTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "svn", "diff", "-c", strconv.Itoa(revision), c.url).Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("svn diff timed out for revision %d", revision)
		}
		return "", fmt.Errorf("svn diff failed for revision %d: %w: %s", revision, err, exitStderr(err))
	}
	return string(out), nil
}

// exitStderr extracts captured stderr from an exec error, if present.
func exitStderr(err error) string {
	if ee, ok := err.(*exec.ExitError); ok {
		return strings.TrimSpace(string(ee.Stderr))
	}
	return ""
}
