package svn

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/gelbal/repo-history-analyze/internal/history"
	"github.com/gelbal/repo-history-analyze/internal/props"
)

type logDocument struct {
	XMLName xml.Name   `xml:"log"`
	Entries []logEntry `xml:"logentry"`
}

type logEntry struct {
	Revision int    `xml:"revision,attr"`
	Author   string `xml:"author"`
	Date     string `xml:"date"`
	Message  string `xml:"msg"`
}

// ParseLog converts `svn log --xml` output into commit records, extracting
// Props attributions from each commit message. Line stats are left unset;
// the diff fetcher enriches them separately.
func ParseLog(xmlContent string) ([]history.Commit, error) {
	var doc logDocument
	if err := xml.Unmarshal([]byte(xmlContent), &doc); err != nil {
		return nil, fmt.Errorf("parse svn log: %w", err)
	}

	commits := make([]history.Commit, 0, len(doc.Entries))
	for _, entry := range doc.Entries {
		commits = append(commits, history.Commit{
			Revision: entry.Revision,
			Author:   entry.Author,
			When:     parseDate(entry.Date),
			Message:  entry.Message,
			Props:    props.Extract(entry.Message),
		})
	}
	return commits, nil
}

// parseDate handles svn's ISO 8601 timestamps, e.g.
// 2024-01-03T16:20:02.740525Z. An empty or unparseable value degrades to the
// zero time in UTC rather than failing the whole log.
func parseDate(value string) time.Time {
	if value == "" {
		return time.Time{}.UTC()
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}.UTC()
	}
	return t.UTC()
}
