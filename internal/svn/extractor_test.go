package svn

import (
	"reflect"
	"testing"
	"time"
)

const sampleLogXML = `<?xml version="1.0" encoding="UTF-8"?>
<log>
<logentry revision="57109">
<author>SergeyBiryukov</author>
<date>2024-01-03T16:20:02.740525Z</date>
<msg>Docs: Improve documentation for a few functions.

Props mukesh27, upadalavipul.</msg>
</logentry>
<logentry revision="57108">
<author>audrasjb</author>
<date>2024-01-03T10:05:17.123456Z</date>
<msg>Administration: Fix a styling glitch on the updates screen.</msg>
</logentry>
</log>`

func TestParseLog(t *testing.T) {
	commits, err := ParseLog(sampleLogXML)
	if err != nil {
		t.Fatalf("ParseLog: %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("expected 2 commits, got %d", len(commits))
	}

	first := commits[0]
	if first.Revision != 57109 {
		t.Errorf("revision = %d, expected 57109", first.Revision)
	}
	if first.Author != "SergeyBiryukov" {
		t.Errorf("author = %q, expected SergeyBiryukov", first.Author)
	}
	expectedWhen := time.Date(2024, 1, 3, 16, 20, 2, 740525000, time.UTC)
	if !first.When.Equal(expectedWhen) {
		t.Errorf("when = %v, expected %v", first.When, expectedWhen)
	}
	if !reflect.DeepEqual(first.Props, []string{"mukesh27", "upadalavipul"}) {
		t.Errorf("props = %v, expected [mukesh27 upadalavipul]", first.Props)
	}
	if first.HasLineStats {
		t.Error("log entries must not claim line stats before diff enrichment")
	}

	second := commits[1]
	if second.Revision != 57108 || second.Props != nil {
		t.Errorf("second commit = rev %d props %v, expected rev 57108 with no props", second.Revision, second.Props)
	}
}

func TestParseLog_InvalidXML(t *testing.T) {
	if _, err := ParseLog("<log><logentry"); err == nil {
		t.Error("expected error for truncated XML")
	}
}

func TestParseLog_EmptyLog(t *testing.T) {
	commits, err := ParseLog(`<?xml version="1.0"?><log></log>`)
	if err != nil {
		t.Fatalf("ParseLog: %v", err)
	}
	if len(commits) != 0 {
		t.Errorf("expected no commits, got %d", len(commits))
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{
			name:     "svn timestamp",
			input:    "2024-01-03T16:20:02.740525Z",
			expected: time.Date(2024, 1, 3, 16, 20, 2, 740525000, time.UTC),
		},
		{
			name:     "no fractional seconds",
			input:    "2005-04-04T10:00:00Z",
			expected: time.Date(2005, 4, 4, 10, 0, 0, 0, time.UTC),
		},
		{
			name:     "empty degrades to zero time",
			input:    "",
			expected: time.Time{},
		},
		{
			name:     "garbage degrades to zero time",
			input:    "yesterday",
			expected: time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseDate(tt.input)
			if !result.Equal(tt.expected) {
				t.Errorf("parseDate(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNewClient_NormalizesURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://develop.svn.wordpress.org", "https://develop.svn.wordpress.org/"},
		{"https://develop.svn.wordpress.org/", "https://develop.svn.wordpress.org/"},
		{"https://develop.svn.wordpress.org//", "https://develop.svn.wordpress.org/"},
	}

	for _, tt := range tests {
		if got := NewClient(tt.input, 0).URL(); got != tt.expected {
			t.Errorf("NewClient(%q).URL() = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
