// Package props extracts contributor attributions from commit messages.
//
// WordPress-style commit messages credit contributors beyond the committer
// with a line of the form "Props name1, name2, name3." ending in a period.
package props

import (
	"regexp"
	"strings"
)

// attributionPattern matches a "Props <names>." line. The capture runs to
// the end of the line so that identities containing periods, underscores,
// or digits survive; the greedy match ensures the terminating period is the
// one at end-of-line, not one inside an identity.
var attributionPattern = regexp.MustCompile(`(?im)props\s+([^\n]+)\.$`)

// Extract returns the contributor identities named in the attribution line
// of message, in order of appearance. A missing or malformed attribution
// line is not an error; it yields nil.
func Extract(message string) []string {
	m := attributionPattern.FindStringSubmatch(message)
	if m == nil {
		return nil
	}

	var names []string
	for _, piece := range strings.Split(m[1], ",") {
		name := strings.TrimSpace(piece)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}
