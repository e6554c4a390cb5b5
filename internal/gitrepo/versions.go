package gitrepo

import (
	"regexp"
	"sort"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// versionPattern matches release tags made of digits and dots only,
// e.g. "1.5" or "6.4.2".
var versionPattern = regexp.MustCompile(`^\d+(\.\d+)*$`)

// VersionTag pairs a release tag with the commit it points at.
type VersionTag struct {
	Name       string
	CommitHash string
	TaggedDate time.Time
}

// VersionMapper maps release tags to commits and dates.
type VersionMapper struct {
	tags     map[string]VersionTag
	byCommit map[string]string
}

// NewVersionMapper loads all release tags from the repository. Both
// lightweight and annotated tags are resolved to their target commit.
func NewVersionMapper(repo *git.Repository) (*VersionMapper, error) {
	m := &VersionMapper{
		tags:     make(map[string]VersionTag),
		byCommit: make(map[string]string),
	}

	iter, err := repo.Tags()
	if err != nil {
		return nil, err
	}

	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if !versionPattern.MatchString(name) {
			return nil
		}

		hash := ref.Hash()
		if tag, err := repo.TagObject(hash); err == nil {
			commit, err := tag.Commit()
			if err != nil {
				return nil
			}
			hash = commit.Hash
		}

		commit, err := repo.CommitObject(hash)
		if err != nil {
			return nil
		}

		vt := VersionTag{
			Name:       name,
			CommitHash: commit.Hash.String(),
			TaggedDate: commit.Committer.When.UTC(),
		}
		m.tags[name] = vt
		m.byCommit[vt.CommitHash] = name
		return nil
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

// VersionForCommit returns the release version tagged at the commit, or ""
// when the commit carries no release tag.
func (m *VersionMapper) VersionForCommit(hash string) string {
	return m.byCommit[hash]
}

// VersionsInRange returns all versions tagged within the inclusive date
// range, sorted by tag name.
func (m *VersionMapper) VersionsInRange(start, end time.Time) []string {
	var versions []string
	for _, vt := range m.tags {
		if !vt.TaggedDate.Before(start) && !vt.TaggedDate.After(end) {
			versions = append(versions, vt.Name)
		}
	}
	sort.Strings(versions)
	return versions
}
