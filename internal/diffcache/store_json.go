package diffcache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// JSONStore persists cache entries as one JSON file per repository under
// <dir>/svn/<repokey>.json.
type JSONStore struct {
	dir     string
	repoKey string
}

var _ Store = (*JSONStore)(nil)

// NewJSONStore creates a JSON file store rooted at dir for the given
// repository URL.
func NewJSONStore(dir, repoURL string) *JSONStore {
	return &JSONStore{dir: dir, repoKey: RepoKey(repoURL)}
}

// Location returns the path of the cache file.
func (s *JSONStore) Location() string {
	return filepath.Join(s.dir, "svn", s.repoKey+".json")
}

// Save writes the entry set atomically: the JSON document goes to a
// temporary file first and is renamed into place, so a crash mid-write never
// corrupts an existing cache file.
func (s *JSONStore) Save(entries map[int]Entry) error {
	path := s.Location()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	// JSON object keys must be strings.
	doc := make(map[string]Entry, len(entries))
	for rev, e := range entries {
		doc[strconv.Itoa(rev)] = e
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write cache temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace cache file: %w", err)
	}
	return nil
}

// Load reads the entry set from disk. A missing file yields an empty set; a
// file that exists but cannot be parsed is an error, since silently
// discarding cached work would be worse than failing.
func (s *JSONStore) Load() (map[int]Entry, error) {
	data, err := os.ReadFile(s.Location())
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[int]Entry), nil
		}
		return nil, fmt.Errorf("read cache file: %w", err)
	}

	var doc map[string]Entry
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse cache file %s: %w", s.Location(), err)
	}

	entries := make(map[int]Entry, len(doc))
	for key, e := range doc {
		rev, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("parse cache file %s: bad revision key %q", s.Location(), key)
		}
		entries[rev] = e
	}
	return entries, nil
}
