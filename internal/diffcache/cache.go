// Package diffcache persists per-revision line-change statistics so that
// expensive diff fetches are never repeated across runs.
package diffcache

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

// Entry holds cached diff statistics for a single revision. Entries are
// written once on first fetch and treated as immutable afterwards.
type Entry struct {
	Revision     int       `json:"revision"`
	LinesAdded   int       `json:"lines_added"`
	LinesDeleted int       `json:"lines_deleted"`
	FetchedAt    time.Time `json:"fetched_at"`
}

// Store persists the full entry set to durable storage.
type Store interface {
	Save(entries map[int]Entry) error
	Load() (map[int]Entry, error)
	Location() string
}

// Cache is an in-memory revision cache backed by a Store. It is safe for
// concurrent use; diff fetch workers write entries from multiple goroutines.
type Cache struct {
	mu      sync.RWMutex
	entries map[int]Entry
	store   Store
}

// New creates an empty cache over the given store.
func New(store Store) *Cache {
	return &Cache{
		entries: make(map[int]Entry),
		store:   store,
	}
}

// RepoKey derives a stable cache key from a repository URL. URLs are
// lowercased and stripped of trailing slashes before hashing, so equivalent
// spellings share one cache while distinct repositories never collide.
func RepoKey(repoURL string) string {
	normalized := strings.ToLower(strings.TrimRight(repoURL, "/"))
	sum := md5.Sum([]byte(normalized))
	return hex.EncodeToString(sum[:])[:12]
}

// Get returns the cached entry for a revision.
func (c *Cache) Get(revision int) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[revision]
	return e, ok
}

// Put records diff statistics for a revision, replacing any existing entry.
func (c *Cache) Put(revision, linesAdded, linesDeleted int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[revision] = Entry{
		Revision:     revision,
		LinesAdded:   linesAdded,
		LinesDeleted: linesDeleted,
		FetchedAt:    time.Now().UTC(),
	}
}

// Has reports whether a revision is cached.
func (c *Cache) Has(revision int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[revision]
	return ok
}

// Uncached filters revisions down to those absent from the cache,
// preserving input order.
func (c *Cache) Uncached(revisions []int) []int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var missing []int
	for _, r := range revisions {
		if _, ok := c.entries[r]; !ok {
			missing = append(missing, r)
		}
	}
	return missing
}

// Size returns the number of cached entries.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Location returns where the backing store persists entries.
func (c *Cache) Location() string {
	return c.store.Location()
}

// Save persists the full entry set through the backing store.
func (c *Cache) Save() error {
	c.mu.RLock()
	snapshot := make(map[int]Entry, len(c.entries))
	for rev, e := range c.entries {
		snapshot[rev] = e
	}
	c.mu.RUnlock()

	return c.store.Save(snapshot)
}

// Load replaces the in-memory entry set with the persisted one. A store with
// nothing persisted yields an empty cache; a store holding corrupt data
// surfaces the error rather than silently starting empty.
func (c *Cache) Load() error {
	entries, err := c.store.Load()
	if err != nil {
		return err
	}
	if entries == nil {
		entries = make(map[int]Entry)
	}

	c.mu.Lock()
	c.entries = entries
	c.mu.Unlock()
	return nil
}
