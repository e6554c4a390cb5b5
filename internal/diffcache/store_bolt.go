package diffcache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	bolt "go.etcd.io/bbolt"
)

// BoltStore persists cache entries in a single bbolt database file shared by
// all repositories, with one bucket per repository key.
type BoltStore struct {
	path    string
	repoKey string
}

var _ Store = (*BoltStore)(nil)

// NewBoltStore creates a bbolt-backed store at <dir>/svn/diffcache.db for
// the given repository URL.
func NewBoltStore(dir, repoURL string) *BoltStore {
	return &BoltStore{
		path:    filepath.Join(dir, "svn", "diffcache.db"),
		repoKey: RepoKey(repoURL),
	}
}

// Location returns the path of the database file.
func (s *BoltStore) Location() string {
	return s.path
}

// Save replaces this repository's bucket with the given entry set. bbolt
// commits transactions atomically, which gives the same crash safety as the
// JSON store's rename.
func (s *BoltStore) Save(entries map[int]Entry) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	db, err := bolt.Open(s.path, 0o600, nil)
	if err != nil {
		return fmt.Errorf("open cache database: %w", err)
	}
	defer func() { _ = db.Close() }()

	return db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(s.repoKey)) != nil {
			if err := tx.DeleteBucket([]byte(s.repoKey)); err != nil {
				return err
			}
		}
		bucket, err := tx.CreateBucket([]byte(s.repoKey))
		if err != nil {
			return err
		}

		for rev, e := range entries {
			data, err := json.Marshal(e)
			if err != nil {
				return err
			}
			if err := bucket.Put([]byte(strconv.Itoa(rev)), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// Load reads this repository's bucket. A missing database file or bucket
// yields an empty set.
func (s *BoltStore) Load() (map[int]Entry, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return make(map[int]Entry), nil
	}

	db, err := bolt.Open(s.path, 0o600, &bolt.Options{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	defer func() { _ = db.Close() }()

	entries := make(map[int]Entry)
	err = db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(s.repoKey))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			rev, err := strconv.Atoi(string(k))
			if err != nil {
				return fmt.Errorf("bad revision key %q in cache database", string(k))
			}
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return fmt.Errorf("parse cached entry for revision %d: %w", rev, err)
			}
			entries[rev] = e
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
