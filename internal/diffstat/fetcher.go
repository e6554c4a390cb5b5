package diffstat

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/gelbal/repo-history-analyze/internal/diffcache"
)

// DefaultWorkers bounds concurrent diff fetches when no limit is given.
const DefaultWorkers = 4

// Source fetches the raw unified diff for a single revision.
type Source interface {
	FetchDiff(ctx context.Context, revision int) (string, error)
}

// ProgressFunc is invoked after each completed fetch with the running
// completed count and the batch total.
type ProgressFunc func(completed, total int)

// BatchOptions configures a batch fetch.
type BatchOptions struct {
	// Workers bounds concurrent fetches; non-positive means DefaultWorkers.
	Workers int
	// SaveCache persists the cache to durable storage once the batch is done.
	SaveCache bool
	// OnProgress, if set, receives progress updates.
	OnProgress ProgressFunc
}

// BatchFetcher fetches diffs through the cache, parsing each into Stats.
type BatchFetcher struct {
	source Source
	cache  *diffcache.Cache
	log    *logrus.Logger
}

// NewBatchFetcher creates a fetcher over the given source and cache. A nil
// logger falls back to the standard logrus logger.
func NewBatchFetcher(source Source, cache *diffcache.Cache, log *logrus.Logger) *BatchFetcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &BatchFetcher{source: source, cache: cache, log: log}
}

// FetchOne returns diff statistics for a single revision. A cache hit
// short-circuits the fetch; a miss fetches, parses, and caches the result.
func (f *BatchFetcher) FetchOne(ctx context.Context, revision int) (Stats, error) {
	if entry, ok := f.cache.Get(revision); ok {
		return Stats{LinesAdded: entry.LinesAdded, LinesDeleted: entry.LinesDeleted}, nil
	}

	diff, err := f.source.FetchDiff(ctx, revision)
	if err != nil {
		return Stats{}, err
	}

	stats := Parse(diff)
	f.cache.Put(revision, stats.LinesAdded, stats.LinesDeleted)
	return stats, nil
}

// FetchBatch returns diff statistics for every revision in the list. Cached
// revisions are answered directly; the rest are fetched concurrently,
// bounded by opts.Workers. A failed or timed-out fetch yields zero stats for
// that revision so one unreachable revision never aborts the batch.
func (f *BatchFetcher) FetchBatch(ctx context.Context, revisions []int, opts BatchOptions) (map[int]Stats, error) {
	results := make(map[int]Stats, len(revisions))
	if len(revisions) == 0 {
		return results, nil
	}

	total := len(revisions)
	var uncached []int
	for _, rev := range revisions {
		if entry, ok := f.cache.Get(rev); ok {
			results[rev] = Stats{LinesAdded: entry.LinesAdded, LinesDeleted: entry.LinesDeleted}
		} else {
			uncached = append(uncached, rev)
		}
	}

	if len(uncached) > 0 {
		workers := opts.Workers
		if workers <= 0 {
			workers = DefaultWorkers
		}

		var mu sync.Mutex
		completed := len(results)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)

		for _, rev := range uncached {
			g.Go(func() error {
				stats, err := f.FetchOne(gctx, rev)
				if err != nil {
					f.log.WithFields(logrus.Fields{
						"revision": rev,
						"error":    err,
					}).Warn("diff fetch failed, recording zero churn")
					stats = Stats{}
				}

				mu.Lock()
				results[rev] = stats
				completed++
				done := completed
				mu.Unlock()

				if opts.OnProgress != nil {
					opts.OnProgress(done, total)
				}
				return nil
			})
		}

		// Workers never return errors; failures degrade to zero stats.
		_ = g.Wait()
	} else if opts.OnProgress != nil {
		opts.OnProgress(total, total)
	}

	if opts.SaveCache {
		if err := f.cache.Save(); err != nil {
			return results, err
		}
	}

	return results, nil
}
