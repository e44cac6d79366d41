package cache

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/roach88/twentyfour/internal/ir"
)

// Entry is one cached judgment.
type Entry struct {
	Key      ir.Key `json:"key"`
	Judgment string `json:"judgment"`
}

// FetchFunc produces a judgment on a cache miss.
type FetchFunc func(ctx context.Context) (string, error)

// Cache maps canonical keys to raw feasibility-judgment text.
//
// Thread-safety: all methods are safe for concurrent use.
//
// INVARIANTS:
//   - Entries are never evicted
//   - Dirty() is true iff a Set happened after the last successful Save
type Cache struct {
	backend Backend

	mu      sync.RWMutex
	entries map[ir.Key]string
	version uint64 // bumped by every Set
	saved   uint64 // version captured by the last successful Save

	flight singleflight.Group
}

// New creates an empty cache over backend. Call Load before searching.
func New(backend Backend) *Cache {
	return &Cache{
		backend: backend,
		entries: make(map[ir.Key]string),
	}
}

// Get returns the cached judgment for key.
func (c *Cache) Get(key ir.Key) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	judgment, ok := c.entries[key]
	return judgment, ok
}

// Set stores judgment under key, overwriting any prior value, and marks the
// cache dirty.
func (c *Cache) Set(key ir.Key, judgment string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = judgment
	c.version++
	cacheEntries.Set(float64(len(c.entries)))
}

// Len returns the number of cached judgments.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Dirty reports whether the cache has unpersisted changes.
func (c *Cache) Dirty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version != c.saved
}

// Entries returns a snapshot of the cache sorted by key.
func (c *Cache) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Entry, 0, len(c.entries))
	for k, v := range c.entries {
		out = append(out, Entry{Key: k, Judgment: v})
	}
	slices.SortFunc(out, func(a, b Entry) int {
		return compareKeys(a.Key, b.Key)
	})
	return out
}

// Load replaces the in-memory map with the backend's contents.
//
// An absent store yields an empty cache. Any other failure is logged and
// also yields an empty cache; Load never fails. A freshly loaded cache is
// clean.
func (c *Cache) Load(ctx context.Context) {
	stored, err := c.backend.Load(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		slog.Info("cache store not found, starting with an empty cache")
		stored = nil
	case err != nil:
		slog.Warn("failed to load cache, starting with an empty cache", "error", err)
		stored = nil
	}

	entries := make(map[ir.Key]string, len(stored))
	for k, v := range stored {
		entries[ir.Key(k)] = v
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = entries
	c.saved = c.version
	cacheEntries.Set(float64(len(entries)))

	slog.Debug("cache loaded", "entries", len(entries))
}

// Save flushes the full map to the backend if the cache is dirty.
// A clean cache is a no-op. Write failures are logged and swallowed; the
// cache stays dirty so a later Save retries.
func (c *Cache) Save(ctx context.Context) {
	c.mu.RLock()
	if c.version == c.saved {
		c.mu.RUnlock()
		cacheSaves.WithLabelValues("clean").Inc()
		return
	}
	version := c.version
	snapshot := make(map[string]string, len(c.entries))
	for k, v := range c.entries {
		snapshot[string(k)] = v
	}
	c.mu.RUnlock()

	if err := c.backend.Save(ctx, snapshot); err != nil {
		slog.Error("failed to save cache", "error", err, "entries", len(snapshot))
		cacheSaves.WithLabelValues("error").Inc()
		return
	}

	c.mu.Lock()
	if version > c.saved {
		c.saved = version
	}
	c.mu.Unlock()

	cacheSaves.WithLabelValues("ok").Inc()
	slog.Debug("cache saved", "entries", len(snapshot))
}

// GetOrFetch returns the cached judgment for key, or calls fetch and stores
// its result. The returned bool reports that no fetch ran for this call.
//
// Every fetched judgment is stored, whatever it says. A fetch error is not
// stored and is returned unchanged. Concurrent misses for the same key share
// one fetch; if the caller running it is cancelled, the others start a new
// fetch under their own context instead of inheriting the cancellation.
func (c *Cache) GetOrFetch(ctx context.Context, key ir.Key, fetch FetchFunc) (string, bool, error) {
	if judgment, ok := c.Get(key); ok {
		cacheHits.Inc()
		return judgment, true, nil
	}

	for {
		ch := c.flight.DoChan(string(key), func() (any, error) {
			return c.fetchOnce(ctx, key, fetch)
		})

		select {
		case <-ctx.Done():
			return "", false, ctx.Err()
		case res := <-ch:
			var abandoned *abandonedFetch
			if errors.As(res.Err, &abandoned) {
				if ctx.Err() != nil {
					return "", false, abandoned.err
				}
				continue
			}
			if res.Err != nil {
				return "", false, res.Err
			}
			r := res.Val.(fetchResult)
			return r.judgment, r.hit, nil
		}
	}
}

// fetchResult is what one flight hands to every caller sharing it.
type fetchResult struct {
	judgment string
	hit      bool // found by the re-check; fetch never ran
}

// abandonedFetch wraps a fetch error raised after the fetching caller's
// context was done.
type abandonedFetch struct {
	err error
}

func (a *abandonedFetch) Error() string { return a.err.Error() }
func (a *abandonedFetch) Unwrap() error { return a.err }

func (c *Cache) fetchOnce(ctx context.Context, key ir.Key, fetch FetchFunc) (fetchResult, error) {
	// Another flight may have stored it between our miss and this call
	if judgment, ok := c.Get(key); ok {
		cacheHits.Inc()
		return fetchResult{judgment: judgment, hit: true}, nil
	}

	cacheMisses.Inc()
	judgment, err := fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return fetchResult{}, &abandonedFetch{err: err}
		}
		return fetchResult{}, err
	}
	c.Set(key, judgment)
	return fetchResult{judgment: judgment}, nil
}

// compareKeys orders canonical keys numerically element by element, so
// "9" sorts before "10" and "4" before "4,6".
func compareKeys(a, b ir.Key) int {
	am, aerr := ir.ParseKey(a)
	bm, berr := ir.ParseKey(b)
	if aerr != nil || berr != nil {
		return cmp.Compare(a, b)
	}
	return slices.Compare(am, bm)
}
