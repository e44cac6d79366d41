// Package cache memoizes feasibility judgments by canonical key.
//
// A Cache is loaded once from a durable Backend before any search, mutated
// only through Set / GetOrFetch during search, and flushed with Save when a
// search terminates. Entries are never evicted. Negative judgments are
// stored with the same durability as positive ones.
//
// Load and Save never return errors: an absent store is an empty cache, and
// any other read or write failure is logged and degraded around. Saving is
// a whole-store overwrite; concurrent writers are not coordinated and the
// last writer wins.
//
// Concurrent GetOrFetch calls for the same key are collapsed with
// singleflight so the fetch function (an oracle call) runs once per key.
package cache
