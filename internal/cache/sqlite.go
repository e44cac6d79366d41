package cache

import (
	"context"

	"github.com/roach88/twentyfour/internal/store"
)

// StoreBackend keeps the cache in the judgments table of a SQLite store.
// An empty table loads as an empty cache.
type StoreBackend struct {
	store *store.Store
}

// NewStoreBackend wraps an open store. The caller owns the store's lifetime.
func NewStoreBackend(s *store.Store) *StoreBackend {
	return &StoreBackend{store: s}
}

// Load implements Backend.
func (b *StoreBackend) Load(ctx context.Context) (map[string]string, error) {
	return b.store.ReadJudgments(ctx)
}

// Save implements Backend.
func (b *StoreBackend) Save(ctx context.Context, entries map[string]string) error {
	return b.store.ReplaceJudgments(ctx, entries)
}
