package cli

import (
	"context"
	"log/slog"

	"github.com/roach88/twentyfour/internal/cache"
	"github.com/roach88/twentyfour/internal/store"
)

// Cache backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Default cache locations per backend.
const (
	DefaultJSONCache   = cache.DefaultFile
	DefaultSQLiteCache = "twentyfour.db"
)

// workspace is an opened cache plus, for the sqlite backend, its store.
type workspace struct {
	cache *cache.Cache
	store *store.Store // nil for the json backend
}

// cachePath resolves the --cache flag for the selected backend.
func (o *RootOptions) cachePath() string {
	if o.Cache != "" {
		return o.Cache
	}
	if o.Backend == BackendSQLite {
		return DefaultSQLiteCache
	}
	return DefaultJSONCache
}

// openWorkspace opens the configured backend and loads the cache.
func openWorkspace(ctx context.Context, o *RootOptions) (*workspace, error) {
	path := o.cachePath()

	var backend cache.Backend
	var st *store.Store
	switch o.Backend {
	case BackendSQLite:
		var err error
		st, err = store.Open(path)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to open database", err)
		}
		backend = cache.NewStoreBackend(st)
	default:
		backend = cache.NewFileBackend(path)
	}

	c := cache.New(backend)
	c.Load(ctx)
	slog.Debug("cache ready", "backend", o.Backend, "path", path, "entries", c.Len())

	return &workspace{cache: c, store: st}, nil
}

// Close releases the store, if any.
func (w *workspace) Close() {
	if w.store == nil {
		return
	}
	if err := w.store.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}
