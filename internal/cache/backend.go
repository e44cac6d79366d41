package cache

import (
	"context"
	"errors"
	"maps"
	"sync"
)

// ErrNotFound is returned by Backend.Load when no durable store exists yet.
var ErrNotFound = errors.New("cache store not found")

// Backend is the durable side of a Cache.
//
// Load returns the complete stored mapping, or ErrNotFound when nothing has
// been stored yet. Save replaces the complete stored mapping.
type Backend interface {
	Load(ctx context.Context) (map[string]string, error)
	Save(ctx context.Context, entries map[string]string) error
}

// MemoryBackend keeps the "durable" mapping in process memory.
// Used by the harness and tests; LoadErr and SaveErr inject failures.
type MemoryBackend struct {
	mu      sync.Mutex
	entries map[string]string
	saves   int

	LoadErr error
	SaveErr error
}

// NewMemoryBackend creates a backend holding a copy of seed.
// A nil seed models an absent store: Load returns ErrNotFound until the
// first successful Save.
func NewMemoryBackend(seed map[string]string) *MemoryBackend {
	return &MemoryBackend{entries: maps.Clone(seed)}
}

// Load implements Backend.
func (m *MemoryBackend) Load(ctx context.Context) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.entries == nil {
		return nil, ErrNotFound
	}
	return maps.Clone(m.entries), nil
}

// Save implements Backend.
func (m *MemoryBackend) Save(ctx context.Context, entries map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.entries = maps.Clone(entries)
	if m.entries == nil {
		m.entries = map[string]string{}
	}
	m.saves++
	return nil
}

// Entries returns a copy of the stored mapping.
func (m *MemoryBackend) Entries() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.entries)
}

// Saves returns the number of successful Save calls.
func (m *MemoryBackend) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
