package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

// DefaultFile is the cache file used when none is configured.
const DefaultFile = "evaluation_cache.json"

// FileBackend stores the cache as a JSON array of [key, value] pairs:
//
//	[
//	  [
//	    "4,6",
//	    "4 * 6 = 24\nBINGO"
//	  ]
//	]
//
// Saves write a sibling temp file and rename it over the target, so a
// crash mid-save leaves the previous file intact.
type FileBackend struct {
	Path string
}

// NewFileBackend creates a file backend; an empty path selects DefaultFile.
func NewFileBackend(path string) *FileBackend {
	if path == "" {
		path = DefaultFile
	}
	return &FileBackend{Path: path}
}

// Load implements Backend.
func (f *FileBackend) Load(ctx context.Context) (map[string]string, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read cache file %s: %w", f.Path, err)
	}

	var pairs [][]string
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("parse cache file %s: %w", f.Path, err)
	}

	entries := make(map[string]string, len(pairs))
	for i, pair := range pairs {
		if len(pair) != 2 {
			return nil, fmt.Errorf("parse cache file %s: entry %d has %d elements, want 2", f.Path, i, len(pair))
		}
		entries[pair[0]] = pair[1]
	}
	return entries, nil
}

// Save implements Backend.
func (f *FileBackend) Save(ctx context.Context, entries map[string]string) error {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	pairs := make([][]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, []string{k, entries[k]})
	}

	data, err := json.MarshalIndent(pairs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}

	dir := filepath.Dir(f.Path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // No-op after a successful rename

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(f.Path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod cache file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close cache file: %w", err)
	}
	if err := os.Rename(tmpName, f.Path); err != nil {
		return fmt.Errorf("replace cache file %s: %w", f.Path, err)
	}
	return nil
}
