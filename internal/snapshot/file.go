// Package snapshot contains the persistence backends for itinerary snapshots.
// Each backend stores one JSON document — the full userID → entries mapping —
// under a single namespace key. Backends only move bytes; all itinerary
// semantics live in the itinerary package.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/wayfare/backend/internal/domain"
)

// FileStore persists the snapshot as a JSON file on local disk. It is the
// default backend and the closest analog of the original client-local
// storage: one document, replaced wholesale on every write.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore writing to path. The parent directory is
// created on the first Save, not here, so constructing a store against a
// read-only location does not fail until a write is attempted.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads and decodes the snapshot file.
// Returns domain.ErrNotFound when the file does not exist yet.
func (f *FileStore) Load(_ context.Context) (domain.Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Snapshot{}, fmt.Errorf("snapshot.FileStore.Load: %w", domain.ErrNotFound)
		}
		return domain.Snapshot{}, fmt.Errorf("snapshot.FileStore.Load: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("snapshot.FileStore.Load: decode %s: %w", f.path, err)
	}
	return snap, nil
}

// Save writes the snapshot atomically: encode to a temp file in the same
// directory, then rename over the destination. A crash mid-write leaves the
// previous snapshot intact rather than a truncated document.
func (f *FileStore) Save(_ context.Context, snap domain.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot.FileStore.Save: encode: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("snapshot.FileStore.Save: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("snapshot.FileStore.Save: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("snapshot.FileStore.Save: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("snapshot.FileStore.Save: close: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("snapshot.FileStore.Save: rename: %w", err)
	}
	return nil
}
