package state

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists the snapshot as a single local JSON file. Writes go
// through a temp file plus rename so a crash mid-write leaves the previous
// snapshot intact.
type FileStore struct {
	path string
}

// NewFileStore builds a file-backed persister at the given path.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("snapshot file path required")
	}
	return &FileStore{path: path}, nil
}

// Save writes the blob atomically.
func (f *FileStore) Save(_ context.Context, blob []byte) error {
	dir := filepath.Dir(f.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// Load reads the persisted blob, or ErrNotFound on first run.
func (f *FileStore) Load(_ context.Context) ([]byte, error) {
	blob, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return blob, nil
}
