package recent

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend stores each key as <dir>/<key>.json.
type FileBackend struct {
	dir string
}

// NewFileBackend returns a backend rooted at dir. The directory is created on first write.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.dir, key+".json")
}

// Get reads the file for key.
func (b *FileBackend) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(b.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("recent: read %s: %w", key, err)
	}
	return data, nil
}

// Put writes value through a temporary file and a rename.
func (b *FileBackend) Put(key string, value []byte) error {
	if err := os.MkdirAll(b.dir, 0700); err != nil {
		return fmt.Errorf("recent: create dir: %w", err)
	}
	dest := b.path(key)
	tmp := dest + ".tmp"
	if err := os.WriteFile(tmp, value, 0600); err != nil {
		return fmt.Errorf("recent: write temp file: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("recent: replace %s: %w", key, err)
	}
	return nil
}

// Delete removes the file for key.
func (b *FileBackend) Delete(key string) error {
	err := os.Remove(b.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	return err
}

// Close is a no-op.
func (b *FileBackend) Close() error { return nil }
