package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists each slot as a file under Dir, the server-side analogue
// of a browser-local storage entry.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create dir %s: %w", dir, err)
	}
	return &FileStore{Dir: dir}, nil
}

func (f *FileStore) path(key string) string {
	// Keys are fixed constants, but never let one escape the directory.
	return filepath.Join(f.Dir, filepath.Base(key))
}

func (f *FileStore) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: read slot %s: %w", key, err)
	}
	return string(data), true, nil
}

func (f *FileStore) Set(key, value string) error {
	// Write-then-rename so a crashed write never leaves a torn slot behind.
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return fmt.Errorf("storage: write slot %s: %w", key, err)
	}
	if err := os.Rename(tmp, f.path(key)); err != nil {
		return fmt.Errorf("storage: replace slot %s: %w", key, err)
	}
	return nil
}

func (f *FileStore) Remove(key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: remove slot %s: %w", key, err)
	}
	return nil
}
