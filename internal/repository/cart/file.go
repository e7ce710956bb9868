package cart

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
)

// FileRepo keeps one file per key under a directory, the device-local slot
// used when the storefront runs without shared infrastructure.
type FileRepo struct {
	dir string
}

// NewFile creates dir if needed and returns a Repository rooted there.
func NewFile(dir string) (*FileRepo, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cart dir: %w", err)
	}
	return &FileRepo{dir: dir}, nil
}

func (r *FileRepo) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(r.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %q: %w", key, err)
	}
	return data, nil
}

// Put writes through a temp file and rename so a crash never leaves a
// half-written slot behind.
func (r *FileRepo) Put(_ context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(r.dir, ".slot-*")
	if err != nil {
		return fmt.Errorf("create temp slot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write slot %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close slot %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), r.path(key)); err != nil {
		return fmt.Errorf("rename slot %q: %w", key, err)
	}
	return nil
}

func (r *FileRepo) Delete(_ context.Context, key string) error {
	err := os.Remove(r.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete slot %q: %w", key, err)
	}
	return nil
}

func (r *FileRepo) path(key string) string {
	return filepath.Join(r.dir, url.PathEscape(key)+".json")
}
