package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"safety-watch/internal/domain/port"
)

// FileRepository stores each key as a JSON file under one directory.
// Saves write to a temp file first and swap it in, so a failed write
// never corrupts the previous state on disk.
type FileRepository struct {
	dir string
}

// NewFileRepository creates the data directory if needed.
func NewFileRepository(dir string) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileRepository{dir: dir}, nil
}

func (r *FileRepository) path(key string) string {
	return filepath.Join(r.dir, key+".json")
}

// Load reads a key's file. A missing file is absence, not an error.
func (r *FileRepository) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(r.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Save writes the value via temp file and rename.
func (r *FileRepository) Save(ctx context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(r.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), r.path(key)); err != nil {
		return fmt.Errorf("swap %s: %w", key, err)
	}
	return nil
}

var _ port.StateRepository = (*FileRepository)(nil)
