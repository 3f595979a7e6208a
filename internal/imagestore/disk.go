// Package imagestore persists profile images. The disk store writes to a
// local directory; the S3 store targets an object bucket. Both are
// addressed by bare file name, which is what the user record references.
package imagestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Save(ctx context.Context, filename, contentType string, data []byte) error {
	path, err := s.path(filename)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *DiskStore) Delete(ctx context.Context, filename string) error {
	path, err := s.path(filename)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// path refuses names that escape the upload directory.
func (s *DiskStore) path(filename string) (string, error) {
	if filename == "" || filename == "." || filename == ".." ||
		strings.Contains(filename, "/") || strings.Contains(filename, "\\") ||
		filename != filepath.Base(filename) {
		return "", fmt.Errorf("invalid image file name: %q", filename)
	}
	return filepath.Join(s.dir, filename), nil
}
