package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes renditions under a base directory. It exists for local
// development and the test suite; deployments use R2.
type LocalStore struct {
	basePath string
	baseURL  string
}

func NewLocalStore(cfg Config) (*LocalStore, error) {
	base := cfg.BasePath
	if base == "" {
		base = "./uploads"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &LocalStore{basePath: base, baseURL: strings.TrimSuffix(cfg.BaseURL, "/")}, nil
}

// keyPath maps an object key onto the filesystem. Keys are generated
// server-side, but a traversal check costs nothing.
func (s *LocalStore) keyPath(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid object key: %s", key)
	}
	return filepath.Join(s.basePath, clean), nil
}

// Save writes to a temp file in the same directory and renames it into
// place, so a half-written rendition is never served.
func (s *LocalStore) Save(ctx context.Context, key string, reader io.Reader, contentType string) error {
	dest, err := s.keyPath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create rendition directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write rendition: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("flush rendition: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store rendition: %w", err)
	}
	return nil
}

// Delete removes the object. A missing file is not an error: rendition
// cleanup retries after partial failures.
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	dest, err := s.keyPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete rendition: %w", err)
	}
	// Drop the photo directory once its last rendition is gone.
	if entries, err := os.ReadDir(filepath.Dir(dest)); err == nil && len(entries) == 0 {
		os.Remove(filepath.Dir(dest))
	}
	return nil
}

func (s *LocalStore) GetURL(ctx context.Context, key string) (string, error) {
	if s.baseURL == "" {
		return "/files/" + key, nil
	}
	return s.baseURL + "/" + key, nil
}
