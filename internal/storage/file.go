package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/qepting91/jamcomments/internal/domain"
)

// FileStore keeps the snapshot as a single JSON array on disk.
// Writes go through a temp file and a rename, so readers never see a partial snapshot.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Exists() bool {
	info, err := os.Stat(s.Path)
	return err == nil && !info.IsDir()
}

func (s *FileStore) Get() (domain.Collection, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, &domain.CacheMissingError{Path: s.Path, Cause: err}
	}
	comments, err := domain.DecodeCollection(data)
	if err != nil {
		return nil, &domain.CacheMissingError{Path: s.Path, Cause: err}
	}
	return comments, nil
}

func (s *FileStore) Put(c domain.Collection) error {
	if c == nil {
		c = domain.Collection{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode comments: %w", err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".comments-*")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write cache: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write cache: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace cache %s: %w", s.Path, err)
	}
	return nil
}
