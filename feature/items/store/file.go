package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"catalog/feature/items/models"
)

// FileStore keeps the collection as a JSON array in a local file.
type FileStore struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// NewFileStore creates a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// List reads and decodes the whole file.
func (s *FileStore) List(ctx context.Context) ([]models.Item, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	return decodeItems(data)
}

// ModTime returns the file modification time.
func (s *FileStore) ModTime(ctx context.Context) (time.Time, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return time.Time{}, ErrNotFound
		}
		return time.Time{}, fmt.Errorf("failed to stat %s: %w", s.path, err)
	}
	return info.ModTime(), nil
}

// Append adds item to the file, creating it when missing.
func (s *FileStore) Append(ctx context.Context, item models.Item) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.List(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return models.Item{}, err
	}

	item.ID = nextID(s.now(), maxItemID(items))
	items = append(items, item)

	if err := s.write(items); err != nil {
		return models.Item{}, err
	}
	return item, nil
}

// write replaces the file atomically through a temporary sibling.
func (s *FileStore) write(items []models.Item) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := encodeItems(items)
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}
