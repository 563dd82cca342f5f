package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/orderpay/schedule/internal/domain"
	"github.com/orderpay/schedule/internal/schedule"
)

// FileStore keeps one JSON file per month in a directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// DefaultDir returns ~/.orderpay.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".orderpay"), nil
}

func (s *FileStore) path(month schedule.MonthKey) string {
	return filepath.Join(s.dir, Key(month)+".json")
}

// Fetch returns nil when nothing was stored for month yet.
func (s *FileStore) Fetch(_ context.Context, month schedule.MonthKey) ([]domain.DayRecord, error) {
	data, err := os.ReadFile(s.path(month))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", s.path(month), err)
	}
	return decode(month, data)
}

// Push atomically replaces the month file.
func (s *FileStore) Push(_ context.Context, month schedule.MonthKey, records []domain.DayRecord) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}

	path := s.path(month)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}
