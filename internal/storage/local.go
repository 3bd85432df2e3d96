package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes uploads under a directory that the router serves at /uploads.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("local storage directory is required")
	}
	for _, folder := range []string{FolderUsers, FolderRiders, FolderShipments} {
		if err := os.MkdirAll(filepath.Join(dir, folder), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir returns the directory holding uploaded files.
func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) Put(_ context.Context, folder, filename string, data []byte, _ string) (Object, error) {
	key := objectKey(folder, filename)
	filePath := filepath.Join(s.dir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return Object{}, fmt.Errorf("failed to create folder directory: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return Object{}, fmt.Errorf("failed to save file: %w", err)
	}

	return Object{Key: key, URL: fmt.Sprintf("%s/uploads/%s", s.baseURL, key)}, nil
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	filePath := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.Remove(filePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
