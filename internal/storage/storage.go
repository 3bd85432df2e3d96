package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/chachabrian/delivery-backend/internal/config"
	"github.com/google/uuid"
)

// Folders used for uploaded images.
const (
	FolderUsers     = "users"
	FolderRiders    = "riders"
	FolderShipments = "shipments"
)

// Object identifies an uploaded blob.
type Object struct {
	Key string
	URL string
}

// Store uploads image bytes and returns a publicly fetchable URL.
type Store interface {
	Put(ctx context.Context, folder, filename string, data []byte, contentType string) (Object, error)
	Delete(ctx context.Context, key string) error
}

// New builds the backend selected by cfg.Backend.
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case config.StorageLocal, "":
		return NewLocalStore(cfg.UploadDir, cfg.BaseURL)
	case config.StorageS3:
		return NewS3Store(cfg.S3)
	case config.StorageFirebase:
		return NewFirebaseStore(ctx, cfg.Firebase)
	case config.StorageMinio:
		store, err := NewMinioStore(cfg.Minio)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("ensure minio bucket: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}

// objectKey builds a collision-free key, keeping the original extension.
func objectKey(folder, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join(folder, uuid.NewString()+ext)
}

func requireFields(backend string, fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return errors.New(backend + " storage is missing " + strings.Join(missing, ", "))
	}
	return nil
}
