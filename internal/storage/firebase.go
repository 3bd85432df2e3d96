package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/chachabrian/delivery-backend/internal/config"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// downloadTokenKey is the object metadata key Firebase reads download tokens from.
const downloadTokenKey = "firebaseStorageDownloadTokens"

// FirebaseStore uploads to a Firebase Storage bucket and returns token download URLs.
type FirebaseStore struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

func NewFirebaseStore(ctx context.Context, cfg config.FirebaseConfig) (*FirebaseStore, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("firebase storage bucket is required")
	}

	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsFile) != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: cfg.Bucket}, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting storage client: %w", err)
	}

	bucket, err := client.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("error opening storage bucket: %w", err)
	}

	return &FirebaseStore{bucket: bucket, bucketName: cfg.Bucket}, nil
}

func (s *FirebaseStore) Put(ctx context.Context, folder, filename string, data []byte, contentType string) (Object, error) {
	key := objectKey(folder, filename)
	token := uuid.NewString()

	w := s.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{downloadTokenKey: token}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return Object{}, fmt.Errorf("failed to upload to firebase: %w", err)
	}
	if err := w.Close(); err != nil {
		return Object{}, fmt.Errorf("failed to upload to firebase: %w", err)
	}

	return Object{Key: key, URL: firebaseDownloadURL(s.bucketName, key, token)}, nil
}

func (s *FirebaseStore) Delete(ctx context.Context, key string) error {
	err := s.bucket.Object(key).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil
	}
	return err
}

func firebaseDownloadURL(bucket, key, token string) string {
	return fmt.Sprintf(
		"https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		bucket,
		url.PathEscape(key),
		url.QueryEscape(token),
	)
}
