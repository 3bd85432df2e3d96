package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chachabrian/delivery-backend/internal/logger"
	"github.com/chachabrian/delivery-backend/internal/storage"
	"github.com/chachabrian/delivery-backend/pkg/utils"
	"gorm.io/gorm"
)

var (
	// ErrPhoneInUse is returned when registering a phone number that already exists.
	ErrPhoneInUse = errors.New("phone number already in use")
	// ErrNotFound is returned when a lookup matches no records.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials is returned when a password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPasswordTooLong is returned when a password exceeds the hasher's limit.
	ErrPasswordTooLong = errors.New("password too long")
	// ErrUpload wraps blob store failures.
	ErrUpload = errors.New("image upload failed")
)

// PasswordHasher hashes passwords and compares them against stored hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// Image is an uploaded photo that has already passed type and size checks.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

func hashPassword(hasher PasswordHasher, password string) (string, error) {
	hashed, err := hasher.Hash(password)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: limit is %d bytes", ErrPasswordTooLong, utils.MaxPasswordBytes)
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hashed, nil
}

func upload(ctx context.Context, store storage.Store, folder string, img Image) (storage.Object, error) {
	obj, err := store.Put(ctx, folder, img.Filename, img.Data, img.ContentType)
	if err != nil {
		return storage.Object{}, fmt.Errorf("%w: %v", ErrUpload, err)
	}
	return obj, nil
}

// discardObject removes a blob whose database row was never written.
func discardObject(ctx context.Context, store storage.Store, obj storage.Object) {
	if err := store.Delete(context.WithoutCancel(ctx), obj.Key); err != nil {
		logger.Log.Warnw("failed to remove orphaned image", "key", obj.Key, "error", err)
	}
}

// phoneTaken reports whether model's table already holds phone.
func phoneTaken(ctx context.Context, db *gorm.DB, model any, phone string) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where("phone = ?", phone).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "SQLSTATE 23505")
}

// escapeLike escapes LIKE wildcards so s matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
