package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/chachabrian/delivery-backend/internal/models"
	"github.com/chachabrian/delivery-backend/internal/storage"
	"gorm.io/gorm"
)

type RegisterUserInput struct {
	Name     string
	Phone    string
	Password string
	Address  string
	GPS      string
	Image    Image
}

type UserService struct {
	db      *gorm.DB
	storage storage.Store
	hasher  PasswordHasher
}

func NewUserService(db *gorm.DB, store storage.Store, hasher PasswordHasher) *UserService {
	return &UserService{db: db, storage: store, hasher: hasher}
}

// Register stores a new user and returns the URL of their uploaded photo.
func (s *UserService) Register(ctx context.Context, in RegisterUserInput) (string, error) {
	taken, err := phoneTaken(ctx, s.db, &models.User{}, in.Phone)
	if err != nil {
		return "", fmt.Errorf("check phone: %w", err)
	}
	if taken {
		return "", ErrPhoneInUse
	}

	hashed, err := hashPassword(s.hasher, in.Password)
	if err != nil {
		return "", err
	}

	obj, err := upload(ctx, s.storage, storage.FolderUsers, in.Image)
	if err != nil {
		return "", err
	}

	user := models.User{
		Name:     in.Name,
		Phone:    in.Phone,
		Password: hashed,
		Address:  in.Address,
		GPS:      in.GPS,
		Image:    obj.URL,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		discardObject(ctx, s.storage, obj)
		if isDuplicateKey(err) {
			return "", ErrPhoneInUse
		}
		return "", fmt.Errorf("insert user: %w", err)
	}

	return obj.URL, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("uid").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Authenticate returns the user owning phone if password matches.
func (s *UserService) Authenticate(ctx context.Context, phone, password string) (models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}

	if err := s.hasher.Compare(user.Password, password); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// SearchByPhone returns users whose phone contains partial, never including excludeUID.
func (s *UserService) SearchByPhone(ctx context.Context, partial string, excludeUID uint) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Where(`phone LIKE ? ESCAPE '\' AND uid <> ?`, "%"+escapeLike(partial)+"%", excludeUID).
		Order("uid").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrNotFound
	}
	return users, nil
}
