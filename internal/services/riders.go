package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/chachabrian/delivery-backend/internal/models"
	"github.com/chachabrian/delivery-backend/internal/storage"
	"gorm.io/gorm"
)

type RegisterRiderInput struct {
	Name                string
	Phone               string
	Password            string
	VehicleRegistration string
	Image               Image
}

type RiderService struct {
	db      *gorm.DB
	storage storage.Store
	hasher  PasswordHasher
}

func NewRiderService(db *gorm.DB, store storage.Store, hasher PasswordHasher) *RiderService {
	return &RiderService{db: db, storage: store, hasher: hasher}
}

func (s *RiderService) Register(ctx context.Context, in RegisterRiderInput) (string, error) {
	taken, err := phoneTaken(ctx, s.db, &models.Rider{}, in.Phone)
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

	obj, err := upload(ctx, s.storage, storage.FolderRiders, in.Image)
	if err != nil {
		return "", err
	}

	rider := models.Rider{
		Name:                in.Name,
		Phone:               in.Phone,
		Password:            hashed,
		VehicleRegistration: in.VehicleRegistration,
		Image:               obj.URL,
	}
	if err := s.db.WithContext(ctx).Create(&rider).Error; err != nil {
		discardObject(ctx, s.storage, obj)
		if isDuplicateKey(err) {
			return "", ErrPhoneInUse
		}
		return "", fmt.Errorf("insert rider: %w", err)
	}

	return obj.URL, nil
}

func (s *RiderService) List(ctx context.Context) ([]models.Rider, error) {
	var riders []models.Rider
	if err := s.db.WithContext(ctx).Order("rid").Find(&riders).Error; err != nil {
		return nil, err
	}
	return riders, nil
}

func (s *RiderService) Authenticate(ctx context.Context, phone, password string) (models.Rider, error) {
	var rider models.Rider
	if err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&rider).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Rider{}, ErrNotFound
		}
		return models.Rider{}, err
	}

	if err := s.hasher.Compare(rider.Password, password); err != nil {
		return models.Rider{}, ErrInvalidCredentials
	}

	return rider, nil
}

func (s *RiderService) GetByID(ctx context.Context, rid uint) (models.Rider, error) {
	var rider models.Rider
	if err := s.db.WithContext(ctx).First(&rider, rid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Rider{}, ErrNotFound
		}
		return models.Rider{}, err
	}
	return rider, nil
}
