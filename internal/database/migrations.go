package database

import (
	"github.com/chachabrian/delivery-backend/internal/models"
	"gorm.io/gorm"
)

// RunMigrations creates the users, riders and shipments tables if they don't exist.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Rider{},
		&models.Shipment{},
	)
}
