package database

import (
	"path/filepath"
	"testing"

	"github.com/chachabrian/delivery-backend/internal/config"
	"github.com/chachabrian/delivery-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, err := InitDB(config.DatabaseConfig{Driver: config.DriverSQLite, Path: MemoryPath})
	require.NoError(t, err)

	for _, model := range []any{&models.User{}, &models.Rider{}, &models.Shipment{}} {
		assert.True(t, db.Migrator().HasTable(model))
	}
}

func TestInitDB_FileDatabasePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "delivery.db")
	cfg := config.DatabaseConfig{Driver: config.DriverSQLite, Path: path}

	db, err := InitDB(cfg)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{Name: "Ann", Phone: "0800000001", Password: "x"}).Error)
	sqlDB, _ := db.DB()
	require.NoError(t, sqlDB.Close())

	reopened, err := InitDB(cfg)
	require.NoError(t, err)

	var count int64
	require.NoError(t, reopened.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPhoneUniqueIndex(t *testing.T) {
	db, err := InitDB(config.DatabaseConfig{Driver: config.DriverSQLite, Path: MemoryPath})
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Rider{Name: "R1", Phone: "0811111111", Password: "x"}).Error)
	err = db.Create(&models.Rider{Name: "R2", Phone: "0811111111", Password: "y"}).Error

	assert.Error(t, err)
}

func TestDialector(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.DatabaseConfig
		want    string
		wantErr bool
	}{
		{name: "sqlite", cfg: config.DatabaseConfig{Driver: config.DriverSQLite, Path: "x.db"}, want: "sqlite"},
		{name: "default driver", cfg: config.DatabaseConfig{Path: "x.db"}, want: "sqlite"},
		{name: "postgres", cfg: config.DatabaseConfig{Driver: config.DriverPostgres}, want: "postgres"},
		{name: "unknown", cfg: config.DatabaseConfig{Driver: "oracle"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialector, err := Dialector(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, dialector.Name())
		})
	}
}
