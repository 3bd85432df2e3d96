package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chachabrian/delivery-backend/internal/config"
	"github.com/chachabrian/delivery-backend/internal/database"
	"github.com/chachabrian/delivery-backend/internal/router"
	"github.com/chachabrian/delivery-backend/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.Config {
	return config.Config{
		Port:       "0",
		LogLevel:   "error",
		BcryptCost: 4,
		Database:   config.DatabaseConfig{Driver: config.DriverSQLite, Path: database.MemoryPath},
		Storage: config.StorageConfig{
			Backend:   config.StorageLocal,
			UploadDir: t.TempDir(),
			BaseURL:   "http://localhost:8080",
		},
	}
}

func TestBuildDependencies(t *testing.T) {
	deps, cleanup, err := buildDependencies(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer cleanup()

	assert.NotNil(t, deps.DB)
	assert.NotNil(t, deps.Hub)
	assert.IsType(t, &storage.LocalStore{}, deps.Storage)
	assert.Len(t, deps.Notifier, 1)

	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	router.New(deps).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBuildDependencies_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "unknown driver",
			mutate: func(c *config.Config) { c.Database.Driver = "oracle" },
			want:   "failed to initialize database",
		},
		{
			name:   "s3 without credentials",
			mutate: func(c *config.Config) { c.Storage.Backend = config.StorageS3 },
			want:   "failed to initialize storage",
		},
		{
			name:   "bad redis url",
			mutate: func(c *config.Config) { c.Redis.URL = "not-a-url" },
			want:   "failed to parse Redis URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(&cfg)

			_, _, err := buildDependencies(context.Background(), cfg)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])
}
