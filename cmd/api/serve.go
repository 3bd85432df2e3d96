package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/chachabrian/delivery-backend/internal/config"
	"github.com/chachabrian/delivery-backend/internal/database"
	"github.com/chachabrian/delivery-backend/internal/logger"
	"github.com/chachabrian/delivery-backend/internal/router"
	"github.com/chachabrian/delivery-backend/internal/services"
	"github.com/chachabrian/delivery-backend/internal/storage"
	"github.com/chachabrian/delivery-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, cleanup, err := buildDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.New(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infow("server listening", "addr", srv.Addr, "db_driver", cfg.Database.Driver, "storage", cfg.Storage.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// buildDependencies opens the store, the blob backend and the event fan-out.
// cleanup releases what was opened and stops the websocket hub.
func buildDependencies(ctx context.Context, cfg config.Config) (router.Dependencies, func(), error) {
	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return router.Dependencies{}, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return router.Dependencies{}, nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		_ = sqlDB.Close()
		return router.Dependencies{}, nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	hubCtx, stopHub := context.WithCancel(ctx)
	hub := services.NewHub()
	go hub.Run(hubCtx)

	notifiers := services.Notifiers{hub}
	var publisher *services.RedisPublisher
	if cfg.Redis.URL != "" {
		publisher, err = services.NewRedisPublisher(ctx, cfg.Redis.URL)
		if err != nil {
			stopHub()
			_ = sqlDB.Close()
			return router.Dependencies{}, nil, err
		}
		notifiers = append(notifiers, publisher)
	}
	if cfg.Push.Topic != "" {
		push, err := services.NewPushNotifier(ctx, cfg.Push)
		if err != nil {
			logger.Log.Warnw("push notifications disabled", "error", err)
		} else {
			notifiers = append(notifiers, push)
		}
	}

	cleanup := func() {
		stopHub()
		if publisher != nil {
			_ = publisher.Close()
		}
		if err := sqlDB.Close(); err != nil {
			logger.Log.Warnw("failed to close database", "error", err)
		}
	}

	return router.Dependencies{
		DB:       db,
		Storage:  store,
		Hub:      hub,
		Notifier: notifiers,
		Hasher:   utils.NewBcryptHasher(cfg.BcryptCost),
	}, cleanup, nil
}
