package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/emanuelbartolo/BoardGameApp/internal/di"
	"github.com/emanuelbartolo/BoardGameApp/internal/handler"
	"github.com/emanuelbartolo/BoardGameApp/migrations"
	"github.com/emanuelbartolo/BoardGameApp/pkg/config"
	"github.com/emanuelbartolo/BoardGameApp/pkg/database"
	"github.com/emanuelbartolo/BoardGameApp/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logLevel := "info"
	if cfg.App.Debug {
		logLevel = "debug"
	}
	if err := logger.Init(&logger.Config{
		Level:       logLevel,
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
		OutputPath:  "stdout",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg); err != nil {
		logger.Fatal("service terminated", zap.Error(err))
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(cfg.Database.URL(), migrations.FS); err != nil {
		return err
	}
	logger.Info("database migrations applied")

	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	router := handler.SetupRouter(&handler.RouterConfig{
		Groups:     container.GroupHandler,
		Shortlist:  container.ShortlistHandler,
		Events:     container.EventHandler,
		Polls:      container.PollHandler,
		Wishlists:  container.WishlistHandler,
		Health:     container.HealthHandler,
		GroupSvc:   container.GroupService,
		JWTSecret:  cfg.Auth.JWTSecret,
		CORSOrigin: []string{"*"},
		Debug:      cfg.App.Debug,
	})

	srv := &http.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:     router,
		ReadTimeout: cfg.Server.ReadTimeout,
		// Write timeout would cut long-lived SSE streams; idle timeout
		// still reaps dead connections.
		IdleTimeout: cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
