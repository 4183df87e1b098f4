// Package main запускает HTTP-сервер сервиса химчистки.
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
	"golang.org/x/sync/errgroup"

	"github.com/shoaib7080/dirtoff-backend/internal/config"
	"github.com/shoaib7080/dirtoff-backend/internal/customerapi"
	"github.com/shoaib7080/dirtoff-backend/internal/handler"
	"github.com/shoaib7080/dirtoff-backend/internal/middleware"
	"github.com/shoaib7080/dirtoff-backend/internal/repository"
	"github.com/shoaib7080/dirtoff-backend/internal/service"
)

const shutdownTimeout = 5 * time.Second

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Parse()
	if err != nil {
		logger.Fatal("configuration error", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("application terminated with error", zap.Error(err))
	}
}

func newService(cfg *config.Config, logger *zap.Logger) (*service.Service, error) {
	repo, err := repository.NewPostgresRepository(cfg.DatabaseURI)
	if err != nil {
		return nil, fmt.Errorf("database initialization: %w", err)
	}

	opts := []service.Option{service.WithStatsTimeout(cfg.StatsRecomputeTimeout)}
	if cfg.CustomerServiceAddress != "" {
		logger.Info("using external customer directory", zap.String("addr", cfg.CustomerServiceAddress))
		opts = append(opts, service.WithCustomerDirectory(customerapi.NewClient(cfg.CustomerServiceAddress)))
	}

	return service.NewService(repo, logger, opts...), nil
}

// run поднимает сервис и блокируется до отмены ctx или ошибки сервера.
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	svc, err := newService(cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminPhone); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	if cfg.AuthSecret == "" {
		logger.Warn("AUTH_SECRET is not set, issued tokens will not survive a restart")
	}
	h := handler.NewHandler(svc, logger, middleware.NewAuthMiddleware(cfg.AuthSecret), cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           h.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		svc.RunStatsRefresher(ctx, cfg.StatsRefreshInterval)
		return nil
	})

	g.Go(func() error {
		logger.Info("starting dirtoff server", zap.String("addr", cfg.RunAddress))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}
