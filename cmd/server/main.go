package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/JonMunkholm/brfss/internal/codebook"
	"github.com/JonMunkholm/brfss/internal/config"
	"github.com/JonMunkholm/brfss/internal/core"
	"github.com/JonMunkholm/brfss/internal/logging"
	"github.com/JonMunkholm/brfss/internal/validation"
	"github.com/JonMunkholm/brfss/internal/web"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg.Database)
	if err != nil {
		slog.Error("failed to open report store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	engine := validation.NewEngine(codebook.Default(), validation.Options{
		Workers:           cfg.Validation.Workers,
		ParallelThreshold: cfg.Validation.ParallelThreshold,
		MaxYear:           cfg.Validation.MaxYear,
	})
	service := core.NewService(store, engine, core.ServiceOptions{
		MaxFileSize:   int64(cfg.Upload.MaxFileSize),
		MaxConcurrent: cfg.Upload.MaxConcurrent,
		MaxWait:       cfg.Upload.MaxWaitTime,
	})

	server := web.NewServer(service, *cfg)
	defer server.Close()

	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()
	go service.StartRetentionScheduler(jobCtx, core.RetentionConfig{
		MaxAge:        cfg.Retention.MaxAge,
		CheckInterval: cfg.Retention.CheckInterval,
	})

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if active := service.UploadLimiterStatus().Active; active > 0 {
			slog.Info("waiting for validations to complete", "active", active)
			if err := service.WaitForUploads(shutdownCtx); err != nil {
				slog.Warn("validations did not complete in time", "error", err)
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openStore picks Postgres when a database URL is configured and the
// in-memory store otherwise.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (core.Store, func(), error) {
	if !cfg.Enabled() {
		slog.Warn("DATABASE_URL not set, reports are kept in memory only")
		store := core.NewMemoryStore()
		return store, store.Close, nil
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, nil, err
	}
	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	store := core.NewPostgresStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, nil, err
	}

	if u, err := url.Parse(cfg.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	}
	return store, store.Close, nil
}
