package core

// retention.go runs the background job that drops old reports.
//
// The job runs once at start and then every CheckInterval until its context
// ends. A failed run is logged and retried on the next tick.

import (
	"context"
	"log/slog"
	"time"
)

// RetentionConfig controls report expiry. A zero MaxAge keeps reports
// forever and StartRetentionScheduler returns immediately.
type RetentionConfig struct {
	MaxAge        time.Duration
	CheckInterval time.Duration
}

// StartRetentionScheduler blocks, pruning reports older than cfg.MaxAge,
// until ctx is cancelled. Run it in its own goroutine.
func (s *Service) StartRetentionScheduler(ctx context.Context, cfg RetentionConfig) {
	if cfg.MaxAge <= 0 {
		return
	}
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = time.Hour
	}

	slog.Info("retention scheduler started",
		"max_age", cfg.MaxAge.String(),
		"interval", cfg.CheckInterval.String(),
	)

	s.runRetentionJob(ctx, cfg.MaxAge)

	ticker := time.NewTicker(cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("retention scheduler stopped")
			return
		case <-ticker.C:
			s.runRetentionJob(ctx, cfg.MaxAge)
		}
	}
}

func (s *Service) runRetentionJob(ctx context.Context, maxAge time.Duration) {
	start := time.Now()
	removed, err := s.Prune(ctx, maxAge)
	if err != nil {
		slog.Error("retention job failed", "error", err)
		return
	}
	slog.Info("retention job completed",
		"reports_removed", removed,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
