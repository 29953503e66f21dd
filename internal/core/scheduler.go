package core

// scheduler.go runs the lookup audit retention job.
//
// Audit rows contain caller phone numbers and emails, so they are kept only
// for RetentionDays. The job is long-running and context-aware; a failed
// purge is logged and retried on the next tick.

import (
	"context"
	"log/slog"
	"time"
)

// RetentionConfig controls the audit purge job.
type RetentionConfig struct {
	RetentionDays int           // Days to keep lookup audit rows (default: 30)
	CheckInterval time.Duration // How often to purge (default: 24h)
}

func (c RetentionConfig) withDefaults() RetentionConfig {
	if c.RetentionDays <= 0 {
		c.RetentionDays = 30
	}
	if c.CheckInterval <= 0 {
		c.CheckInterval = 24 * time.Hour
	}
	return c
}

// StartRetentionScheduler purges old audit rows immediately and then every
// CheckInterval until ctx is cancelled. It returns at once when auditing is
// disabled.
func (s *Service) StartRetentionScheduler(ctx context.Context, cfg RetentionConfig) {
	if s.audit == nil {
		return
	}
	cfg = cfg.withDefaults()

	slog.Info("audit retention scheduler started",
		"retention_days", cfg.RetentionDays,
		"interval", cfg.CheckInterval.String(),
	)

	s.runRetentionJob(ctx, cfg)

	ticker := time.NewTicker(cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("audit retention scheduler stopped")
			return
		case <-ticker.C:
			s.runRetentionJob(ctx, cfg)
		}
	}
}

// runRetentionJob performs one purge cycle.
func (s *Service) runRetentionJob(ctx context.Context, cfg RetentionConfig) {
	start := time.Now()

	purged, err := s.audit.PurgeLookupsOlderThan(ctx, cfg.RetentionDays)
	if err != nil {
		slog.Error("audit purge failed", "error", err)
		return
	}

	slog.Info("purged lookup audit entries",
		"entries_purged", purged,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
