// Package admin provides maintenance operations on the lookup audit log.
package admin

import (
	"context"
	"fmt"
	"time"
)

// ResetTimeout is the maximum duration for a maintenance operation.
const ResetTimeout = 30 * time.Second

// AuditMaintainer is the part of the audit store that maintenance needs.
// database.LookupStore implements it.
type AuditMaintainer interface {
	EnsureSchema(ctx context.Context) error
	PurgeLookupsOlderThan(ctx context.Context, days int) (int64, error)
	ResetLookups(ctx context.Context) error
}

// Maintenance runs audit maintenance with a bounded duration.
type Maintenance struct {
	Store   AuditMaintainer
	Timeout time.Duration
}

type resetFn func(ctx context.Context) error

// Purge deletes audit entries older than days and returns how many were
// removed.
func (m *Maintenance) Purge(ctx context.Context, days int) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout())
	defer cancel()

	if err := m.Store.EnsureSchema(ctx); err != nil {
		return 0, err
	}
	return m.Store.PurgeLookupsOlderThan(ctx, days)
}

// ResetAll empties the audit log.
// This is a destructive operation - use with caution.
func (m *Maintenance) ResetAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout())
	defer cancel()

	return m.runResets(ctx, []resetFn{
		m.Store.EnsureSchema,
		m.Store.ResetLookups,
	})
}

func (m *Maintenance) runResets(ctx context.Context, resets []resetFn) error {
	for _, reset := range resets {
		if err := reset(ctx); err != nil {
			return fmt.Errorf("reset audit log: %w", err)
		}
	}
	return nil
}

func (m *Maintenance) timeout() time.Duration {
	if m.Timeout > 0 {
		return m.Timeout
	}
	return ResetTimeout
}
