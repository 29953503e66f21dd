package database

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/JonMunkholm/customerlookup/internal/core"
)

//go:embed schema.sql
var schemaSQL string

// LookupStore implements core.AuditStore on Postgres.
type LookupStore struct {
	db DBTX
	q  *Queries
}

var _ core.AuditStore = (*LookupStore)(nil)

// NewLookupStore wraps a pool or transaction.
func NewLookupStore(db DBTX) *LookupStore {
	return &LookupStore{db: db, q: New(db)}
}

// EnsureSchema creates the audit table and indexes if they are missing.
func (s *LookupStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create lookup_audit schema: %w", err)
	}
	return nil
}

// InsertLookup writes one audit row.
func (s *LookupStore) InsertLookup(ctx context.Context, entry core.LookupEntry) error {
	if _, err := s.q.InsertLookupAudit(ctx, insertParams(entry)); err != nil {
		return fmt.Errorf("insert lookup audit %s: %w", entry.ID, err)
	}
	return nil
}

// RecentLookups returns the newest entries first.
func (s *LookupStore) RecentLookups(ctx context.Context, limit int) ([]core.LookupEntry, error) {
	if limit <= 0 {
		limit = core.DefaultHistoryLimit
	}

	rows, err := s.q.ListRecentLookupAudit(ctx, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("list lookup audit: %w", err)
	}

	entries := make([]core.LookupEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToEntry(row))
	}
	return entries, nil
}

// PurgeLookupsOlderThan deletes entries older than days and returns the
// number removed.
func (s *LookupStore) PurgeLookupsOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, fmt.Errorf("purge lookup audit: retention must be positive, got %d days", days)
	}

	n, err := s.q.DeleteLookupAuditBefore(ctx, int32(days))
	if err != nil {
		return 0, fmt.Errorf("purge lookup audit: %w", err)
	}
	return n, nil
}

// ResetLookups removes every audit entry.
func (s *LookupStore) ResetLookups(ctx context.Context) error {
	if err := s.q.ResetLookupAudit(ctx); err != nil {
		return fmt.Errorf("reset lookup audit: %w", err)
	}
	return nil
}

func insertParams(e core.LookupEntry) InsertLookupAuditParams {
	return InsertLookupAuditParams{
		ID:           ToPgUUID(e.ID),
		RequestID:    ToPgText(e.RequestID),
		CallerKind:   ToPgText(e.CallerKind),
		SearchValue:  e.SearchValue,
		Mode:         string(e.Mode),
		Status:       string(e.Status),
		CustomerName: ToPgText(e.CustomerName),
		Error:        ToPgText(e.Error),
		IpAddress:    ToInetAddr(e.IPAddress),
		UserAgent:    ToPgText(e.UserAgent),
		DurationMs:   e.DurationMs,
	}
}

func rowToEntry(row LookupAudit) core.LookupEntry {
	e := core.LookupEntry{
		ID:           PgUUIDToString(row.ID),
		RequestID:    row.RequestID.String,
		CallerKind:   row.CallerKind.String,
		SearchValue:  row.SearchValue,
		Mode:         core.SearchMode(row.Mode),
		Status:       core.LookupStatus(row.Status),
		CustomerName: row.CustomerName.String,
		Error:        row.Error.String,
		UserAgent:    row.UserAgent.String,
		Duration:     time.Duration(row.DurationMs) * time.Millisecond,
		DurationMs:   row.DurationMs,
	}
	if row.IpAddress != nil {
		e.IPAddress = row.IpAddress.String()
	}
	if row.CreatedAt.Valid {
		e.CreatedAt = row.CreatedAt.Time
	}
	return e
}
