package core

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// LookupStatus is the outcome category stored with each audit entry.
type LookupStatus string

const (
	StatusFound       LookupStatus = "found"
	StatusNotFound    LookupStatus = "not_found"
	StatusEmptySource LookupStatus = "empty_source"
	StatusBusy        LookupStatus = "busy"
	StatusFailed      LookupStatus = "failed"
)

// LookupEntry is one row of the lookup audit log.
type LookupEntry struct {
	ID           string        `json:"id"`
	RequestID    string        `json:"requestId,omitempty"`
	CallerKind   string        `json:"callerKind,omitempty"`
	SearchValue  string        `json:"searchValue"`
	Mode         SearchMode    `json:"mode"`
	Status       LookupStatus  `json:"status"`
	CustomerName string        `json:"customerName,omitempty"`
	Error        string        `json:"error,omitempty"`
	IPAddress    string        `json:"ipAddress,omitempty"`
	UserAgent    string        `json:"userAgent,omitempty"`
	Duration     time.Duration `json:"-"`
	DurationMs   int64         `json:"durationMs"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// AuditStore persists lookup audit entries. The lookup path only writes to
// it; entries are never consulted when answering a lookup.
type AuditStore interface {
	InsertLookup(ctx context.Context, entry LookupEntry) error
	RecentLookups(ctx context.Context, limit int) ([]LookupEntry, error)
	PurgeLookupsOlderThan(ctx context.Context, days int) (int64, error)
}

// ErrAuditDisabled is returned by history queries when no store is configured.
var ErrAuditDisabled = errors.New("lookup audit log not found: auditing is disabled")

// statusFor maps a lookup result to its audit status.
func statusFor(out *Outcome, err error) LookupStatus {
	switch {
	case err == nil && out != nil && out.Found:
		return StatusFound
	case err == nil:
		return StatusNotFound
	case errors.Is(err, ErrEmptySource):
		return StatusEmptySource
	case errors.Is(err, ErrTooManyLookups):
		return StatusBusy
	default:
		return StatusFailed
	}
}

// recordLookup writes an audit entry. Failures are logged and swallowed so
// auditing can never change what the caller hears.
func (s *Service) recordLookup(ctx context.Context, id, searchValue string, out *Outcome, lookupErr error, took time.Duration) {
	if s.audit == nil {
		return
	}

	entry := LookupEntry{
		ID:          id,
		RequestID:   middleware.GetReqID(ctx),
		CallerKind:  CallerKindFromContext(ctx),
		SearchValue: searchValue,
		Mode:        ModeFor(searchValue),
		Status:      statusFor(out, lookupErr),
		IPAddress:   CallerIPFromContext(ctx),
		UserAgent:   UserAgentFromContext(ctx),
		Duration:    took,
		DurationMs:  took.Milliseconds(),
		CreatedAt:   time.Now().UTC(),
	}
	if out != nil && out.Found {
		entry.CustomerName = out.CustomerName
	}
	if lookupErr != nil {
		entry.Error = lookupErr.Error()
	}

	// The request context may already be cancelled once the reply is out.
	auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.auditTimeout)
	defer cancel()

	if err := s.audit.InsertLookup(auditCtx, entry); err != nil {
		slog.Warn("lookup audit insert failed",
			"lookup_id", id,
			"error", err,
		)
	}
}
