package core

import "context"

// DefaultHistoryLimit and MaxHistoryLimit bound RecentLookups.
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

// AuditEnabled reports whether lookups are being recorded.
func (s *Service) AuditEnabled() bool {
	return s.audit != nil
}

// RecentLookups returns the newest audit entries, newest first.
// Returns ErrAuditDisabled when no audit store is configured.
func (s *Service) RecentLookups(ctx context.Context, limit int) ([]LookupEntry, error) {
	if s.audit == nil {
		return nil, ErrAuditDisabled
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	return s.audit.RecentLookups(ctx, limit)
}
