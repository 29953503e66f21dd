package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JonMunkholm/customerlookup/internal/config"
	"github.com/JonMunkholm/customerlookup/internal/logging"
	"github.com/google/uuid"
)

var (
	// ErrMissingSearchValue is returned when the caller supplied no phone or email.
	ErrMissingSearchValue = errors.New("search value is required")

	// ErrFetch wraps any failure to obtain the sheet text.
	ErrFetch = errors.New("sheet fetch failed")
)

// DefaultAuditTimeout bounds a single audit insert.
const DefaultAuditTimeout = 3 * time.Second

// Source supplies the raw CSV text of the customer sheet. Implementations
// live in the source package; the core never performs I/O itself.
type Source interface {
	Fetch(ctx context.Context) (string, error)
	Describe() string
}

// Service answers customer lookups. It holds no sheet data between calls:
// every Lookup fetches, parses and matches on its own Table.
type Service struct {
	source       Source
	audit        AuditStore
	limiter      *LookupLimiter
	auditTimeout time.Duration
}

// NewService creates a Service. audit may be nil to disable the audit log.
func NewService(src Source, audit AuditStore, cfg config.LookupConfig) (*Service, error) {
	if src == nil {
		return nil, errors.New("lookup service: source is required")
	}

	auditTimeout := cfg.AuditTimeout
	if auditTimeout <= 0 {
		auditTimeout = DefaultAuditTimeout
	}

	return &Service{
		source:       src,
		audit:        audit,
		limiter:      NewLookupLimiter(cfg.MaxConcurrent, cfg.MaxWaitTime),
		auditTimeout: auditTimeout,
	}, nil
}

// Outcome is the result of a completed lookup.
type Outcome struct {
	ID            string        `json:"id"`
	SearchValue   string        `json:"searchValue"`
	Mode          SearchMode    `json:"mode"`
	Found         bool          `json:"found"`
	CustomerName  string        `json:"customerName,omitempty"`
	CustomerEmail string        `json:"customerEmail,omitempty"`
	Record        Record        `json:"record,omitempty"`
	Columns       ColumnIndex   `json:"columns"`
	SheetRows     int           `json:"sheetRows"`
	Duration      time.Duration `json:"-"`
}

// Lookup fetches the sheet and finds the customer matching searchValue.
//
// A missing customer is not an error: the Outcome has Found=false. Errors are
// ErrMissingSearchValue, ErrTooManyLookups, ErrEmptySource (wrapped), ErrFetch
// (wrapped) or a context error.
func (s *Service) Lookup(ctx context.Context, searchValue string) (*Outcome, error) {
	searchValue = strings.TrimSpace(searchValue)
	if searchValue == "" {
		return nil, ErrMissingSearchValue
	}

	id := uuid.NewString()
	start := time.Now()
	logger := logging.WithFields(ctx,
		"lookup_id", id,
		"mode", ModeFor(searchValue),
	)

	out, err := s.lookup(ctx, id, searchValue)
	took := time.Since(start)
	if out != nil {
		out.Duration = took
	}

	s.recordLookup(ctx, id, searchValue, out, err, took)

	switch {
	case err != nil:
		logger.Warn("lookup failed", "error", err, "duration_ms", took.Milliseconds())
	case out.Found:
		logger.Info("customer found", "customer", out.CustomerName, "duration_ms", took.Milliseconds())
	default:
		logger.Info("new customer", "sheet_rows", out.SheetRows, "duration_ms", took.Milliseconds())
	}

	return out, err
}

func (s *Service) lookup(ctx context.Context, id, searchValue string) (*Outcome, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	text, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w from %s: %w", ErrFetch, s.source.Describe(), err)
	}

	table, err := BuildTable(text)
	if err != nil {
		return nil, fmt.Errorf("build table from %s: %w", s.source.Describe(), err)
	}

	m := FindRecord(table, searchValue)
	return &Outcome{
		ID:            id,
		SearchValue:   searchValue,
		Mode:          m.Mode,
		Found:         m.Found,
		CustomerName:  m.Name,
		CustomerEmail: m.Email,
		Record:        m.Record,
		Columns:       m.Columns,
		SheetRows:     len(table.Rows),
	}, nil
}

// SourceDescription names the configured sheet source for logs and health.
func (s *Service) SourceDescription() string {
	return s.source.Describe()
}

// LimiterStatus reports the fetch limiter state.
func (s *Service) LimiterStatus() LimiterStatus {
	return s.limiter.Status()
}

// WaitForLookups blocks until in-flight lookups finish or ctx is done.
func (s *Service) WaitForLookups(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
