package database

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/customerlookup/internal/core"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// fakeDB records statements and returns canned results.
type fakeDB struct {
	execSQL  []string
	execArgs [][]interface{}
	tag      pgconn.CommandTag
	err      error
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	f.execArgs = append(f.execArgs, args)
	return f.tag, f.err
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return nil, f.err
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return errRow{err: f.err}
}

type errRow struct{ err error }

func (r errRow) Scan(dest ...any) error { return r.err }

func TestEnsureSchema(t *testing.T) {
	db := &fakeDB{}
	if err := NewLookupStore(db).EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	if len(db.execSQL) != 1 || !strings.Contains(db.execSQL[0], "CREATE TABLE IF NOT EXISTS lookup_audit") {
		t.Errorf("EnsureSchema() executed %v", db.execSQL)
	}
}

func TestPurgeLookupsOlderThan(t *testing.T) {
	db := &fakeDB{tag: pgconn.NewCommandTag("DELETE 7")}
	store := NewLookupStore(db)

	n, err := store.PurgeLookupsOlderThan(context.Background(), 30)
	if err != nil {
		t.Fatalf("PurgeLookupsOlderThan() error = %v", err)
	}
	if n != 7 {
		t.Errorf("purged = %d, want 7", n)
	}
	if got := db.execArgs[0][0]; got != int32(30) {
		t.Errorf("days arg = %v, want 30", got)
	}

	if _, err := store.PurgeLookupsOlderThan(context.Background(), 0); err == nil {
		t.Error("PurgeLookupsOlderThan(0) expected error")
	}
	if len(db.execSQL) != 1 {
		t.Errorf("zero-day purge should not reach the database")
	}
}

func TestStore_ErrorsAreWrapped(t *testing.T) {
	cause := errors.New("connection reset")
	store := NewLookupStore(&fakeDB{err: cause})
	ctx := context.Background()

	if err := store.InsertLookup(ctx, core.LookupEntry{ID: "x"}); !errors.Is(err, cause) {
		t.Errorf("InsertLookup() error = %v, want wrapped cause", err)
	}
	if _, err := store.RecentLookups(ctx, 10); !errors.Is(err, cause) {
		t.Errorf("RecentLookups() error = %v, want wrapped cause", err)
	}
	if _, err := store.PurgeLookupsOlderThan(ctx, 1); !errors.Is(err, cause) {
		t.Errorf("PurgeLookupsOlderThan() error = %v, want wrapped cause", err)
	}
	if err := store.EnsureSchema(ctx); !errors.Is(err, cause) {
		t.Errorf("EnsureSchema() error = %v, want wrapped cause", err)
	}
}

func TestInsertParams_RoundTrip(t *testing.T) {
	entry := core.LookupEntry{
		ID:           "6f1c1c8e-2b7a-4a8e-9d3e-1f2a3b4c5d6e",
		RequestID:    "host/abc-000001",
		CallerKind:   "toolCall",
		SearchValue:  "(555) 123-4567",
		Mode:         core.ModePhone,
		Status:       core.StatusFound,
		CustomerName: "Ann Lee",
		IPAddress:    "10.0.0.7:51234",
		UserAgent:    "vapi/1.0",
		DurationMs:   42,
	}

	params := insertParams(entry)
	if !params.ID.Valid {
		t.Fatal("ID should be a valid UUID")
	}
	if params.Error.Valid {
		t.Error("empty Error should be NULL")
	}
	if params.IpAddress == nil || params.IpAddress.String() != "10.0.0.7" {
		t.Errorf("IpAddress = %v, want 10.0.0.7", params.IpAddress)
	}

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	row := LookupAudit{
		ID:           params.ID,
		RequestID:    params.RequestID,
		CallerKind:   params.CallerKind,
		SearchValue:  params.SearchValue,
		Mode:         params.Mode,
		Status:       params.Status,
		CustomerName: params.CustomerName,
		Error:        params.Error,
		IpAddress:    params.IpAddress,
		UserAgent:    params.UserAgent,
		DurationMs:   params.DurationMs,
		CreatedAt:    pgtype.Timestamptz{Time: created, Valid: true},
	}

	want := entry
	want.IPAddress = "10.0.0.7"
	want.Duration = 42 * time.Millisecond
	want.CreatedAt = created

	if diff := cmp.Diff(want, rowToEntry(row)); diff != "" {
		t.Errorf("rowToEntry() mismatch (-want +got):\n%s", diff)
	}
}

func TestConvert(t *testing.T) {
	if got := ToPgText("  "); got.Valid {
		t.Errorf("ToPgText(blank) = %+v, want NULL", got)
	}
	if got := ToPgText(" a "); got.String != "a" || !got.Valid {
		t.Errorf("ToPgText(a) = %+v", got)
	}
	if got := ToPgUUID("not-a-uuid"); got.Valid {
		t.Errorf("ToPgUUID(invalid) = %+v, want NULL", got)
	}
	if got := PgUUIDToString(pgtype.UUID{}); got != "" {
		t.Errorf("PgUUIDToString(NULL) = %q", got)
	}

	tests := []struct {
		in   string
		want string
	}{
		{"192.168.1.1", "192.168.1.1"},
		{"192.168.1.1:8080", "192.168.1.1"},
		{"[::1]:443", "::1"},
		{"2001:db8::1", "2001:db8::1"},
		{"", ""},
		{"unknown", ""},
	}
	for _, tt := range tests {
		got := ""
		if addr := ToInetAddr(tt.in); addr != nil {
			got = addr.String()
		}
		if got != tt.want {
			t.Errorf("ToInetAddr(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResetLookups(t *testing.T) {
	db := &fakeDB{}
	if err := NewLookupStore(db).ResetLookups(context.Background()); err != nil {
		t.Fatalf("ResetLookups() error = %v", err)
	}
	if len(db.execSQL) != 1 || !strings.Contains(db.execSQL[0], "TRUNCATE lookup_audit") {
		t.Errorf("ResetLookups() executed %v", db.execSQL)
	}

	db.err = errors.New("permission denied")
	err := NewLookupStore(db).ResetLookups(context.Background())
	if err == nil || !strings.Contains(err.Error(), "reset lookup audit") {
		t.Errorf("ResetLookups() error = %v, want wrapped reset error", err)
	}
}
