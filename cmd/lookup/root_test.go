package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/customerlookup/internal/config"
	"github.com/JonMunkholm/customerlookup/internal/core"
	"github.com/JonMunkholm/customerlookup/internal/source"
	"github.com/google/go-cmp/cmp"
)

const sheet = `"Full Name","Mobile Phone","Email Address"
"Ann Lee","(555) 123-4567","ann@example.com"
`

var lookupCfg = config.LookupConfig{MaxConcurrent: 1, MaxWaitTime: time.Second, MaxBodyBytes: 1024}

func TestRunFind(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		wantFound bool
		wantName  string
	}{
		{"phone", "555-123-4567", true, "Ann Lee"},
		{"email", "ANN@example.com", true, "Ann Lee"},
		{"unknown", "5550000000", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := runFind(context.Background(), &buf, source.StaticSource{Text: sheet}, lookupCfg, tt.value)
			if err != nil {
				t.Fatalf("runFind() error = %v", err)
			}

			var out core.Outcome
			if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
				t.Fatalf("output is not JSON: %v", err)
			}
			if out.Found != tt.wantFound {
				t.Errorf("Found = %v, want %v", out.Found, tt.wantFound)
			}
			if out.CustomerName != tt.wantName {
				t.Errorf("CustomerName = %q, want %q", out.CustomerName, tt.wantName)
			}
		})
	}
}

func TestRunFind_EmptySheet(t *testing.T) {
	err := runFind(context.Background(), io.Discard, source.StaticSource{Text: "\n\n"}, lookupCfg, "5551234567")
	if !errors.Is(err, core.ErrEmptySource) {
		t.Errorf("runFind() error = %v, want ErrEmptySource", err)
	}
}

func TestRunColumns(t *testing.T) {
	var buf bytes.Buffer
	if err := runColumns(context.Background(), &buf, source.StaticSource{Text: sheet}); err != nil {
		t.Fatalf("runColumns() error = %v", err)
	}

	var got columnsReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	want := columnsReport{
		Source:  "static",
		Headers: []string{"Full Name", "Mobile Phone", "Email Address"},
		Rows:    1,
		Columns: core.ColumnIndex{Phone: 1, Email: 2, Name: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
}

func TestRootCmd_FindWithFileFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customers.csv")
	if err := os.WriteFile(path, []byte(sheet), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SHEET_SPREADSHEET_ID", "")
	t.Setenv("SPREADSHEET_ID", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_URL", "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"find", "ann@example.com", "--file", path})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var got core.Outcome
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, out.String())
	}
	if !got.Found || got.CustomerName != "Ann Lee" {
		t.Errorf("Outcome = %+v, want Ann Lee found", got)
	}
}

func TestRootCmd_FindRequiresArgument(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"find"})

	if err := cmd.Execute(); err == nil {
		t.Error("Execute() expected error without a search value")
	}
}

func TestAuditCmd(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		dbURL   string
		wantErr string
	}{
		{"reset needs confirmation", []string{"audit", "reset"}, "postgres://localhost/x", "without --yes"},
		{"purge needs database", []string{"audit", "purge"}, "", "DATABASE_URL"},
		{"reset needs database", []string{"audit", "reset", "--yes"}, "", "DATABASE_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", tt.dbURL)
			t.Setenv("DB_URL", "")

			cmd := newRootCmd()
			cmd.SetOut(io.Discard)
			cmd.SetErr(io.Discard)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Execute() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestRootCmd_LoadsDotEnvOncePerRun(t *testing.T) {
	calls := 0
	prev := loadDotEnv
	loadDotEnv = func() error {
		calls++
		return nil
	}
	t.Cleanup(func() { loadDotEnv = prev })

	// Building extra roots must not register extra loaders.
	_ = newRootCmd()
	_ = newRootCmd()

	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"columns", "--file", filepath.Join(t.TempDir(), "missing.csv")})
	_ = cmd.Execute()

	if calls != 1 {
		t.Errorf("loadDotEnv calls = %d, want 1", calls)
	}
}
