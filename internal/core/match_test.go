package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const customersCSV = `"Full Name","Phone Number","Email Address","Plan"
"Ann Lee","5551234567","A@B.com","gold"
"Bob Ray","(555) 987-6543","bob@example.com","silver"
"Ann Duplicate","555-123-4567","dup@example.com","bronze"
`

func mustBuildTable(t *testing.T, text string) *Table {
	t.Helper()
	table, err := BuildTable(text)
	if err != nil {
		t.Fatalf("BuildTable() error = %v", err)
	}
	return table
}

func TestFindRecord_Phone(t *testing.T) {
	table := mustBuildTable(t, customersCSV)

	tests := []struct {
		name     string
		search   string
		wantName string
	}{
		{"formatted search against plain value", "(555) 123-4567", "Ann Lee"},
		{"plain search against formatted value", "5559876543", "Bob Ray"},
		{"dotted search", "555.987.6543", "Bob Ray"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := FindRecord(table, tt.search)
			if m.Mode != ModePhone {
				t.Errorf("Mode = %q, want %q", m.Mode, ModePhone)
			}
			if !m.Found {
				t.Fatalf("FindRecord(%q) not found", tt.search)
			}
			if m.Record["Full Name"] != tt.wantName {
				t.Errorf("Record[Full Name] = %q, want %q", m.Record["Full Name"], tt.wantName)
			}
		})
	}
}

func TestFindRecord_FirstMatchWins(t *testing.T) {
	table := mustBuildTable(t, customersCSV)

	m := FindRecord(table, "555 123 4567")
	if !m.Found {
		t.Fatal("expected a match")
	}
	if m.Row != 0 {
		t.Errorf("Row = %d, want 0", m.Row)
	}
	if m.Record["Plan"] != "gold" {
		t.Errorf("Record[Plan] = %q, want gold", m.Record["Plan"])
	}
}

func TestFindRecord_EmailCaseInsensitive(t *testing.T) {
	table := mustBuildTable(t, customersCSV)

	m := FindRecord(table, "a@b.com")
	if m.Mode != ModeEmail {
		t.Errorf("Mode = %q, want %q", m.Mode, ModeEmail)
	}
	if !m.Found {
		t.Fatal("expected email match")
	}
	if m.Email != "A@B.com" {
		t.Errorf("Email = %q, want A@B.com", m.Email)
	}

	// Email search never falls back to the phone column.
	if m := FindRecord(table, "5551234567@"); m.Found {
		t.Errorf("unexpected match for email-shaped phone: %+v", m)
	}
}

func TestFindRecord_NotFound(t *testing.T) {
	table := mustBuildTable(t, customersCSV)

	tests := []struct {
		name   string
		search string
	}{
		{"unknown phone", "555-000-0000"},
		{"unknown email", "nobody@example.com"},
		{"no digits at all", "call me"},
		{"partial phone", "1234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := FindRecord(table, tt.search)
			if m.Found {
				t.Errorf("FindRecord(%q) = found %v, want not found", tt.search, m.Record)
			}
			if m.Record != nil {
				t.Errorf("Record = %v, want nil", m.Record)
			}
		})
	}
}

func TestFindRecord_ShortRowMissingPhone(t *testing.T) {
	table := &Table{
		Header: Row{"name", "phone"},
		Rows:   []Row{{"Ann"}},
	}

	m := FindRecord(table, "555-123-4567")
	if m.Found {
		t.Errorf("expected no match for short row, got %v", m.Record)
	}
}

func TestFindRecord_AbsentColumn(t *testing.T) {
	table := mustBuildTable(t, "name,notes\nAnn,5551234567\n")

	if m := FindRecord(table, "5551234567"); m.Found {
		t.Error("phone search without a phone column must not match")
	}
	if m := FindRecord(table, "ann@example.com"); m.Found {
		t.Error("email search without an email column must not match")
	}
}

func TestFindRecord_BlankPhoneCellsNeverMatch(t *testing.T) {
	table := mustBuildTable(t, "name,phone\nAnn,\nBob,N/A\n")

	if m := FindRecord(table, "--"); m.Found {
		t.Errorf("search with no digits matched %v", m.Record)
	}
}

func TestFindRecord_NilTable(t *testing.T) {
	m := FindRecord(nil, "5551234567")
	if m.Found {
		t.Error("nil table must not match")
	}
	if m.Columns.Phone != NotFound {
		t.Errorf("Columns.Phone = %d, want NotFound", m.Columns.Phone)
	}
}

func TestFindRecord_RecordZipsHeaders(t *testing.T) {
	table := mustBuildTable(t, "name,phone,email,notes\nAnn,5551234567\n")

	m := FindRecord(table, "5551234567")
	if !m.Found {
		t.Fatal("expected a match")
	}

	want := Record{"name": "Ann", "phone": "5551234567", "email": "", "notes": ""}
	if diff := cmp.Diff(want, m.Record); diff != "" {
		t.Errorf("Record mismatch (-want +got):\n%s", diff)
	}
}

func TestMatch_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want string
	}{
		{"lower-case name header", "name,phone\nAnn,1\n", "Ann"},
		{"capitalized name header", "Name,phone\nBob,1\n", "Bob"},
		{"resolved name column", "Customer Name,phone\nCara,1\n", "Cara"},
		{"empty name falls back", "name,phone\n,1\n", DefaultCustomerName},
		{"no name column falls back", "id,phone\n7,1\n", DefaultCustomerName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := FindRecord(mustBuildTable(t, tt.csv), "1")
			if !m.Found {
				t.Fatal("expected a match")
			}
			if m.Name != tt.want {
				t.Errorf("Name = %q, want %q", m.Name, tt.want)
			}
		})
	}
}

func TestRecord_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{"name key", Record{"name": "Ann"}, "Ann"},
		{"Name key", Record{"Name": "Bob"}, "Bob"},
		{"name preferred over Name", Record{"name": "Ann", "Name": "Bob"}, "Ann"},
		{"generic label", Record{"Full Name": "Cara"}, DefaultCustomerName},
		{"nil record", nil, DefaultCustomerName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestModeFor(t *testing.T) {
	if got := ModeFor("a@b.com"); got != ModeEmail {
		t.Errorf("ModeFor(email) = %q", got)
	}
	if got := ModeFor("555"); got != ModePhone {
		t.Errorf("ModeFor(phone) = %q", got)
	}
	if got := ModeFor(""); got != ModePhone {
		t.Errorf("ModeFor(empty) = %q", got)
	}
}
