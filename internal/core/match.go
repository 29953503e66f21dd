package core

import "strings"

// SearchMode is how a search key is compared against the sheet.
type SearchMode string

const (
	ModePhone SearchMode = "phone"
	ModeEmail SearchMode = "email"
)

// DefaultCustomerName is used when a matched record has no usable name.
const DefaultCustomerName = "valued customer"

// ModeFor infers the search mode from the key: anything containing "@" is
// an email, everything else is a phone number. There is no name search.
func ModeFor(searchValue string) SearchMode {
	if IsEmailKey(searchValue) {
		return ModeEmail
	}
	return ModePhone
}

// Record maps header text to the matched row's value for that column.
type Record map[string]string

// Match is the result of FindRecord. Found=false is an ordinary outcome that
// tells the caller it is talking to a new customer.
type Match struct {
	Mode    SearchMode  `json:"mode"`
	Found   bool        `json:"found"`
	Record  Record      `json:"record,omitempty"`
	Columns ColumnIndex `json:"columns"`
	Row     int         `json:"-"`

	// Name and Email are display values for a found record. They fall back
	// to the resolved name/email column when the exact keys are missing.
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// FindRecord returns the first row whose phone digits (or email, when the
// key contains "@") equal the search key.
//
// A missing phone/email column, short rows and unmatched keys all produce a
// not-found Match. FindRecord never fails.
func FindRecord(t *Table, searchValue string) Match {
	m := Match{Mode: ModeFor(searchValue), Row: NotFound}
	if t == nil {
		m.Columns = ColumnIndex{Phone: NotFound, Email: NotFound, Name: NotFound}
		return m
	}
	m.Columns = t.Columns()

	var (
		col   int
		equal func(cell string) bool
	)
	switch m.Mode {
	case ModeEmail:
		key := strings.TrimSpace(searchValue)
		col = m.Columns.Email
		equal = func(cell string) bool {
			return strings.EqualFold(strings.TrimSpace(cell), key)
		}
	default:
		key := DigitsOnly(searchValue)
		col = m.Columns.Phone
		equal = func(cell string) bool {
			return DigitsOnly(cell) == key
		}
		if key == "" {
			return m
		}
	}

	if col == NotFound {
		return m
	}

	for i, row := range t.Rows {
		cell := row.Field(col)
		if cell == "" {
			continue
		}
		if equal(cell) {
			m.Found = true
			m.Row = i
			m.Record = t.RecordAt(i)
			m.Name = displayValue(m.Record.lenient(RoleName), row, m.Columns.Name, DefaultCustomerName)
			m.Email = displayValue(m.Record.DisplayEmail(), row, m.Columns.Email, "")
			return m
		}
	}

	return m
}

// DisplayName returns "name", then "Name", then DefaultCustomerName.
// Sheets disagree on header casing, so both spellings are tried.
func (r Record) DisplayName() string {
	if v := r.lenient(RoleName); v != "" {
		return v
	}
	return DefaultCustomerName
}

// DisplayEmail returns "email" or "Email", or "" when neither is set.
func (r Record) DisplayEmail() string {
	return r.lenient(RoleEmail)
}

func (r Record) lenient(role Role) string {
	if v := r[string(role)]; v != "" {
		return v
	}
	return r[capitalize(string(role))]
}

func displayValue(v string, row Row, col int, fallback string) string {
	if v != "" {
		return v
	}
	if v = row.Field(col); v != "" {
		return v
	}
	return fallback
}
