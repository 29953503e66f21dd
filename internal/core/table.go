package core

import (
	"errors"
	"strings"
)

// ErrEmptySource is returned by BuildTable when the sheet text has no
// non-blank lines. Callers treat it as "no data available", which is a
// different outcome from a lookup that finds no matching customer.
var ErrEmptySource = errors.New("empty source: no customer data found")

// Row is one parsed CSV line. Values are never coerced.
type Row []string

// Field returns the value at index i, or "" when i is outside the row.
// Sheet rows are untrusted and are frequently shorter than the header.
func (r Row) Field(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// Table is a header row plus the data rows that follow it.
type Table struct {
	Header Row
	Rows   []Row
}

// BuildTable parses sheet CSV text into a Table.
//
// Blank lines are skipped. The first remaining line becomes the header and
// every later line is parsed on its own, so a malformed row never aborts the
// build. Returns ErrEmptySource if no usable line remains.
func BuildTable(csvText string) (*Table, error) {
	var lines []string
	for _, line := range strings.Split(csvText, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return nil, ErrEmptySource
	}

	t := &Table{
		Header: ParseLine(lines[0]),
		Rows:   make([]Row, 0, len(lines)-1),
	}
	for _, line := range lines[1:] {
		t.Rows = append(t.Rows, ParseLine(line))
	}

	return t, nil
}

// Columns resolves the phone, email and name roles against the header.
func (t *Table) Columns() ColumnIndex {
	return ResolveColumns(t.Header)
}

// RecordAt zips the header with row i. Missing trailing fields become "".
func (t *Table) RecordAt(i int) Record {
	if i < 0 || i >= len(t.Rows) {
		return nil
	}
	return zipRecord(t.Header, t.Rows[i])
}

func zipRecord(header, row Row) Record {
	rec := make(Record, len(header))
	for i, name := range header {
		rec[name] = row.Field(i)
	}
	return rec
}
