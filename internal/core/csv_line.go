package core

// csv_line.go parses a single line of sheet CSV export text.
//
// This is deliberately not an RFC-4180 reader. Every double quote flips the
// quoted state and is dropped, so a doubled quote ("") inside a quoted field
// is not unescaped. Lookups against existing sheets depend on this behaviour.

import "strings"

// ParseLine splits one CSV line into its fields.
//
// Commas inside double quotes do not separate fields. Each field is trimmed of
// surrounding whitespace and then has at most one leading and one trailing
// literal quote removed. The result always has at least one field, and
// unbalanced quotes are not an error.
func ParseLine(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, finishField(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}

	return append(fields, finishField(current.String()))
}

// finishField trims a buffered field and unwraps one layer of quotes.
func finishField(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}
