package source

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestReadSheet(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "with BOM",
			input: append([]byte{0xEF, 0xBB, 0xBF}, []byte("name,phone")...),
			want:  "name,phone",
		},
		{
			name:  "without BOM",
			input: []byte("name,phone"),
			want:  "name,phone",
		},
		{
			name:  "empty",
			input: []byte{},
			want:  "",
		},
		{
			name:  "only BOM",
			input: []byte{0xEF, 0xBB, 0xBF},
			want:  "",
		},
		{
			name:  "partial BOM kept",
			input: []byte{0xEF, 0xBB, 'a'},
			want:  "?a",
		},
		{
			name:  "invalid byte replaced",
			input: []byte{'A', 'n', 0x80, 'n'},
			want:  "An?n",
		},
		{
			name:  "multibyte preserved",
			input: []byte("José,555"),
			want:  "José,555",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readSheet(bytes.NewReader(tt.input), 0)
			if err != nil {
				t.Fatalf("readSheet() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("readSheet() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadSheet_SizeCap(t *testing.T) {
	body := strings.Repeat("a", 100)

	if _, err := readSheet(strings.NewReader(body), 100); err != nil {
		t.Errorf("readSheet() at cap error = %v", err)
	}

	_, err := readSheet(strings.NewReader(body), 99)
	if !errors.Is(err, ErrSheetTooLarge) {
		t.Errorf("readSheet() over cap error = %v, want ErrSheetTooLarge", err)
	}
}
