package core

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "plain fields",
			line: "Ann,555-1234,ann@example.com",
			want: []string{"Ann", "555-1234", "ann@example.com"},
		},
		{
			name: "quoted field keeps embedded comma",
			line: `"a,b",c`,
			want: []string{"a,b", "c"},
		},
		{
			name: "outer whitespace and quotes stripped",
			line: `  x  , "y" `,
			want: []string{"x", "y"},
		},
		{
			name: "empty line yields one empty field",
			line: "",
			want: []string{""},
		},
		{
			name: "trailing comma yields empty last field",
			line: "a,b,",
			want: []string{"a", "b", ""},
		},
		{
			name: "consecutive commas yield empty fields",
			line: "a,,c",
			want: []string{"a", "", "c"},
		},
		{
			name: "doubled quotes are not unescaped",
			line: `"say ""hi""",x`,
			want: []string{"say hi", "x"},
		},
		{
			name: "unbalanced quote swallows the rest of the line",
			line: `"open,still open,x`,
			want: []string{"open,still open,x"},
		},
		{
			name: "quotes in the middle of a field are dropped",
			line: `ab"c"d,e`,
			want: []string{"abcd", "e"},
		},
		{
			name: "carriage return is trimmed",
			line: "name,phone\r",
			want: []string{"name", "phone"},
		},
		{
			name: "gviz export style",
			line: `"Full Name","Phone Number","Email Address"`,
			want: []string{"Full Name", "Phone Number", "Email Address"},
		},
		{
			name: "unicode is preserved",
			line: "José,Zoë",
			want: []string{"José", "Zoë"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLine(tt.line)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseLine(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestParseLine_MatchesSplitForPlainLines(t *testing.T) {
	lines := []string{
		"a,b,c",
		" a , b , c ",
		"one",
		"1,2,3,4,5,6,7,8,9,10",
		"\ttab\t,space ",
		",,",
	}

	for _, line := range lines {
		var want []string
		for _, f := range strings.Split(line, ",") {
			want = append(want, strings.TrimSpace(f))
		}
		if diff := cmp.Diff(want, ParseLine(line)); diff != "" {
			t.Errorf("ParseLine(%q) differs from split+trim (-want +got):\n%s", line, diff)
		}
	}
}
