package layout

import "testing"

func TestParseEmphasis(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		plain string
		bold  []bool // per rune of plain; nil means all regular
	}{
		{name: "plain", in: "hello world", plain: "hello world"},
		{name: "bold run", in: "a **bc** d", plain: "a bc d",
			bold: []bool{false, false, true, true, false, false}},
		{name: "unmatched marker stays literal", in: "a ** b", plain: "a ** b"},
		{name: "all bold", in: "**x**", plain: "x", bold: []bool{true}},
		{name: "empty", in: "", plain: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := parseEmphasis(tt.in)
			if got := plainString(rs); got != tt.plain {
				t.Fatalf("plain projection = %q, want %q", got, tt.plain)
			}
			for i, sr := range rs {
				want := false
				if tt.bold != nil {
					want = tt.bold[i]
				}
				if sr.bold != want {
					t.Errorf("rune %d (%q): bold = %v, want %v", i, sr.r, sr.bold, want)
				}
			}
		})
	}
}

func TestSplitWordsNewlines(t *testing.T) {
	words := splitWords(parseEmphasis("one two\nthree"))
	if len(words) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(words))
	}
	if plainString(words[2]) != "\n" {
		t.Fatalf("expected newline token, got %q", plainString(words[2]))
	}
}
