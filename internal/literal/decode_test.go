package literal

import (
	"errors"
	"reflect"
	"testing"
)

func TestUnquote(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`""`, ""},
		{`"abc"`, "abc"},
		{`"a\tb\n"`, "a\tb\n"},
		{`"quote \" and \\"`, `quote " and \`},
		{`"\101\7\377"`, "A\aÿ"},
		{`"A\uuu0042"`, "AB"},
		{`"\s"`, " "},
		{`"\uD83D\uDE00"`, "\U0001F600"},
		{`"\uD83D\uuDE00!"`, "\U0001F600!"},
		{`"\uD83Dx"`, "\uFFFDx"},
		{`"\uDE00\uD83D"`, "\uFFFD\uFFFD"},
		{`"\uD83D\\uDE00"`, "\uFFFD\\uDE00"},
	}
	for _, tt := range tests {
		got, err := Unquote(tt.raw)
		if err != nil {
			t.Errorf("Unquote(%s) error: %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Unquote(%s) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestUnquoteRejectsMalformed(t *testing.T) {
	for _, raw := range []string{`abc`, `"abc`, `"a\qb"`, `"a\`, "\"\"\"\nx\"\"\"", `'c'`, `"\u12"`} {
		if _, err := Unquote(raw); !errors.Is(err, ErrMalformed) {
			t.Errorf("Unquote(%q) err = %v, want ErrMalformed", raw, err)
		}
	}
}

func TestTextBlock(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "closing delimiter on its own line",
			raw:  "\"\"\"\n    <a>\n      <b/>\n    </a>\n    \"\"\"",
			want: "<a>\n  <b/>\n</a>\n",
		},
		{
			name: "closing delimiter after content",
			raw:  "\"\"\"\n    one\n    two\"\"\"",
			want: "one\ntwo",
		},
		{
			name: "closing delimiter dedents",
			raw:  "\"\"\"\n    x\n  \"\"\"",
			want: "  x\n",
		},
		{
			name: "blank lines and trailing spaces",
			raw:  "\"\"\"\n    a   \n\n    b\n    \"\"\"",
			want: "a\n\nb\n",
		},
		{
			name: "escapes after stripping",
			raw:  "\"\"\"\n    a\\s\n    b \\\n    c\n    \"\"\"",
			want: "a \nb c\n",
		},
		{
			name: "trailing no-break space is content",
			raw:  "\"\"\"\n    a\u00a0\n    \"\"\"",
			want: "a\u00a0\n",
		},
		{
			name: "leading no-break space is not indentation",
			raw:  "\"\"\"\n  \u00a0a\n  b\n  \"\"\"",
			want: "\u00a0a\nb\n",
		},
		{
			name: "unicode space separators are indentation",
			raw:  "\"\"\"\n\u2003\u2003a\u2003\n\u2003\u2003\"\"\"",
			want: "a\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TextBlock(tt.raw)
			if err != nil {
				t.Fatalf("TextBlock error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("TextBlock = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTextBlockMalformed(t *testing.T) {
	for _, raw := range []string{`"abc"`, `"""abc"""`, "\"\"\"\nabc"} {
		if _, err := TextBlock(raw); !errors.Is(err, ErrMalformed) {
			t.Errorf("TextBlock(%q) err = %v, want ErrMalformed", raw, err)
		}
	}
}

func TestTextBlockIndent(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"\"\"\"\n    a\n      b\n    \"\"\"", 4},
		{"\"\"\"\n    a\n\n      b\n  \"\"\"", 2},
		{"\"\"\"\n\ta\n\t\"\"\"", 1},
		{"\"\"\"\nx\"\"\"", 0},
		{"\"\"\"\n  \u00a0a\n  \"\"\"", 2},
		{"\"\"\"\n\u2003\u2003a\n\u2003\u2003\"\"\"", 2},
	}
	for _, tt := range tests {
		if got := TextBlockIndent(tt.raw); got != tt.want {
			t.Errorf("TextBlockIndent(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{""}},
		{"a", []string{"a"}},
		{"a\nb\n", []string{"a\n", "b\n"}},
		{"a\n\nb", []string{"a\n", "\n", "b"}},
	}
	for _, tt := range tests {
		if got := SplitLines(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitLines(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if LineCount("\"\"\"\na\nb\n\"\"\"") != 4 {
		t.Error("LineCount")
	}
}
