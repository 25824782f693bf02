package spanindex_test

import (
	"errors"
	"reflect"
	"testing"

	"jsema/internal/ast"
	"jsema/internal/source"
	"jsema/internal/spanindex"
	"jsema/internal/testkit"
)

func str(raw string, line, col int) spanindex.Raw {
	return spanindex.Raw{
		LitKind: ast.KindStringLiteral,
		Text:    raw,
		Span:    source.LineSpan(line, col, col+len([]rune(raw))),
	}
}

// abcDef models `"abc" + "def"` written on line 3 at columns 10 and 18.
func abcDef(t *testing.T) *spanindex.Index {
	t.Helper()
	ix, err := spanindex.Build([]spanindex.Literal{str(`"abc"`, 3, 10), str(`"def"`, 3, 18)})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return ix
}

func TestPlainLiteralsRoundTrip(t *testing.T) {
	ix := abcDef(t)
	if ix.Text() != "abcdef" || ix.Len() != 6 {
		t.Fatalf("text = %q len %d", ix.Text(), ix.Len())
	}
	cases := []struct {
		begin, end int
		want       []source.TextSpan
	}{
		{0, 3, []source.TextSpan{source.LineSpan(3, 11, 14)}},
		{3, 6, []source.TextSpan{source.LineSpan(3, 19, 22)}},
		{2, 4, []source.TextSpan{source.LineSpan(3, 13, 14), source.LineSpan(3, 19, 20)}},
		{1, 2, []source.TextSpan{source.LineSpan(3, 12, 13)}},
		{-5, 1, []source.TextSpan{source.LineSpan(3, 11, 12)}},
	}
	for _, tc := range cases {
		got := ix.SpansFor(tc.begin, tc.end)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("SpansFor(%d,%d) = %v, want %v", tc.begin, tc.end, got, tc.want)
		}
	}
}

func TestDegenerateEnd(t *testing.T) {
	ix := abcDef(t)
	got := ix.SpansFor(4, 0)
	if len(got) != 1 || got[0].StartLine != 3 || got[0].Width() != 0 {
		t.Fatalf("SpansFor(4,0) = %v, want one empty span on the start entry", got)
	}
	if got := ix.SpansFor(5, 2); len(got) != 1 {
		t.Fatalf("reversed range must stay on the start entry, got %v", got)
	}
}

func TestMiddleEntries(t *testing.T) {
	ix, err := spanindex.Build([]spanindex.Literal{
		str(`"ab"`, 1, 0),
		str(`"cd"`, 2, 4),
		str(`""`, 3, 4),
		str(`"ef"`, 3, 12),
	})
	if err != nil {
		t.Fatal(err)
	}
	if n := len(ix.Entries()); n != 3 {
		t.Fatalf("empty literal must be replaced by the next one, got %d entries", n)
	}
	got := ix.SpansFor(1, 5)
	want := []source.TextSpan{
		source.LineSpan(1, 2, 3),
		source.LineSpan(2, 5, 7),
		source.LineSpan(3, 13, 14),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SpansFor(1,5) = %v, want %v", got, want)
	}
	if err := testkit.CheckIndexInvariants(ix); err != nil {
		t.Fatal(err)
	}
}

func TestTextBlockLines(t *testing.T) {
	// line 10:    String s = """
	// line 11:        one
	// line 12:          two
	// line 13:        three
	// line 14:        """;
	raw := "\"\"\"\n        one\n          two\n        three\n        \"\"\""
	tb := spanindex.Raw{LitKind: ast.KindTextBlock, Text: raw, Span: source.NewTextSpan(10, 15, 14, 11)}
	ix, err := spanindex.Build([]spanindex.Literal{tb})
	if err != nil {
		t.Fatal(err)
	}
	if ix.Text() != "one\n  two\nthree\n" {
		t.Fatalf("text = %q", ix.Text())
	}
	entries := ix.Entries()
	if len(entries) != 3 {
		t.Fatalf("entries = %v", entries)
	}
	for i, e := range entries {
		if e.Span.StartColumn != 8 || e.Span.StartLine != 11+i {
			t.Errorf("entry %d span = %v", i, e.Span)
		}
	}
	if entries[1].Span.EndColumn != 8+5 || entries[1].Length != 6 {
		t.Errorf("second line entry = %+v", entries[1])
	}
	got := ix.SpansFor(6, 8)
	if want := []source.TextSpan{source.LineSpan(12, 10, 12)}; !reflect.DeepEqual(got, want) {
		t.Fatalf("SpansFor(6,8) = %v, want %v", got, want)
	}
	got = ix.SpansFor(2, 12)
	want := []source.TextSpan{
		source.LineSpan(11, 10, 11),
		source.LineSpan(12, 8, 13),
		source.LineSpan(13, 8, 10),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SpansFor(2,12) = %v, want %v", got, want)
	}
	if err := testkit.CheckIndexInvariants(ix); err != nil {
		t.Fatal(err)
	}
}

func TestMixedSequenceInvariants(t *testing.T) {
	tb := spanindex.Raw{
		LitKind: ast.KindTextBlock,
		Text:    "\"\"\"\n    a|b\n    (c\\n)\"\"\"",
		Span:    source.NewTextSpan(5, 20, 7, 14),
	}
	ix := spanindex.MustBuild([]spanindex.Literal{
		str(`"x\ty"`, 4, 8),
		tb,
		str(`"é+"`, 7, 17),
	})
	if err := testkit.CheckIndexInvariants(ix); err != nil {
		t.Fatal(err)
	}
	if ix.Len() != 3+4+4+2 {
		t.Fatalf("len = %d (%q)", ix.Len(), ix.Text())
	}
}

func TestSurrogatePairEscapeIsOneCharacter(t *testing.T) {
	ix, err := spanindex.Build([]spanindex.Literal{str(`"\uD83D\uDE00"`, 2, 4), str(`"|"`, 2, 21)})
	if err != nil {
		t.Fatal(err)
	}
	if ix.Text() != "\U0001F600|" || ix.Len() != 2 {
		t.Fatalf("text = %q len %d", ix.Text(), ix.Len())
	}
	if got, want := ix.SpansFor(1, 2), []source.TextSpan{source.LineSpan(2, 22, 23)}; !reflect.DeepEqual(got, want) {
		t.Fatalf("SpansFor(1,2) = %v, want %v", got, want)
	}
	if err := testkit.CheckIndexInvariants(ix); err != nil {
		t.Fatal(err)
	}
}

func TestTextBlockNoBreakSpaceKeepsColumns(t *testing.T) {
	// line 1: s = """
	// line 2:     \u00a0a
	// line 3:     b
	// line 4:     """;
	raw := "\"\"\"\n    \u00a0a\n    b\n    \"\"\""
	ix, err := spanindex.Build([]spanindex.Literal{
		spanindex.Raw{LitKind: ast.KindTextBlock, Text: raw, Span: source.NewTextSpan(1, 4, 4, 7)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if ix.Text() != "\u00a0a\nb\n" {
		t.Fatalf("text = %q", ix.Text())
	}
	entries := ix.Entries()
	if len(entries) != 2 || entries[0].Span != source.LineSpan(2, 4, 6) || entries[1].Span != source.LineSpan(3, 4, 5) {
		t.Fatalf("entries = %+v", entries)
	}
	if err := testkit.CheckIndexInvariants(ix); err != nil {
		t.Fatal(err)
	}
}

func TestRejectsNonStringLiterals(t *testing.T) {
	_, err := spanindex.Build([]spanindex.Literal{
		spanindex.Raw{LitKind: ast.KindNumberLiteral, Text: "42", Span: source.LineSpan(1, 0, 2)},
	})
	if !errors.Is(err, spanindex.ErrNotStringLiteral) {
		t.Fatalf("err = %v, want ErrNotStringLiteral", err)
	}
	_, err = spanindex.Build([]spanindex.Literal{str(`"bad\q"`, 1, 0)})
	if !errors.Is(err, spanindex.ErrMalformedLiteral) {
		t.Fatalf("err = %v, want ErrMalformedLiteral", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("MustBuild must panic on invalid input")
		}
	}()
	spanindex.MustBuild([]spanindex.Literal{spanindex.Raw{LitKind: ast.KindCharLiteral, Text: "'c'"}})
}

func TestFromNodes(t *testing.T) {
	j := testkit.NewJava(1, "A.java")
	a := j.Str(`"ab"`, 2, 4)
	b := j.Str(`"c"`, 2, 11)
	ix := spanindex.MustBuild(spanindex.FromNodes(j.Tree, a, ast.NoNodeID, b))
	if ix.Text() != "abc" {
		t.Fatalf("text = %q", ix.Text())
	}
	if got := ix.SpansFor(2, 3); !reflect.DeepEqual(got, []source.TextSpan{source.LineSpan(2, 12, 13)}) {
		t.Fatalf("got %v", got)
	}
}
