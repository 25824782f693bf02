// Package spanindex maps offsets of text synthesized from several string
// literals and text blocks back to source spans.
package spanindex

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"jsema/internal/ast"
	"jsema/internal/literal"
	"jsema/internal/source"
)

var (
	// ErrNotStringLiteral is returned when a literal is neither a string
	// literal nor a text block.
	ErrNotStringLiteral = errors.New("only string literals and text blocks allowed")
	// ErrMalformedLiteral is returned when a literal's value cannot be decoded.
	ErrMalformedLiteral = errors.New("malformed string literal")
)

// Entry maps Length characters of the synthesized text, starting at Offset,
// to a single-line source span.
type Entry struct {
	Offset int
	Length int
	Span   source.TextSpan
}

// Index maps offsets of the text formed by concatenating literal values back
// to source coordinates. Offsets count runes.
type Index struct {
	text    string
	length  int
	entries []Entry // sorted by Offset, unique offsets
}

// Build decodes each literal in order and indexes its contribution.
func Build(lits []Literal) (*Index, error) {
	ix := &Index{entries: make([]Entry, 0, len(lits))}
	var text strings.Builder
	for i, lit := range lits {
		value, err := ix.add(lit)
		if err != nil {
			return nil, fmt.Errorf("literal %d at %s: %w", i, lit.RawSpan(), err)
		}
		text.WriteString(value)
	}
	ix.text = text.String()
	return ix, nil
}

// MustBuild is Build for callers that have already checked the literal kinds.
func MustBuild(lits []Literal) *Index {
	ix, err := Build(lits)
	if err != nil {
		panic(err)
	}
	return ix
}

func (ix *Index) add(lit Literal) (string, error) {
	raw := lit.RawText()
	switch lit.Kind() {
	case ast.KindStringLiteral:
		value, err := literal.Unquote(raw)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrMalformedLiteral, err)
		}
		sp := lit.RawSpan()
		n := utf8.RuneCountInString(value)
		ix.put(Entry{
			Offset: ix.length,
			Length: n,
			Span:   source.NewTextSpan(sp.StartLine, sp.StartColumn+1, sp.EndLine, sp.EndColumn-1),
		})
		ix.length += n
		return value, nil
	case ast.KindTextBlock:
		value, err := literal.TextBlock(raw)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrMalformedLiteral, err)
		}
		indent := literal.TextBlockIndent(raw)
		opening := lit.RawSpan().StartLine
		for i, line := range literal.SplitLines(value) {
			n := utf8.RuneCountInString(line)
			visible := utf8.RuneCountInString(strings.TrimSuffix(line, "\n"))
			row := opening + i + 1
			ix.put(Entry{
				Offset: ix.length,
				Length: n,
				Span:   source.LineSpan(row, indent, indent+visible),
			})
			ix.length += n
		}
		return value, nil
	default:
		return "", fmt.Errorf("%w: got %s", ErrNotStringLiteral, lit.Kind())
	}
}

// put inserts e, replacing an entry that starts at the same offset.
func (ix *Index) put(e Entry) {
	if k := len(ix.entries); k > 0 && ix.entries[k-1].Offset == e.Offset {
		ix.entries[k-1] = e
		return
	}
	ix.entries = append(ix.entries, e)
}

// Text returns the synthesized text.
func (ix *Index) Text() string { return ix.text }

// Len returns the length of the synthesized text in runes.
func (ix *Index) Len() int { return ix.length }

// Entries returns a copy of the index entries in offset order.
func (ix *Index) Entries() []Entry {
	out := make([]Entry, len(ix.entries))
	copy(out, ix.entries)
	return out
}

// floor returns the position of the last entry with Offset <= x, or -1.
func (ix *Index) floor(x int) int {
	return sort.Search(len(ix.entries), func(i int) bool { return ix.entries[i].Offset > x }) - 1
}

// lower returns the position of the last entry with Offset < x, or -1.
func (ix *Index) lower(x int) int {
	return sort.Search(len(ix.entries), func(i int) bool { return ix.entries[i].Offset >= x }) - 1
}

// SpansFor maps the half-open range [begin, end) of the synthesized text to
// source spans, one per touched source line, in order. A negative begin is
// clamped to 0; a non-positive end confines the result to the start entry.
func (ix *Index) SpansFor(begin, end int) []source.TextSpan {
	if len(ix.entries) == 0 {
		return nil
	}
	if begin < 0 {
		begin = 0
	}
	si := ix.floor(begin)
	ei := ix.lower(end)
	if end <= 0 || ei < si {
		ei = si
	}
	start, stop := ix.entries[si], ix.entries[ei]
	if si == ei {
		return []source.TextSpan{start.slice(begin-start.Offset, end-start.Offset)}
	}
	out := make([]source.TextSpan, 0, ei-si+1)
	out = append(out, start.slice(begin-start.Offset, start.Length))
	for _, e := range ix.entries[si+1 : ei] {
		out = append(out, e.Span)
	}
	out = append(out, stop.slice(0, end-stop.Offset))
	return out
}

// slice cuts the part of the entry's span between two offsets relative to
// the entry start. Offsets past the visible width (a text block line
// terminator) stick to the end column.
func (e Entry) slice(from, to int) source.TextSpan {
	w := e.Span.Width()
	from = min(max(from, 0), w)
	to = min(max(to, from), w)
	return e.Span.Slice(from, to)
}
