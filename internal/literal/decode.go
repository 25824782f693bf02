package literal

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// ErrMalformed is returned for literal text that does not follow the
// string literal or text block syntax.
var ErrMalformed = errors.New("malformed literal")

const textBlockDelim = `"""`

// IsTextBlock reports whether raw is written with text block delimiters.
func IsTextBlock(raw string) bool {
	return strings.HasPrefix(raw, textBlockDelim)
}

// Unquote decodes a plain, single-line string literal including its quotes.
func Unquote(raw string) (string, error) {
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' || IsTextBlock(raw) {
		return "", fmt.Errorf("%w: not a string literal: %q", ErrMalformed, raw)
	}
	body := raw[1 : len(raw)-1]
	if strings.ContainsAny(body, "\n") {
		return "", fmt.Errorf("%w: line break inside string literal", ErrMalformed)
	}
	return unescape(body, false)
}

// TextBlock decodes a text block including its delimiters.
func TextBlock(raw string) (string, error) {
	lines, err := contentLines(raw)
	if err != nil {
		return "", err
	}
	indent := minIndent(lines)
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if isBlank(line) {
			continue
		}
		b.WriteString(strings.TrimRightFunc(dropRunes(line, indent), isJavaSpace))
	}
	return unescape(b.String(), true)
}

// TextBlockIndent returns the indentation width shared by the lines of a raw
// text block. The opening delimiter line is skipped and blank lines are
// ignored; the closing delimiter line counts.
func TextBlockIndent(raw string) int {
	lines := strings.Split(raw, "\n")
	indent := -1
	for _, line := range lines[1:] {
		if isBlank(line) {
			continue
		}
		if w := indentation(line); indent < 0 || w < indent {
			indent = w
		}
	}
	if indent < 0 {
		return 0
	}
	return indent
}

// SplitLines splits s after every '\n', keeping the terminator with each
// line. A trailing empty piece is dropped; an empty string yields one empty
// line.
func SplitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	out := make([]string, 0, strings.Count(s, "\n")+1)
	for len(s) > 0 {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			out = append(out, s)
			break
		}
		out = append(out, s[:i+1])
		s = s[i+1:]
	}
	return out
}

// LineCount returns the number of source lines a raw literal spans.
func LineCount(raw string) int {
	return strings.Count(raw, "\n") + 1
}

// contentLines returns the lines between the opening delimiter's line break
// and the closing delimiter. The last element is whatever precedes the
// closing delimiter on its line.
func contentLines(raw string) ([]string, error) {
	if !IsTextBlock(raw) || len(raw) < 2*len(textBlockDelim) || !strings.HasSuffix(raw, textBlockDelim) {
		return nil, fmt.Errorf("%w: not a text block: %q", ErrMalformed, raw)
	}
	rest := raw[len(textBlockDelim) : len(raw)-len(textBlockDelim)]
	nl := strings.IndexByte(rest, '\n')
	if nl < 0 || !isBlank(rest[:nl]) {
		return nil, fmt.Errorf("%w: text block must start with a line break", ErrMalformed)
	}
	return strings.Split(rest[nl+1:], "\n"), nil
}

func minIndent(lines []string) int {
	indent := -1
	last := len(lines) - 1
	for i, line := range lines {
		if isBlank(line) && i != last {
			continue
		}
		if w := indentation(line); indent < 0 || w < indent {
			indent = w
		}
	}
	if indent < 0 {
		return 0
	}
	return indent
}

func indentation(line string) int {
	n := 0
	for _, r := range line {
		if !isJavaSpace(r) {
			return n
		}
		n++
	}
	return n
}

func isBlank(line string) bool {
	return strings.TrimLeftFunc(line, isJavaSpace) == ""
}

// isJavaSpace follows Character.isWhitespace: no-break spaces and NEL are
// not whitespace.
func isJavaSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r', 0x1C, 0x1D, 0x1E, 0x1F:
		return true
	case 0x00A0, 0x2007, 0x202F:
		return false
	}
	return r > 0x7F && (unicode.Is(unicode.Zs, r) || unicode.Is(unicode.Zl, r) || unicode.Is(unicode.Zp, r))
}

func dropRunes(s string, n int) string {
	for i := 0; i < n && len(s) > 0; i++ {
		_, size := utf8.DecodeRuneInString(s)
		s = s[size:]
	}
	return s
}

func unescape(s string, textBlock bool) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(s) {
			return "", fmt.Errorf("%w: dangling backslash", ErrMalformed)
		}
		next := s[i+1]
		switch next {
		case 'b':
			b.WriteByte('\b')
		case 't':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		case 'f':
			b.WriteByte('\f')
		case 'r':
			b.WriteByte('\r')
		case 's':
			b.WriteByte(' ')
		case '"', '\'', '\\':
			b.WriteByte(next)
		case '\n':
			if !textBlock {
				return "", fmt.Errorf("%w: line continuation outside text block", ErrMalformed)
			}
		case 'u':
			r, n, err := unicodeEscape(s[i+1:])
			if err != nil {
				return "", err
			}
			i += 1 + n
			// суррогатная пара записывается двумя escape подряд
			if utf16.IsSurrogate(r) && r < 0xDC00 && strings.HasPrefix(s[i:], `\u`) {
				if lo, m, err := unicodeEscape(s[i+1:]); err == nil {
					if pair := utf16.DecodeRune(r, lo); pair != utf8.RuneError {
						r = pair
						i += 1 + m
					}
				}
			}
			b.WriteRune(r)
			continue
		default:
			if next >= '0' && next <= '7' {
				r, n := octalEscape(s[i+1:])
				b.WriteRune(r)
				i += 1 + n
				continue
			}
			return "", fmt.Errorf("%w: invalid escape \\%c", ErrMalformed, next)
		}
		i += 2
	}
	return b.String(), nil
}

// unicodeEscape parses "u+XXXX" and returns the rune and consumed byte count.
func unicodeEscape(s string) (rune, int, error) {
	n := 0
	for n < len(s) && s[n] == 'u' {
		n++
	}
	if len(s) < n+4 {
		return 0, 0, fmt.Errorf("%w: short unicode escape", ErrMalformed)
	}
	var r rune
	for _, h := range s[n : n+4] {
		v, ok := hexValue(h)
		if !ok {
			return 0, 0, fmt.Errorf("%w: invalid unicode escape", ErrMalformed)
		}
		r = r<<4 | v
	}
	return r, n + 4, nil
}

func hexValue(h rune) (rune, bool) {
	switch {
	case h >= '0' && h <= '9':
		return h - '0', true
	case h >= 'a' && h <= 'f':
		return h - 'a' + 10, true
	case h >= 'A' && h <= 'F':
		return h - 'A' + 10, true
	}
	return 0, false
}

// octalEscape parses up to three octal digits (two when the first is above 3).
func octalEscape(s string) (rune, int) {
	limit := 3
	if s[0] > '3' {
		limit = 2
	}
	var r rune
	n := 0
	for n < limit && n < len(s) && s[n] >= '0' && s[n] <= '7' {
		r = r*8 + rune(s[n]-'0')
		n++
	}
	return r, n
}
