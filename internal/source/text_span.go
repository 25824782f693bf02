package source

import "fmt"

// TextSpan is a rectangle in original source as reported to users.
// Lines are 1-based, columns are 0-based rune columns, EndColumn is exclusive.
type TextSpan struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// NewTextSpan builds a span from explicit coordinates.
func NewTextSpan(startLine, startCol, endLine, endCol int) TextSpan {
	return TextSpan{StartLine: startLine, StartColumn: startCol, EndLine: endLine, EndColumn: endCol}
}

// LineSpan builds a span confined to one line.
func LineSpan(line, startCol, endCol int) TextSpan {
	return TextSpan{StartLine: line, StartColumn: startCol, EndLine: line, EndColumn: endCol}
}

// IsZero reports whether the span was never set.
func (s TextSpan) IsZero() bool {
	return s == TextSpan{}
}

// SingleLine reports whether the span starts and ends on the same line.
func (s TextSpan) SingleLine() bool {
	return s.StartLine == s.EndLine
}

// Width returns EndColumn-StartColumn for single-line spans and -1 otherwise.
func (s TextSpan) Width() int {
	if !s.SingleLine() {
		return -1
	}
	return s.EndColumn - s.StartColumn
}

// Slice returns the part of a single-line span between two relative offsets,
// counted from StartColumn. Offsets are not clamped.
func (s TextSpan) Slice(from, to int) TextSpan {
	return TextSpan{
		StartLine:   s.StartLine,
		StartColumn: s.StartColumn + from,
		EndLine:     s.EndLine,
		EndColumn:   s.StartColumn + to,
	}
}

// Cover returns the smallest span enclosing both s and other.
func (s TextSpan) Cover(other TextSpan) TextSpan {
	if s.IsZero() {
		return other
	}
	if other.IsZero() {
		return s
	}
	if other.StartLine < s.StartLine || (other.StartLine == s.StartLine && other.StartColumn < s.StartColumn) {
		s.StartLine, s.StartColumn = other.StartLine, other.StartColumn
	}
	if other.EndLine > s.EndLine || (other.EndLine == s.EndLine && other.EndColumn > s.EndColumn) {
		s.EndLine, s.EndColumn = other.EndLine, other.EndColumn
	}
	return s
}

// Contains reports whether the position (line, col) lies inside the span.
func (s TextSpan) Contains(line, col int) bool {
	if line < s.StartLine || line > s.EndLine {
		return false
	}
	if line == s.StartLine && col < s.StartColumn {
		return false
	}
	if line == s.EndLine && col >= s.EndColumn {
		return false
	}
	return true
}

// Before orders spans by start position, then by end position.
func (s TextSpan) Before(other TextSpan) bool {
	if s.StartLine != other.StartLine {
		return s.StartLine < other.StartLine
	}
	if s.StartColumn != other.StartColumn {
		return s.StartColumn < other.StartColumn
	}
	if s.EndLine != other.EndLine {
		return s.EndLine < other.EndLine
	}
	return s.EndColumn < other.EndColumn
}

func (s TextSpan) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.StartLine, s.StartColumn, s.EndLine, s.EndColumn)
}
