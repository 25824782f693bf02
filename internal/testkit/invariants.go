package testkit

import (
	"fmt"
	"unicode/utf8"

	"jsema/internal/spanindex"
)

// CheckIndexInvariants runs the span index invariants:
// 1) entries are sorted by offset and every span is single-line
// 2) entry lengths add up to the text length
// 3) every offset in [0, Len) is covered by exactly one entry
// 4) a one-character query at every offset yields exactly one span on the
// covering entry's line
func CheckIndexInvariants(ix *spanindex.Index) error {
	if ix == nil {
		return fmt.Errorf("nil index")
	}
	if got := utf8.RuneCountInString(ix.Text()); got != ix.Len() {
		return fmt.Errorf("text has %d runes, index length %d", got, ix.Len())
	}
	entries := ix.Entries()
	total := 0
	for i, e := range entries {
		if !e.Span.SingleLine() {
			return fmt.Errorf("entry %d spans lines: %v", i, e.Span)
		}
		if i > 0 && entries[i-1].Offset >= e.Offset {
			return fmt.Errorf("entry %d offset %d not after %d", i, e.Offset, entries[i-1].Offset)
		}
		if e.Length < 0 {
			return fmt.Errorf("entry %d has negative length", i)
		}
		total += e.Length
	}
	if total != ix.Len() {
		return fmt.Errorf("entry lengths sum to %d, index length %d", total, ix.Len())
	}

	for off := range ix.Len() {
		covering := -1
		for i, e := range entries {
			if e.Offset <= off && off < e.Offset+e.Length {
				if covering >= 0 {
					return fmt.Errorf("offset %d covered by entries %d and %d", off, covering, i)
				}
				covering = i
			}
		}
		if covering < 0 {
			return fmt.Errorf("offset %d not covered", off)
		}
		spans := ix.SpansFor(off, off+1)
		if len(spans) != 1 {
			return fmt.Errorf("SpansFor(%d,%d) returned %d spans", off, off+1, len(spans))
		}
		if spans[0].StartLine != entries[covering].Span.StartLine {
			return fmt.Errorf("offset %d mapped to line %d, entry is on line %d", off, spans[0].StartLine, entries[covering].Span.StartLine)
		}
	}
	return nil
}
