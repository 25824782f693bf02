package fix

import (
	"jsema/internal/diag"
	"jsema/internal/source"
)

// InsertText creates a fix that inserts text before at's start.
func InsertText(title string, at source.Location, text string) diag.Fix {
	at.Span.EndLine, at.Span.EndColumn = at.Span.StartLine, at.Span.StartColumn
	return diag.Fix{
		Title: title,
		Edits: []diag.FixEdit{{Loc: at, NewText: text}},
	}
}

// ReplaceSpan replaces the text under loc, guarded by expect when non-empty.
func ReplaceSpan(title string, loc source.Location, newText, expect string) diag.Fix {
	return diag.Fix{
		Title: title,
		Edits: []diag.FixEdit{{Loc: loc, NewText: newText, OldText: expect}},
	}
}

// DeleteSpan removes the text under loc.
func DeleteSpan(title string, loc source.Location, expect string) diag.Fix {
	return ReplaceSpan(title, loc, "", expect)
}
