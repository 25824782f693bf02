package diag

import (
	"jsema/internal/source"
)

// Note is a secondary location attached to a diagnostic.
type Note struct {
	Loc source.Location
	Msg string
}

// FixEdit replaces the text under Loc with NewText. A non-empty OldText
// guards the edit: it is skipped when the source no longer matches.
type FixEdit struct {
	Loc     source.Location
	NewText string
	OldText string
}

type Fix struct {
	Title string
	Edits []FixEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Location
	Notes    []Note
	Fixes    []Fix
}
