package fix

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"jsema/internal/diag"
	"jsema/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	ApplyModeAll ApplyMode = iota
	ApplyModeOnce
)

// ApplyOptions configures how fixes are selected and written.
type ApplyOptions struct {
	Mode ApplyMode
	// Codes restricts fixes to diagnostics with these codes; empty means all.
	Codes []diag.Code
	// DryRun computes the new contents without writing files.
	DryRun bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	Title       string
	Code        diag.Code
	PrimaryPath string
	EditCount   int
}

// SkippedFix captures a skipped fix with a reason.
type SkippedFix struct {
	Title  string
	Code   diag.Code
	Reason string
}

// FileChange holds the rewritten content of one file.
type FileChange struct {
	Path      string
	EditCount int
	Content   []byte
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

type byteEdit struct {
	file       source.FileID
	start, end int
	newText    string
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	edits []byteEdit
}

// Apply selects fixes from diagnostics and rewrites the affected files.
// Fixes are taken in diagnostic order; one overlapping an earlier accepted
// fix is skipped.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	accepted := make(map[source.FileID][]byteEdit)
	for _, d := range diagnostics {
		if len(opts.Codes) > 0 && !slices.Contains(opts.Codes, d.Code) {
			continue
		}
		for _, f := range d.Fixes {
			cand, reason := resolve(fs, d, f, opts.DryRun)
			if reason == "" && conflicts(accepted, cand.edits) {
				reason = "conflicts with previously applied edits"
			}
			if reason != "" {
				result.Skipped = append(result.Skipped, SkippedFix{Title: f.Title, Code: d.Code, Reason: reason})
				continue
			}
			for _, e := range cand.edits {
				accepted[e.file] = append(accepted[e.file], e)
			}
			result.Applied = append(result.Applied, AppliedFix{
				Title:       f.Title,
				Code:        d.Code,
				PrimaryPath: formatFilePath(fs, d.Primary.File),
				EditCount:   len(cand.edits),
			})
			if opts.Mode == ApplyModeOnce {
				break
			}
		}
		if opts.Mode == ApplyModeOnce && len(result.Applied) > 0 {
			break
		}
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}

	files := make([]source.FileID, 0, len(accepted))
	for id := range accepted {
		files = append(files, id)
	}
	slices.Sort(files)
	for _, id := range files {
		file := fs.Get(id)
		content := rewrite(file.Content, accepted[id])
		change := FileChange{Path: file.Path, EditCount: len(accepted[id]), Content: content}
		if !opts.DryRun {
			mode := os.FileMode(0o644)
			if info, err := os.Stat(file.Path); err == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(file.Path, content, mode); err != nil {
				return result, fmt.Errorf("write %s: %w", file.Path, err)
			}
		}
		result.FileChanges = append(result.FileChanges, change)
	}
	return result, nil
}

// resolve converts a fix to byte edits; a non-empty reason means skip.
func resolve(fs *source.FileSet, d diag.Diagnostic, f diag.Fix, dryRun bool) (candidate, string) {
	cand := candidate{diag: d, fix: f}
	if len(f.Edits) == 0 {
		return cand, "fix has no edits"
	}
	for _, edit := range f.Edits {
		file := fs.Get(edit.Loc.File)
		if file == nil {
			return cand, "unknown file"
		}
		if !dryRun && file.Flags&source.FileVirtual != 0 {
			return cand, "target file is virtual"
		}
		start, ok1 := file.ByteOffset(edit.Loc.Span.StartLine, edit.Loc.Span.StartColumn)
		end, ok2 := file.ByteOffset(edit.Loc.Span.EndLine, edit.Loc.Span.EndColumn)
		if !ok1 || !ok2 || end < start {
			return cand, "edit span out of range"
		}
		if edit.OldText != "" && string(file.Content[start:end]) != edit.OldText {
			return cand, "existing text does not match expected content"
		}
		cand.edits = append(cand.edits, byteEdit{file: edit.Loc.File, start: start, end: end, newText: edit.NewText})
	}
	return cand, ""
}

func conflicts(accepted map[source.FileID][]byteEdit, edits []byteEdit) bool {
	for _, e := range edits {
		for _, prev := range accepted[e.file] {
			if spansConflict(prev, e) {
				return true
			}
		}
	}
	return false
}

// spansConflict reports whether two half-open byte ranges overlap.
// Two insertions conflict only at the same position.
func spansConflict(a, b byteEdit) bool {
	if a.start == a.end && b.start == b.end {
		return a.start == b.start
	}
	if a.start == a.end {
		return b.start <= a.start && a.start < b.end
	}
	if b.start == b.end {
		return a.start <= b.start && b.start < a.end
	}
	return a.start < b.end && b.start < a.end
}

// rewrite applies non-overlapping edits back to front.
func rewrite(content []byte, edits []byteEdit) []byte {
	sorted := slices.Clone(edits)
	slices.SortFunc(sorted, func(a, b byteEdit) int { return b.start - a.start })
	out := slices.Clone(content)
	for _, e := range sorted {
		out = slices.Concat(out[:e.start], []byte(e.newText), out[e.end:])
	}
	return out
}

func formatFilePath(fs *source.FileSet, fileID source.FileID) string {
	file := fs.Get(fileID)
	if file == nil {
		return ""
	}
	return file.FormatPath("auto", fs.BaseDir())
}
