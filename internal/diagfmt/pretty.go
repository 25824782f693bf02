package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"jsema/internal/diag"
	"jsema/internal/source"
)

type palette struct {
	err, warn, info, note, loc, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		loc:    color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.loc, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes в том же формате.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	if opts.TabWidth <= 0 {
		opts.TabWidth = 4
	}
	for i, d := range bag.Items() {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		var b strings.Builder
		header(&b, p, fs, opts, d.Primary)
		b.WriteString(p.severity(d.Severity).Sprint(d.Severity.String()))
		b.WriteByte(' ')
		b.WriteString(p.loc.Sprint(d.Code.ID()))
		b.WriteString(": ")
		b.WriteString(d.Message)
		b.WriteByte('\n')
		excerpt(&b, p, fs, opts, d.Primary, "")

		if opts.ShowNotes {
			for _, n := range d.Notes {
				header(&b, p, fs, opts, n.Loc)
				b.WriteString(p.note.Sprint("note"))
				b.WriteString(": ")
				b.WriteString(n.Msg)
				b.WriteByte('\n')
				excerpt(&b, p, fs, opts, n.Loc, "")
			}
		}
		if opts.ShowFixes {
			for _, f := range d.Fixes {
				b.WriteString(p.note.Sprint("fix"))
				b.WriteString(": ")
				b.WriteString(f.Title)
				b.WriteByte('\n')
				for _, e := range f.Edits {
					excerpt(&b, p, fs, opts, e.Loc, e.NewText)
				}
			}
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func header(b *strings.Builder, p palette, fs *source.FileSet, opts PrettyOpts, loc source.Location) {
	b.WriteString(p.loc.Sprintf("%s:%d:%d: ", formatPath(fs, loc.File, opts.PathMode), loc.Span.StartLine, loc.Span.StartColumn+1))
}

// excerpt prints the first line of loc with a caret line under the span.
// Display widths come from runewidth so wide characters keep carets aligned.
func excerpt(b *strings.Builder, p palette, fs *source.FileSet, opts PrettyOpts, loc source.Location, replacement string) {
	f := fs.Get(loc.File)
	if f == nil || loc.Span.StartLine <= 0 {
		return
	}
	if loc.Span.StartLine > f.LineCount() {
		return
	}
	lineNum, err := safecast.Conv[uint32](loc.Span.StartLine)
	if err != nil {
		return
	}
	line := f.GetLine(lineNum)
	runes := []rune(line)
	startCol := clamp(loc.Span.StartColumn, 0, len(runes))
	endCol := len(runes)
	if loc.Span.SingleLine() {
		endCol = clamp(loc.Span.EndColumn, startCol, len(runes))
	}
	expanded := expandTabs(runes, opts.TabWidth)
	pad := displayWidth(runes[:startCol], opts.TabWidth)
	width := max(displayWidth(runes[startCol:endCol], opts.TabWidth), 1)

	gutter := fmt.Sprintf("%5d | ", loc.Span.StartLine)
	b.WriteString(p.gutter.Sprint(gutter))
	b.WriteString(expanded)
	b.WriteByte('\n')
	b.WriteString(p.gutter.Sprint(strings.Repeat(" ", len(gutter)-2) + "| "))
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(p.caret.Sprint("^" + strings.Repeat("~", width-1)))
	if replacement != "" {
		b.WriteString(" ")
		b.WriteString(p.caret.Sprintf("%q", replacement))
	}
	b.WriteByte('\n')
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func displayWidth(runes []rune, tab int) int {
	w := 0
	for _, r := range runes {
		if r == '\t' {
			w += tab - w%tab
			continue
		}
		w += runewidth.RuneWidth(r)
	}
	return w
}

func expandTabs(runes []rune, tab int) string {
	var b strings.Builder
	w := 0
	for _, r := range runes {
		if r == '\t' {
			n := tab - w%tab
			b.WriteString(strings.Repeat(" ", n))
			w += n
			continue
		}
		b.WriteRune(r)
		w += runewidth.RuneWidth(r)
	}
	return b.String()
}
