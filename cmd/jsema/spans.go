package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"jsema/internal/driver"
	"jsema/internal/frontend"
	"jsema/internal/source"
)

var spansCmd = &cobra.Command{
	Use:   "spans [flags] <file.java> <line>",
	Short: "Show how literal concatenations on a line map back to source",
	Long: `Find the string literal concatenations that touch a line, print their
concatenated text and the source span of every piece. With --range, map a
character range of the text to the spans that cover it.`,
	Args: cobra.ExactArgs(2),
	RunE: runSpans,
}

func init() {
	spansCmd.Flags().String("range", "", "text range begin:end to map (end exclusive)")
	spansCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type spanJSON struct {
	StartLine int `json:"start_line"`
	StartCol  int `json:"start_col"`
	EndLine   int `json:"end_line"`
	EndCol    int `json:"end_col"`
}

type entryJSON struct {
	Offset int      `json:"offset"`
	Length int      `json:"length"`
	Span   spanJSON `json:"span"`
}

type chainJSON struct {
	Span    spanJSON    `json:"span"`
	Text    string      `json:"text,omitempty"`
	Entries []entryJSON `json:"entries,omitempty"`
	Ranged  []spanJSON  `json:"range_spans,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func toSpanJSON(s source.TextSpan) spanJSON {
	return spanJSON{StartLine: s.StartLine, StartCol: s.StartColumn + 1, EndLine: s.EndLine, EndCol: s.EndColumn + 1}
}

// formatSpan renders a span with 1-based columns, matching diagnostics.
func formatSpan(s source.TextSpan) string {
	if s.SingleLine() {
		return fmt.Sprintf("%d:%d-%d", s.StartLine, s.StartColumn+1, s.EndColumn+1)
	}
	return fmt.Sprintf("%d:%d-%d:%d", s.StartLine, s.StartColumn+1, s.EndLine, s.EndColumn+1)
}

// parseRange reads "begin:end". An empty value means no range.
func parseRange(value string) (begin, end int, ok bool, err error) {
	if value == "" {
		return 0, 0, false, nil
	}
	b, e, found := strings.Cut(value, ":")
	if !found {
		return 0, 0, false, fmt.Errorf("invalid --range %q (expected begin:end)", value)
	}
	if begin, err = strconv.Atoi(strings.TrimSpace(b)); err != nil {
		return 0, 0, false, fmt.Errorf("invalid --range begin: %w", err)
	}
	if end, err = strconv.Atoi(strings.TrimSpace(e)); err != nil {
		return 0, 0, false, fmt.Errorf("invalid --range end: %w", err)
	}
	if begin < 0 || end < begin {
		return 0, 0, false, fmt.Errorf("invalid --range %q", value)
	}
	return begin, end, true, nil
}

func runSpans(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	line, err := strconv.Atoi(args[1])
	if err != nil || line < 1 {
		return fmt.Errorf("invalid line %q", args[1])
	}
	rangeValue, err := cmd.Flags().GetString("range")
	if err != nil {
		return fmt.Errorf("failed to get range flag: %w", err)
	}
	begin, end, hasRange, err := parseRange(rangeValue)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	fs := source.NewFileSet()
	id, err := fs.Load(args[0])
	if err != nil {
		return err
	}
	parsed, err := frontend.Parse(cmd.Context(), fs.Get(id))
	if err != nil {
		return err
	}

	chains := driver.LiteralChains(parsed.Tree, line)
	out := make([]chainJSON, 0, len(chains))
	for _, c := range chains {
		cj := chainJSON{Span: toSpanJSON(c.Span)}
		if c.Err != nil {
			cj.Error = c.Err.Error()
			out = append(out, cj)
			continue
		}
		cj.Text = c.Index.Text()
		for _, e := range c.Index.Entries() {
			cj.Entries = append(cj.Entries, entryJSON{Offset: e.Offset, Length: e.Length, Span: toSpanJSON(e.Span)})
		}
		if hasRange {
			for _, s := range c.Index.SpansFor(begin, end) {
				cj.Ranged = append(cj.Ranged, toSpanJSON(s))
			}
		}
		out = append(out, cj)
	}

	w := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	if len(chains) == 0 {
		fmt.Fprintf(w, "no string literals on line %d\n", line)
		return nil
	}
	for i, c := range chains {
		if i > 0 {
			fmt.Fprintln(w)
		}
		printChain(w, c, hasRange, begin, end)
	}
	return nil
}

func printChain(w io.Writer, c driver.LiteralChain, hasRange bool, begin, end int) {
	fmt.Fprintf(w, "%s: %d literal(s)\n", formatSpan(c.Span), len(c.Parts))
	if c.Err != nil {
		fmt.Fprintf(w, "  error: %v\n", c.Err)
		return
	}
	fmt.Fprintf(w, "  text: %s\n", strconv.Quote(c.Index.Text()))
	for _, e := range c.Index.Entries() {
		fmt.Fprintf(w, "  [%d,%d) %s\n", e.Offset, e.Offset+e.Length, formatSpan(e.Span))
	}
	if hasRange {
		fmt.Fprintf(w, "  range [%d,%d):\n", begin, end)
		for _, s := range c.Index.SpansFor(begin, end) {
			fmt.Fprintf(w, "    %s\n", formatSpan(s))
		}
	}
}
