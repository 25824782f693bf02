//go:build cgo

package fuzztests

import (
	"context"
	"testing"
	"time"

	"jsema/internal/ast"
	"jsema/internal/binding"
	"jsema/internal/checks"
	"jsema/internal/diag"
	"jsema/internal/frontend"
	"jsema/internal/source"
	"jsema/internal/symbols"
)

// analyzeTimeout bounds one input; exceeding it points at a loop in the
// converter or a rule.
const analyzeTimeout = 5 * time.Second

func FuzzAnalyzeUnit(f *testing.F) {
	addJavaSeeds(f)
	rules := checks.Default().Rules()
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		input = append([]byte(nil), input...)

		ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("Fuzz.java", input))
			parsed, err := frontend.Parse(ctx, file)
			if err != nil {
				return
			}
			tbl, b := binding.Bind([]*ast.Tree{parsed.Tree})
			sema := symbols.New(tbl, b, file.ID)
			cctx := checks.NewContext(sema, diag.BagReporter{Bag: diag.NewBag(256)}, file)
			checks.Run(cctx, rules)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("analysis hang detected after %v\ninput (%d bytes): %q",
				analyzeTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], "..."...)
}
