//go:build cgo

package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"jsema/internal/diag"
	"jsema/internal/observ"
	"jsema/internal/project"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

const baseJava = `package p;

public class Base {
    public void run() {}
}
`

const childJava = `package p;

import java.util.regex.Pattern;

public class Child extends Base {
    public void run() {
        String s = "x";
        Object re = Pattern.compile("a||b");
    }
}
`

func codes(diags []diag.Diagnostic) map[diag.Code]int {
	out := make(map[diag.Code]int)
	for _, d := range diags {
		out[d.Code]++
	}
	return out
}

func TestCheckProject(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/p/Base.java":  baseJava,
		"src/p/Child.java": childJava,
		"build/p/Gen.java": "class Gen extends Gen {}",
		"src/p/README.txt": "not java",
	})
	cfg := project.Default(root)
	cfg.Analysis.Exclude = []string{"build/**"}

	var (
		mu     sync.Mutex
		events []Event
	)
	timer := observ.NewTimer()
	res, err := Check(context.Background(), Options{
		Config: cfg,
		Jobs:   2,
		Timer:  timer,
		Progress: SinkFunc(func(ev Event) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, ev)
		}),
	})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(res.Files) != 2 {
		t.Fatalf("want 2 files, got %v", res.Files)
	}
	got := codes(res.Diagnostics())
	if got[diag.MissingOverride] != 1 || got[diag.UseVarForLocal] != 1 || got[diag.EmptyRegexAlternative] != 1 {
		t.Fatalf("unexpected diagnostics %v", got)
	}
	if len(timer.Report().Phases) < 4 {
		t.Fatalf("want load/parse/bind/analyze phases, got %+v", timer.Report().Phases)
	}
	if len(events) == 0 {
		t.Fatalf("no progress events")
	}

	cfg.Rules.Disabled = []string{"S6212"}
	res, err = Check(context.Background(), Options{Config: cfg, Jobs: 1})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if codes(res.Diagnostics())[diag.UseVarForLocal] != 0 {
		t.Fatalf("disabled rule still reported")
	}
}

func TestCheckUsesCache(t *testing.T) {
	root := writeProject(t, map[string]string{"p/Base.java": baseJava, "p/Child.java": childJava})
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Config: project.Default(root), Cache: cache}

	first, err := Check(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHit {
		t.Fatalf("first run cannot hit the cache")
	}
	second, err := Check(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheHit {
		t.Fatalf("second run should hit the cache")
	}
	if second.RunID == first.RunID || second.CachedFrom != first.RunID {
		t.Fatalf("run ids: first=%s second=%s cachedFrom=%s", first.RunID, second.RunID, second.CachedFrom)
	}
	if len(second.Diagnostics()) != len(first.Diagnostics()) {
		t.Fatalf("cached %d diagnostics, fresh run had %d", len(second.Diagnostics()), len(first.Diagnostics()))
	}

	if err := os.WriteFile(filepath.Join(root, "p/Child.java"), []byte("package p;\nclass Child extends Base {}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	third, err := Check(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheHit || len(third.Diagnostics()) != 0 {
		t.Fatalf("edited file must invalidate the cache: hit=%v diags=%d", third.CacheHit, len(third.Diagnostics()))
	}
}

func TestCheckReportsCycles(t *testing.T) {
	root := writeProject(t, map[string]string{
		"A.java": "class A extends B {}\n",
		"B.java": "class B extends A {}\n",
	})
	res, err := Check(context.Background(), Options{Config: project.Default(root)})
	if err != nil {
		t.Fatal(err)
	}
	if got := codes(res.Diagnostics())[diag.CyclicInheritance]; got != 2 {
		t.Fatalf("want 2 cycle diagnostics, got %d", got)
	}
}

func TestLoadAttachesSema(t *testing.T) {
	root := writeProject(t, map[string]string{"p/Base.java": baseJava, "p/Child.java": childJava})
	res, err := Load(context.Background(), Options{Config: project.Default(root)})
	if err != nil {
		t.Fatal(err)
	}
	u, ok := res.Unit(filepath.Join(root, "p/Child.java"))
	if !ok || u.Sema == nil {
		t.Fatalf("unit not found or not analysed")
	}
	report := res.Overrides(u)
	if len(report) != 1 || len(report[0].Overridden) != 1 || report[0].Overridden[0].Owner != "p.Base" {
		t.Fatalf("overrides = %+v", report)
	}
	if codes(res.Diagnostics())[diag.MissingOverride] != 0 {
		t.Fatalf("Load must not run rules")
	}
}
