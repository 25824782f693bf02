package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltersScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeUnit, false},
		{LevelDetail, ScopeUnit, true},
		{LevelDetail, ScopeRule, false},
		{LevelDebug, ScopeRule, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)

	root := Begin(tr, ScopePass, "parse", 0)
	unit := Begin(tr, ScopeUnit, "unit:A.java", root.ID())
	Begin(tr, ScopeRule, "rule:S1161", unit.ID()).End("")
	unit.WithExtra("nodes", "12").End("")
	root.End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 events (rule scope filtered), got %d:\n%s", len(lines), buf.String())
	}
	var ev jsonEvent
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Kind != "end" || ev.Name != "unit:A.java" || ev.Extra["nodes"] != "12" || ev.ParentID != root.ID() {
		t.Errorf("unexpected unit end event: %+v", ev)
	}
}

func TestRingKeepsLastEvents(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopePass, name, "", 0)
	}
	snap := r.Snapshot()
	if len(snap) != 3 || snap[0].Name != "c" || snap[2].Name != "e" {
		t.Fatalf("snapshot = %+v", snap)
	}

	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "• e") {
		t.Errorf("text dump missing last event:\n%s", buf.String())
	}
}

func TestNewAndContext(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("LevelOff must give a disabled tracer, got %v %v", tr, err)
	}

	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	multi, ok := tr.(*MultiTracer)
	if !ok || multi.Ring() == nil {
		t.Fatalf("ModeBoth must give a multi tracer with a ring, got %T", tr)
	}

	ctx := WithTracer(context.Background(), tr)
	span := Begin(FromContext(ctx), ScopeDriver, "check", 0)
	ctx = WithSpan(ctx, span)
	if ParentSpan(ctx) != span.ID() {
		t.Error("span id must propagate through context")
	}
	span.End("")
	if len(multi.Ring().Snapshot()) != 2 || buf.Len() == 0 {
		t.Error("events must reach both the stream and the ring")
	}

	if FromContext(context.Background()) != Nop {
		t.Error("missing tracer must default to Nop")
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("unknown level must fail")
	}
}
