package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"jsema/internal/source"
	"jsema/internal/version"
)

func TestReadUIMode(t *testing.T) {
	cases := map[string]uiMode{"": uiModeAuto, "auto": uiModeAuto, " ON ": uiModeOn, "off": uiModeOff}
	for in, want := range cases {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Fatalf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	if !shouldUseTUI(uiModeOn) || shouldUseTUI(uiModeOff) {
		t.Fatalf("explicit modes must win over terminal detection")
	}
}

func TestReadColorMode(t *testing.T) {
	for in, want := range map[string]string{"": "auto", "On": "on", "off": "off"} {
		if got, err := readColorMode(in); err != nil || got != want {
			t.Fatalf("readColorMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readColorMode("rainbow"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseRange(t *testing.T) {
	if _, _, ok, err := parseRange(""); ok || err != nil {
		t.Fatalf("empty range: ok=%v err=%v", ok, err)
	}
	b, e, ok, err := parseRange("3:10")
	if err != nil || !ok || b != 3 || e != 10 {
		t.Fatalf("got %d:%d ok=%v err=%v", b, e, ok, err)
	}
	for _, bad := range []string{"3", "a:1", "1:b", "5:2", "-1:2"} {
		if _, _, _, err := parseRange(bad); err == nil {
			t.Fatalf("parseRange(%q) should fail", bad)
		}
	}
}

func TestFormatSpan(t *testing.T) {
	if got := formatSpan(source.LineSpan(4, 0, 5)); got != "4:1-6" {
		t.Fatalf("single line: %q", got)
	}
	if got := formatSpan(source.NewTextSpan(4, 2, 6, 3)); got != "4:3-6:4" {
		t.Fatalf("multi line: %q", got)
	}
}

func TestResolveConfig(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src", "p")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatal(err)
	}
	conf := "[rules]\ndisabled = [\"S6212\"]\n"
	if err := os.WriteFile(filepath.Join(root, "jsema.toml"), []byte(conf), 0o600); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(src, "A.java")
	if err := os.WriteFile(file, []byte("class A {}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := resolveConfig("", []string{file})
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg.Root != root || len(cfg.Rules.Disabled) != 1 {
		t.Fatalf("discovered config = %+v", cfg)
	}

	explicit, err := resolveConfig(filepath.Join(root, "jsema.toml"), nil)
	if err != nil {
		t.Fatalf("explicit config: %v", err)
	}
	if explicit.Root != root {
		t.Fatalf("root = %q, want %q", explicit.Root, root)
	}
}

func TestVersionCommand(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		color.NoColor = prev
		versionFormat = "pretty"
	})

	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionFormat = "pretty"
	if err := versionCmd.RunE(versionCmd, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "jsema "+version.Version) {
		t.Fatalf("pretty output %q", buf.String())
	}

	buf.Reset()
	versionFormat = "json"
	if err := versionCmd.RunE(versionCmd, nil); err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("json output: %v", err)
	}
	if payload.Tool != "jsema" || payload.Version != version.Version {
		t.Fatalf("payload = %+v", payload)
	}

	versionFormat = "xml"
	if err := versionCmd.RunE(versionCmd, nil); err == nil {
		t.Fatalf("unknown format should fail")
	}
}
