package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestString(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate }()

	tests := []struct {
		version, commit, date string
		want                  string
	}{
		{"1.2.3", "", "", "jsema 1.2.3"},
		{"1.2.3", "abc123", "", "jsema 1.2.3 (abc123)"},
		{"0.1.0-dev", "abc123", "2024-01-15", "jsema 0.1.0-dev (abc123, 2024-01-15)"},
	}
	for _, tt := range tests {
		Version, GitCommit, BuildDate = tt.version, tt.commit, tt.date
		if got := String(false); got != tt.want {
			t.Errorf("String(false) = %q, want %q", got, tt.want)
		}
	}
}

func TestColoredKeepsText(t *testing.T) {
	origVersion, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = origVersion, origNoColor }()

	color.NoColor = true
	for _, v := range []string{"1.2.3", "2.0.0-alpha", "1.2.3-rc.1+build.123", "weird"} {
		Version = v
		if got := Colored(); got != v {
			t.Errorf("Colored() = %q, want %q", got, v)
		}
	}
}
