package version

import (
	"os"
	"testing"

	"github.com/fatih/color"
)

func TestColoredPlain(t *testing.T) {
	prevNoColor, prevVersion := color.NoColor, Version
	t.Cleanup(func() { color.NoColor, Version = prevNoColor, prevVersion })
	color.NoColor = true

	tests := []struct {
		version string
		want    string
	}{
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3", "1.2.3"},
		{"1.2.3-rc.1", "1.2.3-rc.1"},
		{"nightly", "nightly"},
	}
	for _, tt := range tests {
		Version = tt.version
		if got := Colored(); got != tt.want {
			t.Errorf("Colored() with %q = %q, want %q", tt.version, got, tt.want)
		}
	}
}

func TestColoredHighlightsComponents(t *testing.T) {
	if os.Getenv("NO_COLOR") != "" {
		t.Skip("NO_COLOR is set")
	}
	prevNoColor, prevVersion := color.NoColor, Version
	t.Cleanup(func() { color.NoColor, Version = prevNoColor, prevVersion })
	color.NoColor = false
	Version = "2.4.6"

	got := Colored()
	if got == Version {
		t.Fatalf("expected escape sequences, got %q", got)
	}
	if want := majorColor.Sprint("2"); got[:len(want)] != want {
		t.Fatalf("major component not highlighted: %q", got)
	}
}
