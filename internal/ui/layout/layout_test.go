package layout

import (
	"strings"
	"testing"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{80, 23, true},
		{120, 40, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestIsCompact(t *testing.T) {
	if IsCompact(120, 30) {
		t.Error("120x30 should not be compact")
	}
	if !IsCompact(90, 30) || !IsCompact(120, 16) {
		t.Error("narrow or short content area should be compact")
	}
}

func TestRenderFrameFillsHeight(t *testing.T) {
	out := RenderFrame("h", "body", "f", 20, 10)
	if got := strings.Count(out, "\n") + 1; got != 10 {
		t.Errorf("frame has %d lines, want 10", got)
	}
}

func TestRenderHeaderShowsVersion(t *testing.T) {
	out := RenderHeader("Sections", "2024.1", 100)
	for _, want := range []string{"ctdguide", "Sections", "2024.1"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}

	out = RenderHeader("Home", "", 100)
	if strings.Contains(out, "catalog") {
		t.Errorf("header without version should not mention catalog:\n%s", out)
	}
}

func TestRenderFooter(t *testing.T) {
	out := RenderFooter([]KeyHint{{Key: "Enter", Description: "Select"}}, 80)
	if !strings.Contains(out, "Enter") || !strings.Contains(out, "Select") {
		t.Errorf("footer missing hint:\n%s", out)
	}
}
