package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Skill Assessment", Status{User: "user 7", APIHost: "localhost:5000", Online: true}, 100)
	for _, want := range []string{"CareerPrep", "Skill Assessment", "user 7", "localhost:5000"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}

	guest := RenderHeader("Home", Status{}, 80)
	if !strings.Contains(guest, "guest") {
		t.Error("header without user should say guest")
	}
}

func TestRenderFrame_FillsHeight(t *testing.T) {
	header := RenderHeader("Home", Status{}, 80)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 80)
	frame := RenderFrame(header, "body", footer, 80, 30)
	if got := lipgloss.Height(frame); got != 30 {
		t.Errorf("frame height = %d, want 30", got)
	}
}

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{120, 20, true},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}
