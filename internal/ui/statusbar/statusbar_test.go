package statusbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/wipboard/internal/types"
	"github.com/riordanpawley/wipboard/internal/ui/styles"
)

func TestStatusBar_RenderNormalMode(t *testing.T) {
	sb := New(types.ModeNormal, 120, styles.New())

	result := ansi.Strip(sb.Render())

	if !strings.Contains(result, "NORMAL") {
		t.Errorf("Expected status bar to contain 'NORMAL', got: %s", result)
	}
	if !strings.Contains(result, "h/l: columns") {
		t.Errorf("Expected status bar to contain navigation hints, got: %s", result)
	}
	if !strings.Contains(result, "Space: pick up") {
		t.Errorf("Expected status bar to contain pick up hint, got: %s", result)
	}
}

func TestStatusBar_RenderMoveMode(t *testing.T) {
	sb := New(types.ModeMove, 120, styles.New()).WithInfo("Fix bug")

	result := ansi.Strip(sb.Render())

	if !strings.Contains(result, "MOVE") {
		t.Errorf("Expected status bar to contain 'MOVE', got: %s", result)
	}
	if !strings.Contains(result, "←/→: move") {
		t.Errorf("Expected status bar to contain move hint, got: %s", result)
	}
	if !strings.Contains(result, "Fix bug") {
		t.Errorf("Expected status bar to contain info, got: %s", result)
	}
}

func TestStatusBar_RenderDragMode(t *testing.T) {
	result := ansi.Strip(New(types.ModeDrag, 80, styles.New()).Render())

	if !strings.Contains(result, "DRAG") {
		t.Errorf("Expected status bar to contain 'DRAG', got: %s", result)
	}
}

func TestStatusBar_NarrowWidth(t *testing.T) {
	result := New(types.ModeNormal, 30, styles.New()).WithInfo("something long").Render()

	for _, line := range strings.Split(result, "\n") {
		if w := ansi.StringWidth(line); w > 30 {
			t.Errorf("Expected width <= 30, got %d", w)
		}
	}
}

func TestGetHints(t *testing.T) {
	tests := []struct {
		mode types.Mode
		want string
	}{
		{types.ModeNormal, "h/l"},
		{types.ModeMove, "←/→"},
		{types.ModeDrag, "Release"},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			if got := GetHints(tt.mode); !strings.Contains(got, tt.want) {
				t.Errorf("GetHints(%s) = %q, want to contain %q", tt.mode, got, tt.want)
			}
		})
	}

	if got := GetHints(types.Mode(99)); got != "" {
		t.Errorf("Expected no hints for unknown mode, got %q", got)
	}
}
