package statusbar

import "github.com/riordanpawley/wipboard/internal/types"

// GetHints returns the keybinding hints for the given mode
func GetHints(mode types.Mode) string {
	switch mode {
	case types.ModeNormal:
		return "h/l: columns  j/k: tasks  Space: pick up  n: new  e: edit  ?: help  q: quit"
	case types.ModeMove:
		return "←/→: move  ↑/↓: focus  Space/Esc: drop"
	case types.ModeDrag:
		return "Release over a column to drop"
	default:
		return ""
	}
}
