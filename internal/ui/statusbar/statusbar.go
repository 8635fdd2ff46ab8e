package statusbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/wipboard/internal/types"
	"github.com/riordanpawley/wipboard/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode   types.Mode
	info   string
	width  int
	styles *styles.Styles
}

// New creates a new StatusBar with the given mode, width, and styles
func New(mode types.Mode, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		width:  width,
		styles: styles,
	}
}

// WithInfo sets the right-aligned info text, e.g. the picked-up task
func (sb StatusBar) WithInfo(info string) StatusBar {
	sb.info = info
	return sb
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	modeBadge := sb.styles.StatusMode.Render(" " + sb.mode.String() + " ")

	content := modeBadge
	if hints := GetHints(sb.mode); hints != "" {
		separator := sb.styles.StatusHint.Render(" │ ")
		content = lipgloss.JoinHorizontal(lipgloss.Left, modeBadge, separator, sb.styles.StatusHint.Render(hints))
	}

	// Status bar padding takes 2 cells
	inner := max(sb.width-2, 0)
	if sb.info != "" {
		info := sb.styles.StatusInfo.Render(sb.info)
		gap := inner - ansi.StringWidth(content) - ansi.StringWidth(info)
		if gap >= 1 {
			content += strings.Repeat(" ", gap) + info
		}
	}
	content = ansi.Truncate(content, inner, "…")

	return sb.styles.StatusBar.Width(sb.width).Render(content)
}
