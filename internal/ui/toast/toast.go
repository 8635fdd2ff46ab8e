package toast

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/wipboard/internal/types"
	"github.com/riordanpawley/wipboard/internal/ui/styles"
)

// ToastRenderer handles rendering of toast notifications
type ToastRenderer struct {
	styles *styles.Styles
}

// New creates a new ToastRenderer with the given styles
func New(styles *styles.Styles) *ToastRenderer {
	return &ToastRenderer{
		styles: styles,
	}
}

// Render renders the unexpired toasts stacked and right-aligned.
// Returns empty string if none are left to display.
func (r *ToastRenderer) Render(toasts []types.Toast, width int, now time.Time) string {
	toastWidth := min(width/3, 40)

	var rendered []string
	for _, t := range toasts {
		if t.Expired(now) {
			continue
		}
		rendered = append(rendered, r.styleForLevel(t.Level).Width(toastWidth).Render(t.Message))
	}
	if len(rendered) == 0 {
		return ""
	}

	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

// styleForLevel returns the appropriate style for a toast level
func (r *ToastRenderer) styleForLevel(level types.ToastLevel) lipgloss.Style {
	switch level {
	case types.ToastSuccess:
		return r.styles.ToastSuccess
	case types.ToastWarning:
		return r.styles.ToastWarning
	case types.ToastError:
		return r.styles.ToastError
	default:
		return r.styles.ToastInfo
	}
}
