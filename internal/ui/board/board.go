// Package board renders the kanban board and maps screen cells back to
// columns and cards.
package board

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/wipboard/internal/domain"
	"github.com/riordanpawley/wipboard/internal/ui/styles"
)

// View is the interaction state layered over the board when rendering
type View struct {
	CursorTaskID   string
	CursorColumn   int
	SelectedTaskID string // keyboard selection
	DraggedTaskID  string
	DropColumnID   string // column under the pointer during a drag
	Now            time.Time
	MaxColumnWidth int // 0 splits the width evenly
}

// Render renders every column side by side
func Render(b domain.Board, v View, s *styles.Styles, width, height int) string {
	if len(b.Columns) == 0 {
		return ""
	}
	if v.Now.IsZero() {
		v.Now = time.Now()
	}

	colWidth := columnWidth(len(b.Columns), width, v.MaxColumnWidth)

	columnStrings := make([]string, 0, len(b.Columns))
	for i, col := range b.Columns {
		columnStr := renderColumn(b, col, i == v.CursorColumn, v, colWidth, height, s)

		// Force consistent width using lipgloss Width
		sized := lipgloss.NewStyle().Width(colWidth).MaxWidth(colWidth).Render(columnStr)
		columnStrings = append(columnStrings, sized)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columnStrings...)
}
