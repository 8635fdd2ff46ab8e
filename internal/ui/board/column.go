package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/wipboard/internal/core/wip"
	"github.com/riordanpawley/wipboard/internal/domain"
	"github.com/riordanpawley/wipboard/internal/ui/styles"
)

// renderColumn renders a column header with its WIP badge, then the column
// body with its task cards
func renderColumn(b domain.Board, col domain.Column, isActive bool, v View, width, height int, s *styles.Styles) string {
	header := renderHeader(col, wip.UsageOf(b, col), isActive, width, s)

	columnStyle := s.Column
	if v.DropColumnID == col.ID {
		columnStyle = s.ColumnDropTarget
	}
	rows := bodyHeight(height)
	columnStyle = columnStyle.Width(width - 2).Height(rows)

	var content string
	switch tasks := b.ColumnTasks(col.ID); {
	case col.Collapsed:
		content = s.ColumnEmpty.Render(fmt.Sprintf("▸ %d hidden", len(tasks)))
	case len(tasks) == 0:
		content = s.ColumnEmpty.Render("No tasks")
	default:
		shown, hidden := visibleTasks(tasks, rows)
		cards := make([]string, 0, len(shown)+1)
		for _, t := range shown {
			cards = append(cards, renderCard(t, cardState(t.ID, isActive, v), width-4, v.Now, s))
		}
		if hidden > 0 {
			cards = append(cards, s.ColumnCount.Render(fmt.Sprintf("+%d more", hidden)))
		}
		content = strings.Join(cards, "\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, columnStyle.Render(content))
}

// renderHeader renders "Title n" followed by the WIP badge, on one line
func renderHeader(col domain.Column, usage wip.Usage, isActive bool, width int, s *styles.Styles) string {
	headerStyle := s.ColumnHeader
	if isActive {
		headerStyle = s.ColumnHeaderActive
	}

	parts := []string{headerStyle.Render(col.Title), s.ColumnCount.Render(fmt.Sprint(usage.Count))}
	if label := usage.Label(); label != "" {
		if usage.Reached() {
			parts = append(parts, s.WIPBadgeReached.Render("⚠ "+label))
		} else {
			parts = append(parts, s.WIPBadge.Render(label))
		}
	}
	return ansi.Truncate(strings.Join(parts, " "), width, "…")
}

func cardState(taskID string, isActive bool, v View) CardState {
	switch {
	case v.DraggedTaskID == taskID:
		return CardDragged
	case v.SelectedTaskID == taskID:
		return CardSelected
	case isActive && v.CursorTaskID == taskID:
		return CardCursor
	default:
		return CardNormal
	}
}
