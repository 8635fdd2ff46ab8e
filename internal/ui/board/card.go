package board

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/wipboard/internal/domain"
	"github.com/riordanpawley/wipboard/internal/ui/styles"
)

// CardState is how a card should be highlighted
type CardState int

const (
	CardNormal   CardState = iota
	CardCursor             // browse cursor is on the card
	CardSelected           // picked up for keyboard movement
	CardDragged            // being dragged with the mouse
)

// renderCard renders a task card. width is the card's outer width.
func renderCard(task domain.Task, state CardState, width int, now time.Time, s *styles.Styles) string {
	cardStyle := s.Card
	switch state {
	case CardCursor:
		cardStyle = s.CardActive
	case CardSelected:
		cardStyle = s.CardSelected
	case CardDragged:
		cardStyle = s.CardDragged
	}
	// Border is drawn outside Width
	cardStyle = cardStyle.Width(width - 2)
	inner := max(width-4, 1)

	marker := ""
	if state == CardCursor || state == CardSelected {
		marker = "▶ "
	}
	titleLine := ansi.Truncate(marker+s.TaskTitle.Render(task.Title), inner, "…")

	meta := []string{s.Priority(task.Priority).Render(task.Priority.String())}
	if due := task.DueLabel(now); due != "" {
		meta = append(meta, dueStyle(task, now, s).Render(due))
	}
	if task.Assignee != nil {
		meta = append(meta, s.Avatar.Render(task.Assignee.Initials))
	}
	metaLine := ansi.Truncate(strings.Join(meta, " "), inner, "…")

	lines := []string{titleLine, metaLine}
	if len(task.Tags) > 0 {
		tags := make([]string, len(task.Tags))
		for i, tag := range task.Tags {
			tags[i] = s.Tag(tag).Render("#" + tag.Label)
		}
		lines = append(lines, ansi.Truncate(strings.Join(tags, " "), inner, "…"))
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func dueStyle(task domain.Task, now time.Time, s *styles.Styles) lipgloss.Style {
	switch {
	case task.IsOverdue(now):
		return s.DueOverdue
	case task.DueDate != nil && task.DueDate.Sub(now) <= 48*time.Hour:
		return s.DueSoon
	default:
		return s.TaskMeta
	}
}

// RenderCard is the exported version for testing
func RenderCard(task domain.Task, state CardState, width int, now time.Time, s *styles.Styles) string {
	return renderCard(task, state, width, now, s)
}
