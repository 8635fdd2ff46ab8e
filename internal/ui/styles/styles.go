package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/wipboard/internal/domain"
)

// Styles holds all the UI styles
type Styles struct {
	// Board
	Board              lipgloss.Style
	Column             lipgloss.Style
	ColumnDropTarget   lipgloss.Style
	ColumnHeader       lipgloss.Style
	ColumnHeaderActive lipgloss.Style
	ColumnCount        lipgloss.Style
	ColumnEmpty        lipgloss.Style

	// WIP badge
	WIPBadge        lipgloss.Style
	WIPBadgeReached lipgloss.Style

	// Cards
	Card         lipgloss.Style
	CardActive   lipgloss.Style
	CardSelected lipgloss.Style
	CardDragged  lipgloss.Style
	TaskTitle    lipgloss.Style
	TaskMeta     lipgloss.Style
	DueOverdue   lipgloss.Style
	DueSoon      lipgloss.Style
	Avatar       lipgloss.Style

	// Badges
	PriorityBadge func(priority int) lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusMode lipgloss.Style
	StatusHint lipgloss.Style
	StatusInfo lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
}

// New creates a new Styles instance with Catppuccin Macchiato theme
func New() *Styles {
	return &Styles{
		Board: lipgloss.NewStyle().
			Background(Base),

		Column: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface1).
			Padding(0, 1),

		ColumnDropTarget: lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(Teal).
			Padding(0, 1),

		ColumnHeader: lipgloss.NewStyle().
			Foreground(Subtext0).
			Bold(true).
			Padding(0, 1),

		ColumnHeaderActive: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true).
			Padding(0, 1),

		ColumnCount: lipgloss.NewStyle().
			Foreground(Overlay1),

		ColumnEmpty: lipgloss.NewStyle().
			Foreground(Overlay0).
			Italic(true),

		WIPBadge: lipgloss.NewStyle().
			Foreground(Subtext0).
			Padding(0, 1),

		WIPBadgeReached: lipgloss.NewStyle().
			Foreground(Base).
			Background(Red).
			Bold(true).
			Padding(0, 1),

		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface1).
			Padding(0, 1),

		CardActive: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Lavender).
			Padding(0, 1),

		CardSelected: lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(Mauve).
			Padding(0, 1),

		CardDragged: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface0).
			Foreground(Overlay0).
			Faint(true).
			Padding(0, 1),

		TaskTitle: lipgloss.NewStyle().
			Foreground(Text),

		TaskMeta: lipgloss.NewStyle().
			Foreground(Subtext0),

		DueOverdue: lipgloss.NewStyle().
			Foreground(Red).
			Bold(true),

		DueSoon: lipgloss.NewStyle().
			Foreground(Yellow),

		Avatar: lipgloss.NewStyle().
			Foreground(Base).
			Background(Sapphire).
			Bold(true),

		PriorityBadge: func(priority int) lipgloss.Style {
			return lipgloss.NewStyle().
				Foreground(Base).
				Background(PriorityColor(priority)).
				Padding(0, 1).
				Bold(true)
		},

		StatusBar: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(Blue).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(Subtext0),

		ToastInfo: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Blue).
			Foreground(Blue).
			Padding(0, 1),

		ToastSuccess: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Foreground(Green).
			Padding(0, 1),

		ToastWarning: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Yellow).
			Foreground(Yellow).
			Padding(0, 1),

		ToastError: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Foreground(Red).
			Padding(0, 1),
	}
}

// Priority returns the badge style for a task priority
func (s *Styles) Priority(p domain.Priority) lipgloss.Style {
	return s.PriorityBadge(int(p))
}

// Tag returns a style coloured by the tag's hex color, falling back to the
// palette when the tag has none
func (s *Styles) Tag(tag domain.Tag) lipgloss.Style {
	color := lipgloss.Color(tag.Color)
	if tag.Color == "" {
		color = Overlay2
	}
	return lipgloss.NewStyle().Foreground(color)
}
