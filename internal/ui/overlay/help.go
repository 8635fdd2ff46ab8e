package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyBinding represents a single keybinding entry
type KeyBinding struct {
	Key         string
	Description string
}

// KeyCategory represents a category of keybindings
type KeyCategory struct {
	Name     string
	Bindings []KeyBinding
}

// HelpOverlay displays keybinding reference
type HelpOverlay struct {
	styles     *Styles
	scroll     int
	viewHeight int
}

// NewHelpOverlay creates a new help overlay
func NewHelpOverlay() *HelpOverlay {
	return &HelpOverlay{
		styles:     New(),
		viewHeight: 20,
	}
}

// Init initializes the overlay
func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	switch keyMsg.String() {
	case "esc", "q", "?":
		return h, func() tea.Msg { return CloseOverlayMsg{} }
	case "j", "down":
		h.scroll = min(h.scroll+1, h.maxScroll())
	case "k", "up":
		h.scroll = max(h.scroll-1, 0)
	case "g":
		h.scroll = 0
	case "G":
		h.scroll = h.maxScroll()
	}

	return h, nil
}

func (h *HelpOverlay) lines() []string {
	var lines []string
	for i, cat := range Categories() {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, h.styles.MenuHeader.Render(cat.Name+":"))
		for _, binding := range cat.Bindings {
			lines = append(lines, "  "+h.styles.MenuKey.Render(padRight(binding.Key, 10))+h.styles.MenuItem.Render(binding.Description))
		}
	}
	return lines
}

func (h *HelpOverlay) maxScroll() int {
	return max(0, len(h.lines())-h.viewHeight)
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	lines := h.lines()
	start := min(h.scroll, h.maxScroll())
	end := min(start+h.viewHeight, len(lines))

	result := strings.Join(lines[start:end], "\n")
	if h.maxScroll() > 0 {
		result += "\n" + h.styles.Footer.Render("j/k to scroll, g/G to jump")
	}
	return result
}

// Title returns the overlay title
func (h *HelpOverlay) Title() string {
	return "Help"
}

// Size returns the overlay dimensions
func (h *HelpOverlay) Size() (width, height int) {
	return 56, h.viewHeight + 4
}

// Categories returns every keybinding category shown in help
func Categories() []KeyCategory {
	return []KeyCategory{
		{
			Name: "Browse",
			Bindings: []KeyBinding{
				{Key: "h/l ←/→", Description: "Move between columns"},
				{Key: "j/k ↑/↓", Description: "Move up/down in column"},
				{Key: "g / G", Description: "Top / bottom of column"},
				{Key: "0 / $", Description: "First / last column"},
				{Key: "Ctrl+D/U", Description: "Half page down/up"},
			},
		},
		{
			Name: "Move",
			Bindings: []KeyBinding{
				{Key: "Space", Description: "Pick up / drop the focused task"},
				{Key: "←/→", Description: "Move picked task to next column"},
				{Key: "↑/↓", Description: "Change focus within the column"},
				{Key: "Esc", Description: "Drop the task"},
				{Key: "Mouse", Description: "Drag a card onto another column"},
			},
		},
		{
			Name: "Tasks",
			Bindings: []KeyBinding{
				{Key: "n", Description: "New task in this column"},
				{Key: "e/Enter", Description: "Edit task"},
				{Key: "d", Description: "Delete task"},
				{Key: "c", Description: "Collapse / expand column"},
			},
		},
		{
			Name: "Other",
			Bindings: []KeyBinding{
				{Key: "?", Description: "Help (this screen)"},
				{Key: "Ctrl+L", Description: "Refresh screen"},
				{Key: "q", Description: "Quit"},
			},
		},
	}
}

func padRight(s string, n int) string {
	if w := len([]rune(s)); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s + " "
}
