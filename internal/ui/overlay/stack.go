package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Stack manages a stack of overlays with push/pop operations
type Stack struct {
	overlays []Overlay
	styles   *Styles
}

// NewStack creates a new empty overlay stack
func NewStack() *Stack {
	return &Stack{
		overlays: make([]Overlay, 0),
		styles:   New(),
	}
}

// Push adds an overlay to the top of the stack
func (s *Stack) Push(o Overlay) tea.Cmd {
	s.overlays = append(s.overlays, o)
	return o.Init()
}

// Pop removes and returns the top overlay from the stack
// Returns nil if the stack is empty
func (s *Stack) Pop() Overlay {
	if len(s.overlays) == 0 {
		return nil
	}

	top := s.overlays[len(s.overlays)-1]
	s.overlays = s.overlays[:len(s.overlays)-1]
	return top
}

// Current returns the top overlay without removing it
// Returns nil if the stack is empty
func (s *Stack) Current() Overlay {
	if len(s.overlays) == 0 {
		return nil
	}
	return s.overlays[len(s.overlays)-1]
}

// Len returns the number of open overlays
func (s *Stack) Len() int {
	return len(s.overlays)
}

// IsEmpty returns true if the stack has no overlays
func (s *Stack) IsEmpty() bool {
	return len(s.overlays) == 0
}

// Clear removes all overlays from the stack
func (s *Stack) Clear() {
	s.overlays = make([]Overlay, 0)
}

// Update forwards the message to the current overlay and handles CloseOverlayMsg
func (s *Stack) Update(msg tea.Msg) tea.Cmd {
	if s.IsEmpty() {
		return nil
	}

	if _, ok := msg.(CloseOverlayMsg); ok {
		s.Pop()
		return nil
	}

	current := s.Current()
	newModel, cmd := current.Update(msg)

	if newOverlay, ok := newModel.(Overlay); ok {
		s.overlays[len(s.overlays)-1] = newOverlay
	}

	return cmd
}

// View renders the top overlay boxed and centered in a width x height area.
// Empty when the stack is empty.
func (s *Stack) View(width, height int) string {
	current := s.Current()
	if current == nil {
		return ""
	}

	content := current.View()
	if title := current.Title(); title != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, s.styles.Title.Render(title), content)
	}

	w, _ := current.Size()
	box := s.styles.Overlay.Width(min(w, max(width-2, 0))).Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
