// Package overlay provides the modal dialogs drawn over the board.
package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/wipboard/internal/domain"
)

// Overlay represents a modal overlay component
type Overlay interface {
	tea.Model
	Title() string
	Size() (width, height int)
}

// CloseOverlayMsg signals that the overlay should be closed
type CloseOverlayMsg struct{}

// SelectionMsg is sent when a dialog resolves. Key identifies the question.
type SelectionMsg struct {
	Key   string
	Value any
}

// SaveTaskMsg is sent when the task form is submitted. The form stays open
// until the caller pops it, so a rejected save keeps the user's input.
type SaveTaskMsg struct {
	Fields domain.TaskFields
}

// DeleteTaskMsg asks to delete the task open in the form
type DeleteTaskMsg struct{}
