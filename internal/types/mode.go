// Package types contains shared types used across the application.
package types

// Mode represents the current interaction mode
type Mode int

const (
	ModeNormal Mode = iota // browsing with the cursor
	ModeMove               // a task is selected; arrows move it
	ModeDrag               // a mouse drag is in progress
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeMove:
		return "MOVE"
	case ModeDrag:
		return "DRAG"
	default:
		return "UNKNOWN"
	}
}
