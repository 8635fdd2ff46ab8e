// Package move holds the result type shared by the drag and keyboard engines.
package move

import "github.com/riordanpawley/wipboard/internal/domain"

// Reason explains why a transition did not emit a move request
type Reason int

const (
	None Reason = iota
	NotDragging
	SameColumn
	WIPLimit
	NoSelection
	StaleSelection
	Boundary
)

func (r Reason) String() string {
	return [...]string{"none", "not dragging", "same column", "wip limit", "no selection", "stale selection", "boundary"}[r]
}

// Result is the outcome of feeding one message into an engine
type Result struct {
	// Request is set when the transition emitted a move request
	Request *domain.MoveRequest
	// Changed reports whether observable interaction state changed
	Changed bool
	// Blocked is the reason no request was emitted, if the message asked for one
	Blocked Reason
}

// Emitted reports whether the result carries a move request
func (r Result) Emitted() bool {
	return r.Request != nil
}

// Emit builds a result carrying a move request
func Emit(taskID, from, to string) Result {
	return Result{
		Request: &domain.MoveRequest{TaskID: taskID, FromColumnID: from, ToColumnID: to},
		Changed: true,
	}
}
