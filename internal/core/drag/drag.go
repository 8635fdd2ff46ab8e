// Package drag implements the pointer drag-and-drop state machine.
//
// States:
//
//	Idle
//	Dragging(taskID, sourceColumnID, hoverColumnID?)
//
// Start enters Dragging. Over and Leave only move the hover column. Drop and
// End always return to Idle; only a Drop onto a different column that the WIP
// policy admits emits a move request. Rejected drops fail silently: the WIP
// badge is the feedback channel.
package drag

import (
	"github.com/riordanpawley/wipboard/internal/core/move"
	"github.com/riordanpawley/wipboard/internal/core/wip"
	"github.com/riordanpawley/wipboard/internal/domain"
)

// Msg is an input event for the machine
type Msg interface {
	dragMsg()
}

// Start begins a drag from a task card
type Start struct {
	TaskID   string
	ColumnID string
}

// Over reports the pointer entering or moving over a column's drop surface
type Over struct {
	ColumnID string
}

// Leave reports the pointer leaving a column. OnSurface is true only when the
// event target is the drop surface itself rather than a nested element.
type Leave struct {
	ColumnID  string
	OnSurface bool
}

// Drop releases the dragged task onto a column. An empty ColumnID drops onto
// the current hover column.
type Drop struct {
	ColumnID string
}

// End finishes the gesture without a drop
type End struct{}

func (Start) dragMsg() {}
func (Over) dragMsg()  {}
func (Leave) dragMsg() {}
func (Drop) dragMsg()  {}
func (End) dragMsg()   {}

// State is a snapshot of the gesture in progress
type State struct {
	Dragging       bool
	TaskID         string
	SourceColumnID string
	HoverColumnID  string
}

// Machine tracks one drag gesture at a time
type Machine struct {
	state State
}

// New creates an idle machine
func New() *Machine {
	return &Machine{}
}

// State returns the current gesture state
func (m *Machine) State() State {
	return m.state
}

// IsDragging reports whether a gesture is in progress
func (m *Machine) IsDragging() bool {
	return m.state.Dragging
}

// IsDragged reports whether the task is the one being dragged, so renderers
// can fade it
func (m *Machine) IsDragged(taskID string) bool {
	return m.state.Dragging && m.state.TaskID == taskID
}

// IsHovered reports whether the column is the current drop target
func (m *Machine) IsHovered(columnID string) bool {
	return m.state.Dragging && columnID != "" && m.state.HoverColumnID == columnID
}

// Reset returns to Idle
func (m *Machine) Reset() {
	m.state = State{}
}

// Dispatch feeds one message into the machine. The board is the latest
// snapshot; it is read only when a drop needs the target's resident count.
func (m *Machine) Dispatch(msg Msg, board domain.Board) move.Result {
	switch msg := msg.(type) {
	case Start:
		m.state = State{
			Dragging:       true,
			TaskID:         msg.TaskID,
			SourceColumnID: msg.ColumnID,
		}
		return move.Result{Changed: true}

	case Over:
		if !m.state.Dragging || m.state.HoverColumnID == msg.ColumnID {
			return move.Result{}
		}
		m.state.HoverColumnID = msg.ColumnID
		return move.Result{Changed: true}

	case Leave:
		if !m.state.Dragging || !msg.OnSurface || m.state.HoverColumnID != msg.ColumnID {
			return move.Result{}
		}
		m.state.HoverColumnID = ""
		return move.Result{Changed: true}

	case Drop:
		return m.drop(msg, board)

	case End:
		if !m.state.Dragging {
			return move.Result{}
		}
		m.Reset()
		return move.Result{Changed: true}
	}

	return move.Result{}
}

func (m *Machine) drop(msg Drop, board domain.Board) move.Result {
	if !m.state.Dragging {
		return move.Result{Blocked: move.NotDragging}
	}

	gesture := m.state
	m.Reset()

	target := msg.ColumnID
	if target == "" {
		target = gesture.HoverColumnID
	}
	if target == "" {
		return move.Result{Changed: true, Blocked: move.NotDragging}
	}
	if target == gesture.SourceColumnID {
		return move.Result{Changed: true, Blocked: move.SameColumn}
	}
	if !wip.AdmitInto(board, target) {
		return move.Result{Changed: true, Blocked: move.WIPLimit}
	}

	return move.Emit(gesture.TaskID, gesture.SourceColumnID, target)
}
