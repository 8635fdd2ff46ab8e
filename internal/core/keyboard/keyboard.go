// Package keyboard implements arrow-key navigation and movement of the
// selected task.
//
// Up and Down change focus within the selected task's column. Left and Right
// move the selected task to the adjacent column, gated by the WIP policy; the
// selection follows the task and its in-column index resets to 0.
//
// Every dispatch re-derives the column's task list from the snapshot passed
// in. The machine keeps only the selection between calls.
package keyboard

import (
	"github.com/riordanpawley/wipboard/internal/core/move"
	"github.com/riordanpawley/wipboard/internal/core/wip"
	"github.com/riordanpawley/wipboard/internal/domain"
)

// Direction is an arrow key
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	return [...]string{"up", "down", "left", "right"}[d]
}

// ParseKey maps a key name to a direction. Vim keys are accepted.
func ParseKey(key string) (Direction, bool) {
	switch key {
	case "up", "k":
		return Up, true
	case "down", "j":
		return Down, true
	case "left", "h":
		return Left, true
	case "right", "l":
		return Right, true
	}
	return Up, false
}

// Arrow is a single arrow key press
type Arrow struct {
	Direction Direction
}

// Selection is the currently selected task and where it was last seen
type Selection struct {
	TaskID      string
	ColumnIndex int
	TaskIndex   int
}

// Machine holds the keyboard selection
type Machine struct {
	sel Selection
}

// New creates a machine with nothing selected
func New() *Machine {
	return &Machine{}
}

// Selection returns the current selection
func (m *Machine) Selection() Selection {
	return m.sel
}

// HasSelection reports whether a task is selected
func (m *Machine) HasSelection() bool {
	return m.sel.TaskID != ""
}

// IsSelected reports whether the task is the selected one
func (m *Machine) IsSelected(taskID string) bool {
	return taskID != "" && m.sel.TaskID == taskID
}

// Select records a task activation at the given position
func (m *Machine) Select(taskID string, columnIndex, taskIndex int) {
	m.sel = Selection{TaskID: taskID, ColumnIndex: columnIndex, TaskIndex: taskIndex}
}

// SelectIn selects a task, deriving its position from the snapshot.
// Returns false when the task is not listed in any column.
func (m *Machine) SelectIn(board domain.Board, taskID string) bool {
	for colIdx, col := range board.Columns {
		for taskIdx, t := range board.ColumnTasks(col.ID) {
			if t.ID == taskID {
				m.Select(taskID, colIdx, taskIdx)
				return true
			}
		}
	}
	return false
}

// Deselect clears the selection
func (m *Machine) Deselect() {
	m.sel = Selection{}
}

// Dispatch processes one arrow key against the latest snapshot
func (m *Machine) Dispatch(msg Arrow, board domain.Board) move.Result {
	if !m.HasSelection() {
		return move.Result{Blocked: move.NoSelection}
	}
	if m.sel.ColumnIndex < 0 || m.sel.ColumnIndex >= len(board.Columns) {
		return move.Result{Blocked: move.StaleSelection}
	}

	current := board.Columns[m.sel.ColumnIndex]
	tasks := board.ColumnTasks(current.ID)
	idx := indexOf(tasks, m.sel.TaskID)
	if idx < 0 {
		return move.Result{Blocked: move.StaleSelection}
	}

	switch msg.Direction {
	case Up:
		return m.focus(tasks, idx-1)
	case Down:
		return m.focus(tasks, idx+1)
	case Left:
		return m.shift(board, current, m.sel.ColumnIndex-1)
	case Right:
		return m.shift(board, current, m.sel.ColumnIndex+1)
	}
	return move.Result{}
}

func (m *Machine) focus(tasks []domain.Task, idx int) move.Result {
	if idx < 0 || idx >= len(tasks) {
		return move.Result{Blocked: move.Boundary}
	}
	m.sel.TaskID = tasks[idx].ID
	m.sel.TaskIndex = idx
	return move.Result{Changed: true}
}

func (m *Machine) shift(board domain.Board, current domain.Column, target int) move.Result {
	if target < 0 || target >= len(board.Columns) {
		return move.Result{Blocked: move.Boundary}
	}
	dest := board.Columns[target]
	if !wip.CanAdmit(dest, board.ResidentCount(dest.ID)) {
		return move.Result{Blocked: move.WIPLimit}
	}

	res := move.Emit(m.sel.TaskID, current.ID, dest.ID)
	m.sel.ColumnIndex = target
	m.sel.TaskIndex = 0
	return res
}

func indexOf(tasks []domain.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
