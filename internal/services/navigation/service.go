// Package navigation provides the browse cursor. It only changes which task
// has focus; moving tasks is the keyboard engine's job.
package navigation

import (
	"github.com/riordanpawley/wipboard/internal/domain"
)

// Position represents a computed position in the board
type Position struct {
	Column int  // Column index in board order
	Task   int  // Index within the column's TaskIDs order
	Valid  bool // Whether the position is valid
}

// Lane is a column with its visible tasks resolved
type Lane struct {
	Column domain.Column
	Tasks  []domain.Task
}

// Lanes resolves every column's tasks in display order. Collapsed columns
// contribute no tasks.
func Lanes(b domain.Board) []Lane {
	lanes := make([]Lane, len(b.Columns))
	for i, col := range b.Columns {
		lanes[i].Column = col
		if !col.Collapsed {
			lanes[i].Tasks = b.ColumnTasks(col.ID)
		}
	}
	return lanes
}

// Cursor tracks the focused task by ID (survives moves and reorders)
type Cursor struct {
	TaskID         string // Primary state: focused task ID
	FallbackColumn int    // Column to use when TaskID not found
}

// FindPosition computes the position of the cursor's task in the given lanes
func (c *Cursor) FindPosition(lanes []Lane) Position {
	if c.TaskID != "" {
		for colIdx, lane := range lanes {
			for taskIdx, task := range lane.Tasks {
				if task.ID == c.TaskID {
					return Position{Column: colIdx, Task: taskIdx, Valid: true}
				}
			}
		}
	}

	// Nothing focused, or the task is gone: first task of the fallback column
	col := c.FallbackColumn
	if col >= len(lanes) || col < 0 {
		col = 0
	}
	if col < len(lanes) && len(lanes[col].Tasks) > 0 {
		return Position{Column: col, Task: 0, Valid: true}
	}
	return Position{Column: col, Task: 0, Valid: false}
}

// SetTask updates the cursor to point to a specific task
func (c *Cursor) SetTask(taskID string, column int) {
	c.TaskID = taskID
	c.FallbackColumn = column
}

// MoveVertical moves up or down within a column, returns new task ID
func (c *Cursor) MoveVertical(lanes []Lane, delta int) string {
	pos := c.FindPosition(lanes)
	if !pos.Valid || pos.Column >= len(lanes) {
		return c.TaskID
	}

	tasks := lanes[pos.Column].Tasks
	newIdx := clamp(pos.Task+delta, 0, len(tasks)-1)
	c.TaskID = tasks[newIdx].ID
	c.FallbackColumn = pos.Column
	return c.TaskID
}

// MoveHorizontal moves left or right to adjacent column
func (c *Cursor) MoveHorizontal(lanes []Lane, delta int) string {
	pos := c.FindPosition(lanes)
	return c.JumpToColumn(lanes, pos.Column+delta)
}

// JumpToStart moves to first task in current column
func (c *Cursor) JumpToStart(lanes []Lane) string {
	pos := c.FindPosition(lanes)
	if pos.Column < len(lanes) && len(lanes[pos.Column].Tasks) > 0 {
		c.TaskID = lanes[pos.Column].Tasks[0].ID
	}
	return c.TaskID
}

// JumpToEnd moves to last task in current column
func (c *Cursor) JumpToEnd(lanes []Lane) string {
	pos := c.FindPosition(lanes)
	if pos.Column < len(lanes) {
		tasks := lanes[pos.Column].Tasks
		if len(tasks) > 0 {
			c.TaskID = tasks[len(tasks)-1].ID
		}
	}
	return c.TaskID
}

// JumpToColumn moves to a specific column, keeping relative row position
func (c *Cursor) JumpToColumn(lanes []Lane, colIdx int) string {
	if len(lanes) == 0 {
		return c.TaskID
	}
	colIdx = clamp(colIdx, 0, len(lanes)-1)

	pos := c.FindPosition(lanes)
	c.FallbackColumn = colIdx

	tasks := lanes[colIdx].Tasks
	if len(tasks) > 0 {
		c.TaskID = tasks[clamp(pos.Task, 0, len(tasks)-1)].ID
	} else {
		c.TaskID = "" // empty column keeps focus on the column itself
	}
	return c.TaskID
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Service manages navigation state
type Service struct {
	cursor Cursor
}

// NewService creates a new navigation service
func NewService() *Service {
	return &Service{
		cursor: Cursor{},
	}
}

// GetCursor returns the current cursor (for read access)
func (s *Service) GetCursor() *Cursor {
	return &s.cursor
}

// GetPosition returns the computed position of the cursor on the board
func (s *Service) GetPosition(b domain.Board) Position {
	return s.cursor.FindPosition(Lanes(b))
}

// GetCurrentTask returns the focused task, or nil
func (s *Service) GetCurrentTask(b domain.Board) *domain.Task {
	lanes := Lanes(b)
	pos := s.cursor.FindPosition(lanes)
	if !pos.Valid || pos.Column >= len(lanes) {
		return nil
	}

	tasks := lanes[pos.Column].Tasks
	if pos.Task >= len(tasks) {
		return nil
	}
	task := tasks[pos.Task]
	return &task
}

// GetCurrentColumn returns the focused column. ok is false on an empty board.
func (s *Service) GetCurrentColumn(b domain.Board) (domain.Column, bool) {
	pos := s.cursor.FindPosition(Lanes(b))
	if pos.Column < 0 || pos.Column >= len(b.Columns) {
		return domain.Column{}, false
	}
	return b.Columns[pos.Column], true
}

// MoveDown moves cursor down in current column
func (s *Service) MoveDown(b domain.Board) {
	s.cursor.MoveVertical(Lanes(b), 1)
}

// MoveUp moves cursor up in current column
func (s *Service) MoveUp(b domain.Board) {
	s.cursor.MoveVertical(Lanes(b), -1)
}

// MoveLeft moves cursor to left column
func (s *Service) MoveLeft(b domain.Board) {
	s.cursor.MoveHorizontal(Lanes(b), -1)
}

// MoveRight moves cursor to right column
func (s *Service) MoveRight(b domain.Board) {
	s.cursor.MoveHorizontal(Lanes(b), 1)
}

// HalfPageDown moves cursor half a page down
func (s *Service) HalfPageDown(b domain.Board, halfPage int) {
	s.cursor.MoveVertical(Lanes(b), halfPage)
}

// HalfPageUp moves cursor half a page up
func (s *Service) HalfPageUp(b domain.Board, halfPage int) {
	s.cursor.MoveVertical(Lanes(b), -halfPage)
}

// GotoTop moves cursor to first task in column
func (s *Service) GotoTop(b domain.Board) {
	s.cursor.JumpToStart(Lanes(b))
}

// GotoBottom moves cursor to last task in column
func (s *Service) GotoBottom(b domain.Board) {
	s.cursor.JumpToEnd(Lanes(b))
}

// GotoFirstColumn moves cursor to first column
func (s *Service) GotoFirstColumn(b domain.Board) {
	s.cursor.JumpToColumn(Lanes(b), 0)
}

// GotoLastColumn moves cursor to last column
func (s *Service) GotoLastColumn(b domain.Board) {
	s.cursor.JumpToColumn(Lanes(b), len(b.Columns)-1)
}

// SelectTask directly sets the cursor to a specific task
func (s *Service) SelectTask(taskID string, column int) {
	s.cursor.SetTask(taskID, column)
}

// JumpToTaskByID finds and focuses a task by ID
func (s *Service) JumpToTaskByID(b domain.Board, taskID string) bool {
	for colIdx, lane := range Lanes(b) {
		for _, task := range lane.Tasks {
			if task.ID == taskID {
				s.cursor.SetTask(task.ID, colIdx)
				return true
			}
		}
	}
	return false
}
