package domain

import (
	"fmt"
	"strings"
	"time"
)

// Board is a snapshot of the columns and tasks owned by the embedder.
//
// Column membership is encoded twice: Task.ColumnID and Column.TaskIDs. The
// reducers below keep both in lock-step; TaskIDs order is authoritative for
// display and keyboard navigation.
type Board struct {
	Columns []Column `yaml:"columns" json:"columns"`
	Tasks   []Task   `yaml:"tasks" json:"tasks"`
}

// Task looks up a task by id
func (b Board) Task(id string) (Task, bool) {
	for _, t := range b.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Column looks up a column by id
func (b Board) Column(id string) (Column, bool) {
	idx := b.ColumnIndex(id)
	if idx < 0 {
		return Column{}, false
	}
	return b.Columns[idx], true
}

// ColumnIndex returns the position of a column, or -1
func (b Board) ColumnIndex(id string) int {
	for i, c := range b.Columns {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// ColumnTasks returns the tasks of a column in TaskIDs order.
// Ids that do not resolve to a task are skipped.
func (b Board) ColumnTasks(columnID string) []Task {
	col, ok := b.Column(columnID)
	if !ok {
		return nil
	}
	byID := b.taskIndex()
	tasks := make([]Task, 0, len(col.TaskIDs))
	for _, id := range col.TaskIDs {
		if i, ok := byID[id]; ok {
			tasks = append(tasks, b.Tasks[i])
		}
	}
	return tasks
}

// ResidentCount counts the tasks whose ColumnID is the given column
func (b Board) ResidentCount(columnID string) int {
	n := 0
	for _, t := range b.Tasks {
		if t.ColumnID == columnID {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the board
func (b Board) Clone() Board {
	out := Board{
		Columns: make([]Column, len(b.Columns)),
		Tasks:   make([]Task, len(b.Tasks)),
	}
	for i, c := range b.Columns {
		out.Columns[i] = c.clone()
	}
	for i, t := range b.Tasks {
		out.Tasks[i] = t.clone()
	}
	return out
}

func (b Board) taskIndex() map[string]int {
	byID := make(map[string]int, len(b.Tasks))
	for i, t := range b.Tasks {
		byID[t.ID] = i
	}
	return byID
}

// MoveTask removes the task from the source column, appends it to the
// destination column, sets its ColumnID and refreshes UpdatedAt, as one unit.
// The receiver is not modified. WIP limits are not consulted here.
func (b Board) MoveTask(req MoveRequest, now time.Time) (Board, error) {
	fail := func(err error) (Board, error) {
		return b, &BoardError{Op: "move", TaskID: req.TaskID, ColumnID: req.ToColumnID, Err: err}
	}

	ti := b.taskIndex()
	idx, ok := ti[req.TaskID]
	if !ok {
		return fail(ErrNotFound)
	}
	from := b.ColumnIndex(req.FromColumnID)
	to := b.ColumnIndex(req.ToColumnID)
	if from < 0 || to < 0 {
		return fail(ErrNotFound)
	}
	if b.Tasks[idx].ColumnID != req.FromColumnID {
		return fail(fmt.Errorf("%w: task is in column %q", ErrInconsistent, b.Tasks[idx].ColumnID))
	}
	if from == to {
		return b.Clone(), nil
	}

	out := b.Clone()
	out.Columns[from].TaskIDs = removeID(out.Columns[from].TaskIDs, req.TaskID)
	out.Columns[to].TaskIDs = append(removeID(out.Columns[to].TaskIDs, req.TaskID), req.TaskID)
	out.Tasks[idx].ColumnID = req.ToColumnID
	out.Tasks[idx].UpdatedAt = now
	return out, nil
}

// AddTask appends a new task to the column named by task.ColumnID
func (b Board) AddTask(task Task) (Board, error) {
	fail := func(err error) (Board, error) {
		return b, &BoardError{Op: "add", TaskID: task.ID, ColumnID: task.ColumnID, Err: err}
	}
	if task.ID == "" || strings.TrimSpace(task.Title) == "" {
		return fail(ErrInvalidTask)
	}
	if _, exists := b.Task(task.ID); exists {
		return fail(ErrDuplicateID)
	}
	col := b.ColumnIndex(task.ColumnID)
	if col < 0 {
		return fail(ErrNotFound)
	}

	out := b.Clone()
	out.Tasks = append(out.Tasks, task.clone())
	out.Columns[col].TaskIDs = append(out.Columns[col].TaskIDs, task.ID)
	return out, nil
}

// ReplaceTask overwrites an existing task's fields. Id, ColumnID and
// CreatedAt are kept from the stored task; membership never changes.
func (b Board) ReplaceTask(task Task) (Board, error) {
	idx, ok := b.taskIndex()[task.ID]
	if !ok {
		return b, &BoardError{Op: "replace", TaskID: task.ID, Err: ErrNotFound}
	}
	if strings.TrimSpace(task.Title) == "" {
		return b, &BoardError{Op: "replace", TaskID: task.ID, Err: ErrInvalidTask}
	}

	out := b.Clone()
	stored := out.Tasks[idx]
	next := task.clone()
	next.ColumnID = stored.ColumnID
	next.CreatedAt = stored.CreatedAt
	out.Tasks[idx] = next
	return out, nil
}

// RemoveTask deletes a task and its membership from whichever column holds it
func (b Board) RemoveTask(taskID string) (Board, error) {
	idx, ok := b.taskIndex()[taskID]
	if !ok {
		return b, &BoardError{Op: "remove", TaskID: taskID, Err: ErrNotFound}
	}

	out := b.Clone()
	out.Tasks = append(out.Tasks[:idx], out.Tasks[idx+1:]...)
	for i := range out.Columns {
		out.Columns[i].TaskIDs = removeID(out.Columns[i].TaskIDs, taskID)
	}
	return out, nil
}

// Validate checks the data-model invariants: unique ids, TaskIDs matching
// ColumnID exactly once, no dangling ids, and no column over its WIP limit.
func (b Board) Validate() error {
	fail := func(colID, taskID string, err error) error {
		return &BoardError{Op: "validate", TaskID: taskID, ColumnID: colID, Err: err}
	}

	columns := make(map[string]bool, len(b.Columns))
	for _, c := range b.Columns {
		if c.ID == "" {
			return fail("", "", fmt.Errorf("%w: column without id", ErrInconsistent))
		}
		if columns[c.ID] {
			return fail(c.ID, "", ErrDuplicateID)
		}
		columns[c.ID] = true
		if c.WIPLimit < 0 {
			return fail(c.ID, "", fmt.Errorf("%w: negative wip limit", ErrInconsistent))
		}
	}

	owner := make(map[string]string, len(b.Tasks))
	for _, t := range b.Tasks {
		if t.ID == "" || strings.TrimSpace(t.Title) == "" {
			return fail(t.ColumnID, t.ID, ErrInvalidTask)
		}
		if _, dup := owner[t.ID]; dup {
			return fail("", t.ID, ErrDuplicateID)
		}
		if !columns[t.ColumnID] {
			return fail(t.ColumnID, t.ID, fmt.Errorf("%w: unknown column", ErrNotFound))
		}
		owner[t.ID] = t.ColumnID
	}

	listed := make(map[string]bool, len(b.Tasks))
	for _, c := range b.Columns {
		for _, id := range c.TaskIDs {
			col, ok := owner[id]
			if !ok {
				return fail(c.ID, id, fmt.Errorf("%w: dangling task id", ErrNotFound))
			}
			if listed[id] {
				return fail(c.ID, id, fmt.Errorf("%w: task listed twice", ErrInconsistent))
			}
			if col != c.ID {
				return fail(c.ID, id, fmt.Errorf("%w: task belongs to column %q", ErrInconsistent, col))
			}
			listed[id] = true
		}
		if c.HasLimit() && len(c.TaskIDs) > c.WIPLimit {
			return fail(c.ID, "", fmt.Errorf("%w: %d/%d", ErrWIPLimitReached, len(c.TaskIDs), c.WIPLimit))
		}
	}
	for id, col := range owner {
		if !listed[id] {
			return fail(col, id, fmt.Errorf("%w: task missing from column", ErrInconsistent))
		}
	}
	return nil
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
