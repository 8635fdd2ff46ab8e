package orchestrator

import (
	"strings"

	"github.com/riordanpawley/wipboard/internal/domain"
)

// EditorMode distinguishes creating a task from editing one
type EditorMode int

const (
	EditorCreate EditorMode = iota
	EditorEdit
)

func (m EditorMode) String() string {
	return [...]string{"create", "edit"}[m]
}

// EditorSession is the open task editor modal
type EditorSession struct {
	mode          EditorMode
	task          domain.Task // edit mode only
	columnID      string      // create mode: the bound column
	pendingDelete bool
}

// Mode returns whether the session creates or edits
func (e *EditorSession) Mode() EditorMode {
	return e.mode
}

// Task returns the task being edited; ok is false in create mode
func (e *EditorSession) Task() (domain.Task, bool) {
	return e.task, e.mode == EditorEdit
}

// ColumnID returns the column a new task will be created in, or the edited
// task's column
func (e *EditorSession) ColumnID() string {
	if e.mode == EditorEdit {
		return e.task.ColumnID
	}
	return e.columnID
}

// Initial returns the form's starting values
func (e *EditorSession) Initial() domain.TaskFields {
	if e.mode == EditorEdit {
		return e.task.Fields()
	}
	return domain.TaskFields{Priority: domain.PriorityMedium}
}

// DeletePending reports whether deletion awaits confirmation
func (e *EditorSession) DeletePending() bool {
	return e.pendingDelete
}

// normalize trims text fields; ok is false when the title is blank
func normalize(f domain.TaskFields) (domain.TaskFields, bool) {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	return f, f.Title != ""
}
