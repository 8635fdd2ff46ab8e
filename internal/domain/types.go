// Package domain contains the board data model and the request contracts
// exchanged with the embedding application.
package domain

import (
	"slices"
	"time"
)

// Column is an ordered lane of tasks
type Column struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
	// TaskIDs is the on-screen order of the column's tasks
	TaskIDs []string `yaml:"task_ids" json:"task_ids"`
	// WIPLimit caps resident tasks; 0 means unlimited
	WIPLimit  int  `yaml:"wip_limit,omitempty" json:"wip_limit,omitempty"`
	Collapsed bool `yaml:"collapsed,omitempty" json:"collapsed,omitempty"`
}

// HasLimit reports whether the column carries a WIP limit
func (c Column) HasLimit() bool {
	return c.WIPLimit > 0
}

// IndexOf returns the position of a task id in TaskIDs, or -1
func (c Column) IndexOf(taskID string) int {
	for i, id := range c.TaskIDs {
		if id == taskID {
			return i
		}
	}
	return -1
}

func (c Column) clone() Column {
	c.TaskIDs = slices.Clone(c.TaskIDs)
	return c
}

// TaskFields holds the user-editable fields of a task
type TaskFields struct {
	Title       string
	Description string
	Priority    Priority
	DueDate     *time.Time
	Assignee    *Assignee
	Tags        []Tag
}

// MoveRequest asks the embedder to relocate a task
type MoveRequest struct {
	TaskID       string
	FromColumnID string
	ToColumnID   string
}

// CreateRequest asks the embedder to create a task in a column
type CreateRequest struct {
	Fields   TaskFields
	ColumnID string
}

// EditRequest carries a full task with UpdatedAt already refreshed
type EditRequest struct {
	Task Task
}

// DeleteRequest asks the embedder to remove a task
type DeleteRequest struct {
	TaskID string
}
