package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrNotFound        = errors.New("not found")
	ErrWIPLimitReached = errors.New("wip limit reached")
	ErrInvalidTask     = errors.New("invalid task")
	ErrDuplicateID     = errors.New("duplicate id")
	ErrInconsistent    = errors.New("inconsistent board")
)

// BoardError describes a failed board mutation or validation
type BoardError struct {
	Op       string // Operation: "move", "add", "replace", "remove", "validate"
	TaskID   string // Optional: task involved
	ColumnID string // Optional: column involved
	Err      error  // Underlying error
}

func (e *BoardError) Error() string {
	switch {
	case e.TaskID != "" && e.ColumnID != "":
		return fmt.Sprintf("board %s [%s -> %s]: %v", e.Op, e.TaskID, e.ColumnID, e.Err)
	case e.TaskID != "":
		return fmt.Sprintf("board %s [%s]: %v", e.Op, e.TaskID, e.Err)
	case e.ColumnID != "":
		return fmt.Sprintf("board %s [column %s]: %v", e.Op, e.ColumnID, e.Err)
	default:
		return fmt.Sprintf("board %s: %v", e.Op, e.Err)
	}
}

func (e *BoardError) Unwrap() error {
	return e.Err
}
