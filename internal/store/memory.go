// Package store holds the board on behalf of the running program and commits
// requests coming out of the orchestrator.
package store

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/riordanpawley/wipboard/internal/core/wip"
	"github.com/riordanpawley/wipboard/internal/domain"
)

// Document is the persisted board plus the choices offered by the editor
type Document struct {
	domain.Board `yaml:",inline"`
	Assignees    []domain.Assignee `yaml:"assignees,omitempty"`
	Tags         []domain.Tag      `yaml:"tags,omitempty"`
}

// Memory is an in-memory board host
type Memory struct {
	mu       sync.RWMutex
	doc      Document
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
	onChange func(Document)
}

// NewMemory creates a store seeded with doc
func NewMemory(doc Document, logger *slog.Logger) *Memory {
	if logger == nil {
		logger = slog.Default()
	}
	doc.Board = doc.Board.Clone()
	return &Memory{
		doc:    doc,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// SetClock overrides the time source used for timestamps
func (m *Memory) SetClock(now func() time.Time) {
	m.now = now
}

// SetIDGenerator overrides task id generation
func (m *Memory) SetIDGenerator(fn func() string) {
	m.newID = fn
}

// OnChange registers a callback invoked with the new document after every
// successful mutation
func (m *Memory) OnChange(fn func(Document)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// Snapshot returns a copy of the current board
func (m *Memory) Snapshot() domain.Board {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.doc.Board.Clone()
}

// Document returns a copy of the full document
func (m *Memory) Document() Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Document{
		Board:     m.doc.Board.Clone(),
		Assignees: slices.Clone(m.doc.Assignees),
		Tags:      slices.Clone(m.doc.Tags),
	}
}

// Assignees returns the people a task can be assigned to
func (m *Memory) Assignees() []domain.Assignee {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.doc.Assignees)
}

// Tags returns the tags a task can carry
func (m *Memory) Tags() []domain.Tag {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.doc.Tags)
}

// MoveTask commits a move. The destination's WIP limit is checked again
// against the stored board.
func (m *Memory) MoveTask(req domain.MoveRequest) error {
	m.logger.Debug("moving task", "task", req.TaskID, "from", req.FromColumnID, "to", req.ToColumnID)

	return m.mutate(func(b domain.Board) (domain.Board, error) {
		if req.FromColumnID != req.ToColumnID && !wip.AdmitInto(b, req.ToColumnID) {
			if _, ok := b.Column(req.ToColumnID); ok {
				return b, &domain.BoardError{Op: "move", TaskID: req.TaskID, ColumnID: req.ToColumnID, Err: domain.ErrWIPLimitReached}
			}
		}
		return b.MoveTask(req, m.now())
	})
}

// CreateTask adds a new task to the end of the requested column
func (m *Memory) CreateTask(req domain.CreateRequest) (domain.Task, error) {
	now := m.now()
	task := domain.Task{
		ID:          m.newID(),
		Title:       req.Fields.Title,
		Description: req.Fields.Description,
		Priority:    req.Fields.Priority,
		DueDate:     req.Fields.DueDate,
		Assignee:    req.Fields.Assignee,
		Tags:        req.Fields.Tags,
		ColumnID:    req.ColumnID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.logger.Debug("creating task", "task", task.ID, "column", task.ColumnID)

	err := m.mutate(func(b domain.Board) (domain.Board, error) {
		return b.AddTask(task)
	})
	if err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// EditTask replaces a task's fields. Column membership is left alone.
func (m *Memory) EditTask(req domain.EditRequest) error {
	m.logger.Debug("editing task", "task", req.Task.ID)

	return m.mutate(func(b domain.Board) (domain.Board, error) {
		return b.ReplaceTask(req.Task)
	})
}

// DeleteTask removes a task from the board
func (m *Memory) DeleteTask(req domain.DeleteRequest) error {
	m.logger.Debug("deleting task", "task", req.TaskID)

	return m.mutate(func(b domain.Board) (domain.Board, error) {
		return b.RemoveTask(req.TaskID)
	})
}

// ToggleCollapsed flips a column's collapsed flag
func (m *Memory) ToggleCollapsed(columnID string) error {
	return m.mutate(func(b domain.Board) (domain.Board, error) {
		idx := b.ColumnIndex(columnID)
		if idx < 0 {
			return b, &domain.BoardError{Op: "collapse", ColumnID: columnID, Err: domain.ErrNotFound}
		}
		out := b.Clone()
		out.Columns[idx].Collapsed = !out.Columns[idx].Collapsed
		return out, nil
	})
}

func (m *Memory) mutate(fn func(domain.Board) (domain.Board, error)) error {
	m.mu.Lock()
	next, err := fn(m.doc.Board)
	if err != nil {
		m.mu.Unlock()
		m.logger.Warn("board mutation rejected", "error", err)
		return err
	}
	m.doc.Board = next
	hook := m.onChange
	var doc Document
	if hook != nil {
		doc = Document{
			Board:     next.Clone(),
			Assignees: slices.Clone(m.doc.Assignees),
			Tags:      slices.Clone(m.doc.Tags),
		}
	}
	m.mu.Unlock()

	if hook != nil {
		hook(doc)
	}
	return nil
}
