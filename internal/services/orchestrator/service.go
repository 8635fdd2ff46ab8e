// Package orchestrator wires the drag and keyboard engines to a single move
// commit path and mediates the task editor.
package orchestrator

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/riordanpawley/wipboard/internal/core/drag"
	"github.com/riordanpawley/wipboard/internal/core/keyboard"
	"github.com/riordanpawley/wipboard/internal/core/move"
	"github.com/riordanpawley/wipboard/internal/domain"
)

// Host is the embedding application. It owns the board and commits requests.
type Host interface {
	Snapshot() domain.Board
	MoveTask(req domain.MoveRequest) error
	CreateTask(req domain.CreateRequest) (domain.Task, error)
	EditTask(req domain.EditRequest) error
	DeleteTask(req domain.DeleteRequest) error
}

// Service composes the interaction engines around a host
type Service struct {
	host   Host
	drag   *drag.Machine
	keys   *keyboard.Machine
	editor *EditorSession
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new orchestrator for the host
func NewService(host Host, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		host:   host,
		drag:   drag.New(),
		keys:   keyboard.New(),
		logger: logger,
		now:    time.Now,
	}
}

// SetClock overrides the time source used for UpdatedAt
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Drag returns the drag machine for read access by renderers
func (s *Service) Drag() *drag.Machine {
	return s.drag
}

// Keyboard returns the keyboard machine for read access by renderers
func (s *Service) Keyboard() *keyboard.Machine {
	return s.keys
}

// Snapshot returns the host's current board
func (s *Service) Snapshot() domain.Board {
	return s.host.Snapshot()
}

// HandleDrag feeds a pointer event into the drag machine and commits any
// emitted move. Rejected drops are not errors.
func (s *Service) HandleDrag(msg drag.Msg) (move.Result, error) {
	res := s.drag.Dispatch(msg, s.host.Snapshot())
	return res, s.commit("drag", res)
}

// HandleKey feeds an arrow key into the keyboard machine and commits any
// emitted move
func (s *Service) HandleKey(dir keyboard.Direction) (move.Result, error) {
	res := s.keys.Dispatch(keyboard.Arrow{Direction: dir}, s.host.Snapshot())
	return res, s.commit("keyboard", res)
}

// SelectTask activates a task for keyboard movement
func (s *Service) SelectTask(taskID string) bool {
	return s.keys.SelectIn(s.host.Snapshot(), taskID)
}

// Deselect clears the keyboard selection
func (s *Service) Deselect() {
	s.keys.Deselect()
}

func (s *Service) commit(source string, res move.Result) error {
	if !res.Emitted() {
		if res.Blocked != move.None {
			s.logger.Debug("move not emitted", "source", source, "reason", res.Blocked.String())
		}
		return nil
	}
	req := res.Request
	return s.CommitMove(req.TaskID, req.FromColumnID, req.ToColumnID)
}

// CommitMove forwards a move request to the host. It is the only path by
// which a move reaches the host.
func (s *Service) CommitMove(taskID, fromColumnID, toColumnID string) error {
	req := domain.MoveRequest{TaskID: taskID, FromColumnID: fromColumnID, ToColumnID: toColumnID}
	if err := s.host.MoveTask(req); err != nil {
		s.logger.Error("move failed", "task", taskID, "from", fromColumnID, "to", toColumnID, "error", err)
		return fmt.Errorf("commit move: %w", err)
	}
	s.logger.Info("task moved", "task", taskID, "from", fromColumnID, "to", toColumnID)
	return nil
}

// OpenEditor opens the editor. A task opens edit mode; otherwise create mode
// is bound to columnID.
func (s *Service) OpenEditor(task *domain.Task, columnID string) *EditorSession {
	if task != nil {
		s.editor = &EditorSession{mode: EditorEdit, task: *task}
	} else {
		s.editor = &EditorSession{mode: EditorCreate, columnID: columnID}
	}
	return s.editor
}

// Editor returns the open editor session, or nil
func (s *Service) Editor() *EditorSession {
	return s.editor
}

// CloseEditor discards the editor session
func (s *Service) CloseEditor() {
	s.editor = nil
}

// SaveEditor emits a create or edit request from the form fields and closes
// the editor. A blank title is a silent no-op and leaves the editor open.
func (s *Service) SaveEditor(fields domain.TaskFields) (saved bool, err error) {
	if s.editor == nil {
		return false, nil
	}
	fields, ok := normalize(fields)
	if !ok {
		return false, nil
	}

	switch s.editor.mode {
	case EditorCreate:
		req := domain.CreateRequest{Fields: fields, ColumnID: s.editor.columnID}
		task, err := s.host.CreateTask(req)
		if err != nil {
			s.logger.Error("create failed", "column", req.ColumnID, "error", err)
			return false, fmt.Errorf("create task: %w", err)
		}
		s.logger.Info("task created", "task", task.ID, "column", task.ColumnID)

	case EditorEdit:
		task := s.editor.task
		task.Title = fields.Title
		task.Description = fields.Description
		task.Priority = fields.Priority
		task.DueDate = fields.DueDate
		task.Assignee = fields.Assignee
		task.Tags = fields.Tags
		task.UpdatedAt = s.now()
		if err := s.host.EditTask(domain.EditRequest{Task: task}); err != nil {
			s.logger.Error("edit failed", "task", task.ID, "error", err)
			return false, fmt.Errorf("edit task: %w", err)
		}
		s.logger.Info("task edited", "task", task.ID)
	}

	s.editor = nil
	return true, nil
}

// RequestDelete arms deletion of the edited task. Returns false in create
// mode or with no editor open.
func (s *Service) RequestDelete() bool {
	if s.editor == nil || s.editor.mode != EditorEdit {
		return false
	}
	s.editor.pendingDelete = true
	return true
}

// ConfirmDelete resolves a pending deletion. Only an explicit confirmation
// emits the delete request; declining keeps the editor open.
func (s *Service) ConfirmDelete(confirmed bool) (deleted bool, err error) {
	if s.editor == nil || !s.editor.pendingDelete {
		return false, nil
	}
	if !confirmed {
		s.editor.pendingDelete = false
		return false, nil
	}

	id := s.editor.task.ID
	if err := s.host.DeleteTask(domain.DeleteRequest{TaskID: id}); err != nil {
		s.logger.Error("delete failed", "task", id, "error", err)
		return false, fmt.Errorf("delete task: %w", err)
	}
	s.logger.Info("task deleted", "task", id)

	if s.keys.IsSelected(id) {
		s.keys.Deselect()
	}
	s.editor = nil
	return true, nil
}
