// Package app contains the main application model and TEA implementation.
package app

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/wipboard/internal/config"
	"github.com/riordanpawley/wipboard/internal/core/drag"
	"github.com/riordanpawley/wipboard/internal/core/keyboard"
	"github.com/riordanpawley/wipboard/internal/core/move"
	"github.com/riordanpawley/wipboard/internal/core/wip"
	"github.com/riordanpawley/wipboard/internal/domain"
	"github.com/riordanpawley/wipboard/internal/services/navigation"
	"github.com/riordanpawley/wipboard/internal/services/orchestrator"
	"github.com/riordanpawley/wipboard/internal/store"
	"github.com/riordanpawley/wipboard/internal/types"
	"github.com/riordanpawley/wipboard/internal/ui/board"
	"github.com/riordanpawley/wipboard/internal/ui/overlay"
	"github.com/riordanpawley/wipboard/internal/ui/statusbar"
	"github.com/riordanpawley/wipboard/internal/ui/styles"
	"github.com/riordanpawley/wipboard/internal/ui/toast"
)

// Re-export Mode type and constants for convenience
type Mode = types.Mode

const (
	ModeNormal = types.ModeNormal
	ModeMove   = types.ModeMove
	ModeDrag   = types.ModeDrag
)

// Re-export Toast type and constants for convenience
type Toast = types.Toast
type ToastLevel = types.ToastLevel

const (
	ToastInfo    = types.ToastInfo
	ToastSuccess = types.ToastSuccess
	ToastWarning = types.ToastWarning
	ToastError   = types.ToastError
)

const deleteConfirmKey = "delete-task"

// Model is the main application state
type Model struct {
	store *store.Memory
	orch  *orchestrator.Service
	nav   *navigation.Service

	overlayStack *overlay.Stack
	toasts       []Toast

	// dragWandered is set once the pointer hovers a column other than the
	// drag source
	dragWandered bool

	width  int
	height int

	styles *styles.Styles
	config *config.Config
	logger *slog.Logger
	save   *autosave
	now    func() time.Time
}

// autosave tracks unsaved store changes. At most one save runs at a time;
// changes made meanwhile are written once it reports back.
type autosave struct {
	path     string
	dirty    bool
	inFlight bool
}

// New creates the application model over a loaded store. Unless the config
// marks the board read-only, every store change is written back to
// cfg.Board.Path.
func New(cfg *config.Config, st *store.Memory, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	m := Model{
		store:        st,
		orch:         orchestrator.NewService(st, logger),
		nav:          navigation.NewService(),
		overlayStack: overlay.NewStack(),
		toasts:       []Toast{},
		styles:       styles.New(),
		config:       cfg,
		logger:       logger,
		now:          time.Now,
	}

	if !cfg.Board.ReadOnly && cfg.Board.Path != "" {
		save := &autosave{path: cfg.Board.Path}
		st.OnChange(func(store.Document) {
			save.dirty = true
		})
		m.save = save
	}

	return m
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	return tickEvery(time.Second)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	return next, tea.Batch(cmd, next.saveCmd())
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if !m.overlayStack.IsEmpty() {
			return m, m.overlayStack.Update(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case overlay.CloseOverlayMsg:
		if _, ok := m.overlayStack.Pop().(*overlay.TaskForm); ok {
			m.orch.CloseEditor()
		}
		return m, nil

	case overlay.SaveTaskMsg:
		return m.handleSave(msg)

	case overlay.DeleteTaskMsg:
		task, ok := m.editedTask()
		if !ok || !m.orch.RequestDelete() {
			return m, nil
		}
		return m, m.overlayStack.Push(deleteDialog(task))

	case overlay.SelectionMsg:
		if msg.Key == deleteConfirmKey {
			result, _ := msg.Value.(overlay.ConfirmResult)
			return m.handleDeleteAnswer(result.Confirmed)
		}
		return m, nil

	case savedMsg:
		if m.save != nil {
			m.save.inFlight = false
		}
		if msg.err != nil {
			m.logger.Error("autosave failed", "path", msg.path, "error", msg.err)
			m.addToast(ToastError, fmt.Sprintf("Save failed: %v", msg.err))
		}
		return m, nil

	case tickMsg:
		m.toasts = types.PruneToasts(m.toasts, m.now())
		return m, tickEvery(time.Second)
	}

	// Cursor blink and other overlay-internal messages
	if !m.overlayStack.IsEmpty() {
		return m, m.overlayStack.Update(msg)
	}
	return m, nil
}

// Mode derives the interaction mode from the engines
func (m Model) Mode() Mode {
	switch {
	case m.orch.Drag().IsDragging():
		return ModeDrag
	case m.orch.Keyboard().HasSelection():
		return ModeMove
	default:
		return ModeNormal
	}
}

// handleKey processes keyboard input based on current mode
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+l":
		return m, tea.ClearScreen
	}

	switch m.Mode() {
	case ModeMove:
		return m.handleMoveMode(msg)
	case ModeDrag:
		if msg.String() == "esc" {
			_, err := m.orch.HandleDrag(drag.End{})
			m.reportError(err)
		}
		return m, nil
	default:
		return m.handleNormalMode(msg)
	}
}

// handleNormalMode processes keyboard input while browsing
func (m Model) handleNormalMode(msg tea.KeyMsg) (Model, tea.Cmd) {
	b := m.orch.Snapshot()

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "j", "down":
		m.nav.MoveDown(b)
	case "k", "up":
		m.nav.MoveUp(b)
	case "h", "left":
		m.nav.MoveLeft(b)
	case "l", "right":
		m.nav.MoveRight(b)

	case "ctrl+d":
		m.nav.HalfPageDown(b, m.halfPage())
	case "ctrl+u":
		m.nav.HalfPageUp(b, m.halfPage())
	case "g", "home":
		m.nav.GotoTop(b)
	case "G", "end":
		m.nav.GotoBottom(b)
	case "0":
		m.nav.GotoFirstColumn(b)
	case "$":
		m.nav.GotoLastColumn(b)

	case " ", "space":
		if task := m.nav.GetCurrentTask(b); task != nil {
			m.orch.SelectTask(task.ID)
		}

	case "n":
		col, ok := m.nav.GetCurrentColumn(b)
		if !ok {
			return m, nil
		}
		return m, m.openForm(m.orch.OpenEditor(nil, col.ID))

	case "e", "enter":
		task := m.nav.GetCurrentTask(b)
		if task == nil {
			return m, nil
		}
		return m, m.openForm(m.orch.OpenEditor(task, ""))

	case "d":
		task := m.nav.GetCurrentTask(b)
		if task == nil {
			return m, nil
		}
		m.orch.OpenEditor(task, "")
		m.orch.RequestDelete()
		return m, m.overlayStack.Push(deleteDialog(*task))

	case "c":
		if col, ok := m.nav.GetCurrentColumn(b); ok {
			m.reportError(m.store.ToggleCollapsed(col.ID))
		}

	case "?":
		return m, m.overlayStack.Push(overlay.NewHelpOverlay())
	}

	return m, nil
}

// handleMoveMode sends arrows to the keyboard engine while a task is selected
func (m Model) handleMoveMode(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", " ", "space", "enter":
		m.orch.Deselect()
		return m, nil
	}

	dir, ok := keyboard.ParseKey(msg.String())
	if !ok {
		return m, nil
	}

	before := m.orch.Snapshot()
	target := neighbourColumn(before, m.orch.Keyboard().Selection().ColumnIndex, dir)
	res, err := m.orch.HandleKey(dir)
	m.reportMove(before, target, res, err)

	// Browse cursor follows the selection
	m.nav.JumpToTaskByID(m.orch.Snapshot(), m.orch.Keyboard().Selection().TaskID)
	return m, nil
}

// handleMouse turns pointer events into drag machine messages
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.config.UI.DisableMouse || !m.overlayStack.IsEmpty() {
		return m, nil
	}

	b := m.orch.Snapshot()
	layout := m.layout(b)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		taskID, columnID, ok := layout.CardAt(msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		m.orch.Deselect()
		m.nav.JumpToTaskByID(b, taskID)
		m.dragWandered = false
		_, err := m.orch.HandleDrag(drag.Start{TaskID: taskID, ColumnID: columnID})
		m.reportError(err)

	case tea.MouseActionMotion:
		if !m.orch.Drag().IsDragging() {
			return m, nil
		}
		if columnID, ok := layout.ColumnAt(msg.X, msg.Y); ok {
			if columnID != m.orch.Drag().State().SourceColumnID {
				m.dragWandered = true
			}
			_, err := m.orch.HandleDrag(drag.Over{ColumnID: columnID})
			m.reportError(err)
		} else if hover := m.orch.Drag().State().HoverColumnID; hover != "" {
			_, err := m.orch.HandleDrag(drag.Leave{ColumnID: hover, OnSurface: true})
			m.reportError(err)
		}

	case tea.MouseActionRelease:
		if !m.orch.Drag().IsDragging() {
			return m, nil
		}
		state := m.orch.Drag().State()
		taskID := state.TaskID
		columnID, ok := layout.ColumnAt(msg.X, msg.Y)
		if !ok || (m.dragWandered && columnID == state.SourceColumnID) {
			_, err := m.orch.HandleDrag(drag.End{})
			m.reportError(err)
			return m, nil
		}

		res, err := m.orch.HandleDrag(drag.Drop{ColumnID: columnID})
		if res.Blocked == move.SameColumn {
			// A click without a drag picks the task up for the keyboard
			m.orch.SelectTask(taskID)
			return m, nil
		}
		m.reportMove(b, columnID, res, err)
		m.nav.JumpToTaskByID(m.orch.Snapshot(), taskID)
	}

	return m, nil
}

// handleSave submits the form through the orchestrator. A blank title keeps
// the form open; the form already shows why.
func (m Model) handleSave(msg overlay.SaveTaskMsg) (Model, tea.Cmd) {
	editing := false
	if e := m.orch.Editor(); e != nil {
		editing = e.Mode() == orchestrator.EditorEdit
	}

	saved, err := m.orch.SaveEditor(msg.Fields)
	if err != nil {
		if form, ok := m.overlayStack.Current().(*overlay.TaskForm); ok {
			form.SetError(err.Error())
		}
		m.addToast(ToastError, fmt.Sprintf("Save failed: %v", err))
		return m, nil
	}
	if !saved {
		return m, nil
	}

	m.overlayStack.Pop()
	if editing {
		m.addToast(ToastSuccess, "Task updated")
	} else {
		m.addToast(ToastSuccess, "Task created")
	}
	return m, nil
}

// handleDeleteAnswer resolves the confirm dialog. Declining returns to the
// form when delete was asked from it, otherwise drops the editor session.
func (m Model) handleDeleteAnswer(confirmed bool) (Model, tea.Cmd) {
	m.overlayStack.Pop()
	_, fromForm := m.overlayStack.Current().(*overlay.TaskForm)

	deleted, err := m.orch.ConfirmDelete(confirmed)
	if err != nil {
		m.addToast(ToastError, fmt.Sprintf("Delete failed: %v", err))
		return m, nil
	}
	if !deleted {
		if !fromForm {
			m.orch.CloseEditor()
		}
		return m, nil
	}

	if fromForm {
		m.overlayStack.Pop()
	}
	m.addToast(ToastSuccess, "Task deleted")
	return m, nil
}

func (m Model) openForm(session *orchestrator.EditorSession) tea.Cmd {
	form := overlay.NewTaskForm(
		session.Mode() == orchestrator.EditorEdit,
		session.Initial(),
		m.store.Assignees(),
		m.store.Tags(),
	)
	return m.overlayStack.Push(form)
}

func (m Model) editedTask() (domain.Task, bool) {
	if e := m.orch.Editor(); e != nil {
		return e.Task()
	}
	return domain.Task{}, false
}

// neighbourColumn returns the id of the column a horizontal arrow points at
// from column index from. Empty for vertical arrows and board edges.
func neighbourColumn(b domain.Board, from int, dir keyboard.Direction) string {
	switch dir {
	case keyboard.Left:
		from--
	case keyboard.Right:
		from++
	default:
		return ""
	}
	if from < 0 || from >= len(b.Columns) {
		return ""
	}
	return b.Columns[from].ID
}

func deleteDialog(task domain.Task) *overlay.ConfirmDialog {
	return overlay.NewConfirmDialog(deleteConfirmKey, "Delete Task", fmt.Sprintf("Delete %q? This cannot be undone.", task.Title))
}

// reportMove surfaces the outcome of a move attempt. before is the snapshot
// the engine saw and target the column the move was aimed at.
func (m *Model) reportMove(before domain.Board, target string, res move.Result, err error) {
	if err != nil {
		m.addToast(ToastError, err.Error())
		return
	}
	switch res.Blocked {
	case move.WIPLimit:
		col, ok := before.Column(target)
		if !ok {
			return
		}
		usage := wip.UsageOf(before, col)
		m.addToast(ToastInfo, fmt.Sprintf("%s is full (%d/%d)", col.Title, usage.Count, usage.Limit))
	case move.StaleSelection:
		m.orch.Deselect()
		m.addToast(ToastWarning, "Selected task is no longer on the board")
	}
}

func (m *Model) reportError(err error) {
	if err != nil {
		m.addToast(ToastError, err.Error())
	}
}

func (m *Model) addToast(level ToastLevel, message string) {
	m.toasts = append(m.toasts, types.NewToast(level, message, m.now(), types.DefaultToastTTL))
}

// View renders the current state as a string
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	b := m.orch.Snapshot()
	bodyHeight := m.boardHeight()

	var body string
	if m.overlayStack.IsEmpty() {
		body = board.Render(b, m.boardView(b), m.styles, m.width, bodyHeight)
	} else {
		body = m.overlayStack.View(m.width, bodyHeight)
	}
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	parts := []string{body}
	if t := m.toastView(); t != "" {
		parts = append(parts, t)
	}

	sb := statusbar.New(m.Mode(), m.width, m.styles).WithInfo(m.statusInfo(b))
	parts = append(parts, sb.Render())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) boardView(b domain.Board) board.View {
	v := board.View{
		CursorColumn:   m.nav.GetPosition(b).Column,
		SelectedTaskID: m.orch.Keyboard().Selection().TaskID,
		Now:            m.now(),
		MaxColumnWidth: m.config.UI.ColumnWidth,
	}
	if task := m.nav.GetCurrentTask(b); task != nil {
		v.CursorTaskID = task.ID
	}
	if st := m.orch.Drag().State(); st.Dragging {
		v.DraggedTaskID = st.TaskID
		v.DropColumnID = st.HoverColumnID
	}
	return v
}

func (m Model) statusInfo(b domain.Board) string {
	switch m.Mode() {
	case ModeMove:
		if task, ok := b.Task(m.orch.Keyboard().Selection().TaskID); ok {
			return "Moving: " + task.Title
		}
	case ModeDrag:
		if task, ok := b.Task(m.orch.Drag().State().TaskID); ok {
			return "Dragging: " + task.Title
		}
	}
	info := fmt.Sprintf("%d tasks", len(b.Tasks))
	if m.config.Board.Path != "" {
		info = filepath.Base(m.config.Board.Path) + " · " + info
	}
	if m.save == nil {
		info += " · read-only"
	}
	return info
}

func (m Model) toastView() string {
	return toast.New(m.styles).Render(m.toasts, m.width, m.now())
}

// boardHeight is the height left for the board after toasts and status bar
func (m Model) boardHeight() int {
	h := m.height - 1
	if t := m.toastView(); t != "" {
		h -= lipgloss.Height(t)
	}
	return max(h, 0)
}

// layout returns the geometry the board was rendered with
func (m Model) layout(b domain.Board) board.Layout {
	return board.ComputeLayout(b, m.width, m.boardHeight(), m.config.UI.ColumnWidth)
}

func (m Model) halfPage() int {
	// Cards are at least 4 rows; header takes 2
	cardsPerColumn := (m.boardHeight() - 2) / 4
	return max(cardsPerColumn/2, 1)
}

// Message types for async operations

type tickMsg time.Time

type savedMsg struct {
	path string
	err  error
}

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// saveCmd writes the current store document off the update loop when there
// are unsaved changes and no other save is running
func (m Model) saveCmd() tea.Cmd {
	if m.save == nil || !m.save.dirty || m.save.inFlight {
		return nil
	}
	m.save.dirty = false
	m.save.inFlight = true
	doc := m.store.Document()
	path := m.save.path

	return func() tea.Msg {
		return savedMsg{path: path, err: store.SaveFile(path, doc)}
	}
}
