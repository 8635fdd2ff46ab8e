package overlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/wipboard/internal/domain"
)

const (
	focusTitle = iota
	focusDescription
	focusPriority
	focusDue
	focusAssignee
	focusTags
	focusSubmit
	focusCount
)

// TaskForm is the create/edit form for a task
type TaskForm struct {
	editing     bool
	title       textinput.Model
	description textarea.Model
	due         textinput.Model
	priority    domain.Priority
	assignees   []domain.Assignee
	assignee    int // index into assignees, -1 for unassigned
	tags        []domain.Tag
	tagOn       []bool
	tagCursor   int
	focusIndex  int
	err         string
	styles      *Styles
}

// NewTaskForm creates a form prefilled with initial. assignees and tags are
// the choices offered; the task's own assignee and tags are always offered.
func NewTaskForm(editing bool, initial domain.TaskFields, assignees []domain.Assignee, tags []domain.Tag) *TaskForm {
	ti := textinput.New()
	ti.Placeholder = "Task title..."
	ti.CharLimit = 200
	ti.Width = 56
	ti.SetValue(initial.Title)
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = "Description (optional)..."
	ta.CharLimit = 2000
	ta.SetWidth(56)
	ta.SetHeight(4)
	ta.SetValue(initial.Description)

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD"
	due.CharLimit = 10
	due.Width = 12
	due.SetValue(domain.FormatDueDate(initial.DueDate))

	f := &TaskForm{
		editing:     editing,
		title:       ti,
		description: ta,
		due:         due,
		priority:    initial.Priority,
		assignee:    -1,
		styles:      New(),
	}

	f.assignees = append(f.assignees, assignees...)
	if a := initial.Assignee; a != nil {
		f.assignee = indexOfAssignee(f.assignees, a.ID)
		if f.assignee < 0 {
			f.assignees = append(f.assignees, *a)
			f.assignee = len(f.assignees) - 1
		}
	}

	f.tags = append(f.tags, tags...)
	for _, t := range initial.Tags {
		if indexOfTag(f.tags, t.ID) < 0 {
			f.tags = append(f.tags, t)
		}
	}
	f.tagOn = make([]bool, len(f.tags))
	for _, t := range initial.Tags {
		f.tagOn[indexOfTag(f.tags, t.ID)] = true
	}

	return f
}

// Editing reports whether the form edits an existing task
func (f *TaskForm) Editing() bool {
	return f.editing
}

// Init initializes the overlay
func (f *TaskForm) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (f *TaskForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return f, func() tea.Msg { return CloseOverlayMsg{} }

		case "ctrl+s":
			return f, f.submit()

		case "ctrl+d":
			if f.editing {
				return f, func() tea.Msg { return DeleteTaskMsg{} }
			}
			return f, nil

		case "tab":
			f.setFocus((f.focusIndex + 1) % focusCount)
			return f, nil

		case "shift+tab":
			f.setFocus((f.focusIndex - 1 + focusCount) % focusCount)
			return f, nil

		case "enter":
			if f.focusIndex == focusSubmit {
				return f, f.submit()
			}
		}

		if f.handleSelector(msg.String()) {
			return f, nil
		}
	}

	var cmd tea.Cmd
	switch f.focusIndex {
	case focusTitle:
		f.title, cmd = f.title.Update(msg)
	case focusDescription:
		f.description, cmd = f.description.Update(msg)
	case focusDue:
		f.due, cmd = f.due.Update(msg)
	}
	return f, cmd
}

// handleSelector applies keys for the priority, assignee and tag pickers.
// Returns false when the key belongs to a text field.
func (f *TaskForm) handleSelector(key string) bool {
	switch f.focusIndex {
	case focusPriority:
		switch key {
		case "left", "h":
			f.priority = max(f.priority-1, domain.PriorityLow)
		case "right", "l":
			f.priority = min(f.priority+1, domain.PriorityUrgent)
		case "1", "2", "3", "4":
			f.priority = domain.Priority(key[0] - '1')
		default:
			return false
		}
		return true

	case focusAssignee:
		// slot 0 is unassigned
		n := len(f.assignees) + 1
		slot := f.assignee + 1
		switch key {
		case "left", "h":
			f.assignee = (slot+n-1)%n - 1
		case "right", "l":
			f.assignee = (slot+1)%n - 1
		case "backspace", "x":
			f.assignee = -1
		default:
			return false
		}
		return true

	case focusTags:
		if len(f.tags) == 0 {
			return false
		}
		switch key {
		case "left", "h":
			f.tagCursor = max(f.tagCursor-1, 0)
		case "right", "l":
			f.tagCursor = min(f.tagCursor+1, len(f.tags)-1)
		case " ", "space", "x":
			f.tagOn[f.tagCursor] = !f.tagOn[f.tagCursor]
		default:
			return false
		}
		return true
	}
	return false
}

func (f *TaskForm) setFocus(i int) {
	f.focusIndex = i
	f.title.Blur()
	f.description.Blur()
	f.due.Blur()
	switch i {
	case focusTitle:
		f.title.Focus()
	case focusDescription:
		f.description.Focus()
	case focusDue:
		f.due.Focus()
	}
}

// Fields returns the form's current values. The due date is the only field
// that can fail to parse.
func (f *TaskForm) Fields() (domain.TaskFields, error) {
	due, err := domain.ParseDueDate(f.due.Value())
	if err != nil {
		return domain.TaskFields{}, err
	}

	fields := domain.TaskFields{
		Title:       f.title.Value(),
		Description: f.description.Value(),
		Priority:    f.priority,
		DueDate:     due,
	}
	if f.assignee >= 0 {
		a := f.assignees[f.assignee]
		fields.Assignee = &a
	}
	for i, t := range f.tags {
		if f.tagOn[i] {
			fields.Tags = append(fields.Tags, t)
		}
	}
	return fields, nil
}

// SetError shows a message under the form, e.g. when a save was rejected
func (f *TaskForm) SetError(msg string) {
	f.err = msg
}

func (f *TaskForm) submit() tea.Cmd {
	fields, err := f.Fields()
	if err != nil {
		f.err = "Due date must be YYYY-MM-DD"
		return nil
	}
	if strings.TrimSpace(fields.Title) == "" {
		f.err = "Title is required"
	} else {
		f.err = ""
	}
	return func() tea.Msg { return SaveTaskMsg{Fields: fields} }
}

// View renders the form
func (f *TaskForm) View() string {
	var b strings.Builder

	b.WriteString(f.label(focusTitle, "Title:") + "  " + f.title.View() + "\n\n")
	b.WriteString(f.label(focusDescription, "Description:") + "\n" + f.description.View() + "\n\n")
	b.WriteString(f.label(focusPriority, "Priority:") + "  " + f.renderPriority() + "\n")
	b.WriteString(f.label(focusDue, "Due:") + "  " + f.due.View() + "\n")
	b.WriteString(f.label(focusAssignee, "Assignee:") + "  " + f.renderAssignee() + "\n")
	b.WriteString(f.label(focusTags, "Tags:") + "  " + f.renderTags() + "\n\n")

	b.WriteString(f.styles.Separator.Render(strings.Repeat("─", 56)))
	b.WriteString("\n")

	submitStyle := f.styles.MenuItem
	if f.focusIndex == focusSubmit {
		submitStyle = f.styles.MenuItemActive
	}
	label := "[ Create Task ]"
	if f.editing {
		label = "[ Save Changes ]"
	}
	b.WriteString(submitStyle.Render(label))

	if f.err != "" {
		b.WriteString("\n" + f.styles.Error.Render(f.err))
	}

	hints := []string{
		f.styles.MenuKey.Render("Tab") + " " + f.styles.MenuItemDisabled.Render("fields"),
		f.styles.MenuKey.Render("Ctrl+S") + " " + f.styles.MenuItemDisabled.Render("save"),
	}
	if f.editing {
		hints = append(hints, f.styles.MenuKey.Render("Ctrl+D")+" "+f.styles.Danger.Render("delete"))
	}
	hints = append(hints, f.styles.MenuKey.Render("Esc")+" "+f.styles.MenuItemDisabled.Render("cancel"))
	b.WriteString("\n" + f.styles.Footer.Render(strings.Join(hints, " • ")))

	return b.String()
}

func (f *TaskForm) label(focus int, text string) string {
	if f.focusIndex == focus {
		return f.styles.LabelFocused.Render(text)
	}
	return f.styles.Label.Render(text)
}

func (f *TaskForm) renderPriority() string {
	parts := make([]string, 0, len(domain.Priorities))
	for i, p := range domain.Priorities {
		style := f.styles.MenuItem
		indicator := " "
		if p == f.priority {
			style = f.styles.MenuItemActive
			indicator = "●"
		}
		parts = append(parts, style.Render(fmt.Sprintf("[%s%d %s]", indicator, i+1, p.Label())))
	}
	return strings.Join(parts, " ")
}

func (f *TaskForm) renderAssignee() string {
	if f.assignee < 0 {
		return f.styles.MenuItemDisabled.Render("‹ Unassigned ›")
	}
	a := f.assignees[f.assignee]
	return f.styles.MenuItemActive.Render(fmt.Sprintf("‹ %s (%s) ›", a.Name, a.Initials))
}

func (f *TaskForm) renderTags() string {
	if len(f.tags) == 0 {
		return f.styles.MenuItemDisabled.Render("none available")
	}
	parts := make([]string, 0, len(f.tags))
	for i, t := range f.tags {
		box := "[ ]"
		if f.tagOn[i] {
			box = "[x]"
		}
		style := f.styles.MenuItem
		if f.focusIndex == focusTags && i == f.tagCursor {
			style = f.styles.MenuItemActive
		}
		parts = append(parts, style.Render(box+" "+t.Label))
	}
	return strings.Join(parts, " ")
}

// Title returns the overlay title
func (f *TaskForm) Title() string {
	if f.editing {
		return "Edit Task"
	}
	return "New Task"
}

// Size returns the overlay dimensions
func (f *TaskForm) Size() (width, height int) {
	return 72, 24
}

func indexOfAssignee(list []domain.Assignee, id string) int {
	for i, a := range list {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func indexOfTag(list []domain.Tag, id string) int {
	for i, t := range list {
		if t.ID == id {
			return i
		}
	}
	return -1
}
