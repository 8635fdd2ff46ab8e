package overlay

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/wipboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testAssignees = []domain.Assignee{
		{ID: "u-1", Name: "Ada Park", Initials: "AP"},
		{ID: "u-2", Name: "Sam Ortiz", Initials: "SO"},
	}
	testTags = []domain.Tag{
		{ID: "frontend", Label: "Frontend", Color: "#3b82f6"},
		{ID: "bug", Label: "Bug", Color: "#ef4444"},
	}
)

func newCreateForm() *TaskForm {
	return NewTaskForm(false, domain.TaskFields{Priority: domain.PriorityMedium}, testAssignees, testTags)
}

func typeText(f *TaskForm, s string) {
	for _, r := range s {
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(f *TaskForm, key tea.KeyType) tea.Cmd {
	_, cmd := f.Update(tea.KeyMsg{Type: key})
	return cmd
}

func focusOn(f *TaskForm, target int) {
	for f.focusIndex != target {
		press(f, tea.KeyTab)
	}
}

func TestNewTaskForm(t *testing.T) {
	form := newCreateForm()

	assert.False(t, form.Editing())
	assert.Equal(t, "New Task", form.Title())
	assert.Equal(t, focusTitle, form.focusIndex)
	assert.Equal(t, -1, form.assignee)

	fields, err := form.Fields()
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, fields.Priority)
	assert.Nil(t, fields.DueDate)
	assert.Nil(t, fields.Assignee)
	assert.Empty(t, fields.Tags)
}

func TestTaskFormPrefillsEditFields(t *testing.T) {
	due := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)
	stranger := domain.Assignee{ID: "u-9", Name: "Lee Nash", Initials: "LN"}
	initial := domain.TaskFields{
		Title:    "Fix login",
		Priority: domain.PriorityHigh,
		DueDate:  &due,
		Assignee: &stranger,
		Tags:     []domain.Tag{testTags[1], {ID: "legacy", Label: "Legacy"}},
	}

	form := NewTaskForm(true, initial, testAssignees, testTags)
	assert.True(t, form.Editing())
	assert.Equal(t, "Edit Task", form.Title())

	fields, err := form.Fields()
	require.NoError(t, err)
	assert.Equal(t, "Fix login", fields.Title)
	assert.Equal(t, domain.PriorityHigh, fields.Priority)
	require.NotNil(t, fields.DueDate)
	assert.Equal(t, "2026-03-14", domain.FormatDueDate(fields.DueDate))
	require.NotNil(t, fields.Assignee)
	assert.Equal(t, "u-9", fields.Assignee.ID)

	ids := make([]string, 0, len(fields.Tags))
	for _, tag := range fields.Tags {
		ids = append(ids, tag.ID)
	}
	assert.Equal(t, []string{"bug", "legacy"}, ids)
}

func TestTaskFormTabNavigation(t *testing.T) {
	form := newCreateForm()

	for want := focusDescription; want < focusCount; want++ {
		press(form, tea.KeyTab)
		assert.Equal(t, want, form.focusIndex)
	}
	press(form, tea.KeyTab)
	assert.Equal(t, focusTitle, form.focusIndex)

	press(form, tea.KeyShiftTab)
	assert.Equal(t, focusSubmit, form.focusIndex)
}

func TestTaskFormSubmitEmitsFields(t *testing.T) {
	form := newCreateForm()
	typeText(form, "Write docs")

	cmd := press(form, tea.KeyCtrlS)
	require.NotNil(t, cmd)

	msg, ok := cmd().(SaveTaskMsg)
	require.True(t, ok)
	assert.Equal(t, "Write docs", msg.Fields.Title)
	assert.Empty(t, form.err)
}

func TestTaskFormBlankTitleStillEmits(t *testing.T) {
	form := newCreateForm()

	cmd := press(form, tea.KeyCtrlS)
	require.NotNil(t, cmd)
	_, ok := cmd().(SaveTaskMsg)
	assert.True(t, ok)
	assert.Equal(t, "Title is required", form.err)
}

func TestTaskFormInvalidDueDate(t *testing.T) {
	form := newCreateForm()
	typeText(form, "Ship it")
	focusOn(form, focusDue)
	typeText(form, "next week")

	cmd := press(form, tea.KeyCtrlS)
	assert.Nil(t, cmd)
	assert.Equal(t, "Due date must be YYYY-MM-DD", form.err)

	_, err := form.Fields()
	assert.Error(t, err)
}

func TestTaskFormPrioritySelector(t *testing.T) {
	form := newCreateForm()
	focusOn(form, focusPriority)

	press(form, tea.KeyRight)
	assert.Equal(t, domain.PriorityHigh, form.priority)

	press(form, tea.KeyRight)
	press(form, tea.KeyRight)
	assert.Equal(t, domain.PriorityUrgent, form.priority, "clamps at urgent")

	form.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})
	assert.Equal(t, domain.PriorityLow, form.priority)

	press(form, tea.KeyLeft)
	assert.Equal(t, domain.PriorityLow, form.priority, "clamps at low")
}

func TestTaskFormAssigneeCycle(t *testing.T) {
	form := newCreateForm()
	focusOn(form, focusAssignee)

	press(form, tea.KeyRight)
	assert.Equal(t, 0, form.assignee)
	press(form, tea.KeyRight)
	assert.Equal(t, 1, form.assignee)
	press(form, tea.KeyRight)
	assert.Equal(t, -1, form.assignee, "wraps to unassigned")
	press(form, tea.KeyLeft)
	assert.Equal(t, 1, form.assignee, "wraps backwards to the last assignee")

	fields, err := form.Fields()
	require.NoError(t, err)
	require.NotNil(t, fields.Assignee)
	assert.Equal(t, "SO", fields.Assignee.Initials)

	press(form, tea.KeyBackspace)
	assert.Equal(t, -1, form.assignee)
}

func TestTaskFormTagToggle(t *testing.T) {
	form := newCreateForm()
	focusOn(form, focusTags)

	press(form, tea.KeySpace)
	press(form, tea.KeyRight)
	press(form, tea.KeySpace)
	press(form, tea.KeyLeft)
	press(form, tea.KeySpace)

	fields, err := form.Fields()
	require.NoError(t, err)
	require.Len(t, fields.Tags, 1)
	assert.Equal(t, "bug", fields.Tags[0].ID)
}

func TestTaskFormDeleteOnlyWhenEditing(t *testing.T) {
	create := newCreateForm()
	assert.Nil(t, press(create, tea.KeyCtrlD))

	edit := NewTaskForm(true, domain.TaskFields{Title: "x"}, nil, nil)
	cmd := press(edit, tea.KeyCtrlD)
	require.NotNil(t, cmd)
	_, ok := cmd().(DeleteTaskMsg)
	assert.True(t, ok)
}

func TestTaskFormEscapeCloses(t *testing.T) {
	cmd := press(newCreateForm(), tea.KeyEsc)
	require.NotNil(t, cmd)
	_, ok := cmd().(CloseOverlayMsg)
	assert.True(t, ok)
}

func TestTaskFormView(t *testing.T) {
	create := newCreateForm().View()
	for _, want := range []string{"Title:", "Description:", "Priority:", "Due:", "Assignee:", "Tags:", "Create Task", "Unassigned", "Frontend"} {
		assert.Contains(t, create, want)
	}
	assert.NotContains(t, create, "delete")

	edit := NewTaskForm(true, domain.TaskFields{Title: "x"}, nil, nil)
	edit.SetError("save failed")
	view := edit.View()
	assert.Contains(t, view, "Save Changes")
	assert.Contains(t, view, "delete")
	assert.Contains(t, view, "save failed")
	assert.Contains(t, view, "none available")
}
