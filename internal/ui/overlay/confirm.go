package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmDialog is a Yes/No question. It answers with a SelectionMsg whose
// Key is the dialog's key and whose Value is a ConfirmResult.
type ConfirmDialog struct {
	key      string
	title    string
	message  string
	styles   *Styles
	selected bool // true = Yes, false = No
}

// ConfirmResult represents the result of a confirmation dialog
type ConfirmResult struct {
	Confirmed bool
}

// NewConfirmDialog creates a dialog that defaults to No
func NewConfirmDialog(key, title, message string) *ConfirmDialog {
	return &ConfirmDialog{
		key:     key,
		title:   title,
		message: message,
		styles:  New(),
	}
}

// Init initializes the dialog
func (c *ConfirmDialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (c *ConfirmDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		return c, c.answer(true)
	case "n", "N", "esc":
		return c, c.answer(false)
	case "enter":
		return c, c.answer(c.selected)
	case "left", "h":
		c.selected = true
	case "right", "l":
		c.selected = false
	case "tab":
		c.selected = !c.selected
	}

	return c, nil
}

func (c *ConfirmDialog) answer(confirmed bool) tea.Cmd {
	key := c.key
	return func() tea.Msg {
		return SelectionMsg{Key: key, Value: ConfirmResult{Confirmed: confirmed}}
	}
}

// View renders the dialog
func (c *ConfirmDialog) View() string {
	var b strings.Builder

	if c.message != "" {
		b.WriteString(c.styles.MenuItem.Render(c.message))
		b.WriteString("\n\n")
	}

	yesStyle := c.styles.MenuItem
	noStyle := c.styles.MenuItem
	if c.selected {
		yesStyle = c.styles.Danger
	} else {
		noStyle = c.styles.MenuItemActive
	}

	b.WriteString(yesStyle.Render("[Y] Yes") + "    " + noStyle.Render("[N] No"))
	b.WriteString("\n")
	b.WriteString(c.styles.Footer.Render("← → / Tab: Switch • Enter: Confirm • Esc: Cancel"))

	return b.String()
}

// Title returns the dialog title
func (c *ConfirmDialog) Title() string {
	return c.title
}

// Size returns the dialog dimensions
func (c *ConfirmDialog) Size() (width, height int) {
	messageLines := len(strings.Split(c.message, "\n"))
	return 50, messageLines + 6
}
