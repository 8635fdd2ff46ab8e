package domain

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// Task is a single card on the board
type Task struct {
	ID          string     `yaml:"id" json:"id"`
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Priority    Priority   `yaml:"priority" json:"priority"`
	DueDate     *time.Time `yaml:"due_date,omitempty" json:"due_date,omitempty"`
	Assignee    *Assignee  `yaml:"assignee,omitempty" json:"assignee,omitempty"`
	Tags        []Tag      `yaml:"tags,omitempty" json:"tags,omitempty"`
	ColumnID    string     `yaml:"column_id" json:"column_id"`
	CreatedAt   time.Time  `yaml:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `yaml:"updated_at" json:"updated_at"`
}

// Assignee is the person a task is assigned to
type Assignee struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Initials string `yaml:"initials" json:"initials"`
}

// Tag is a colored label attached to a task
type Tag struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
	Color string `yaml:"color,omitempty" json:"color,omitempty"`
}

// Priority represents task priority, ordered low < medium < high < urgent
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

// Priorities lists every priority in ascending order
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

var priorityNames = [...]string{"low", "medium", "high", "urgent"}

// String returns the lowercase priority name
func (p Priority) String() string {
	if p < PriorityLow || p > PriorityUrgent {
		return fmt.Sprintf("priority(%d)", int(p))
	}
	return priorityNames[p]
}

// Label returns the capitalized display name
func (p Priority) Label() string {
	s := p.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParsePriority parses a priority name (case-insensitive)
func ParsePriority(s string) (Priority, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range priorityNames {
		if n == name {
			return Priority(i), nil
		}
	}
	return PriorityMedium, fmt.Errorf("unknown priority %q", s)
}

// MarshalText encodes the priority as its name
func (p Priority) MarshalText() ([]byte, error) {
	if p < PriorityLow || p > PriorityUrgent {
		return nil, fmt.Errorf("invalid priority %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a priority name
func (p *Priority) UnmarshalText(text []byte) error {
	parsed, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// IsOverdue reports whether the due date is set and already passed
func (t Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now)
}

// DueLabel describes the due date relative to now. Empty when unset.
func (t Task) DueLabel(now time.Time) string {
	if t.DueDate == nil {
		return ""
	}
	days := int(math.Ceil(t.DueDate.Sub(now).Hours() / 24))
	switch {
	case days < 0:
		return fmt.Sprintf("Overdue %dd", -days)
	case days == 0:
		return "Due today"
	case days == 1:
		return "Due tomorrow"
	case days <= 7:
		return fmt.Sprintf("Due in %dd", days)
	default:
		return t.DueDate.Format("Jan 2")
	}
}

// Fields returns the editable fields of the task
func (t Task) Fields() TaskFields {
	return TaskFields{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		Assignee:    t.Assignee,
		Tags:        slices.Clone(t.Tags),
	}
}

// clone returns a copy that shares no mutable state with t
func (t Task) clone() Task {
	c := t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.Assignee != nil {
		a := *t.Assignee
		c.Assignee = &a
	}
	c.Tags = slices.Clone(t.Tags)
	return c
}

// dueDateLayout is the editor's date format
const dueDateLayout = "2006-01-02"

// ParseDueDate parses a YYYY-MM-DD date in local time. Blank input means no due date.
func ParseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(dueDateLayout, s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q: %w", s, err)
	}
	return &d, nil
}

// FormatDueDate formats a due date for the editor. Nil formats as "".
func FormatDueDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(dueDateLayout)
}
