package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPriority_String(t *testing.T) {
	tests := []struct {
		priority Priority
		want     string
	}{
		{PriorityLow, "low"},
		{PriorityMedium, "medium"},
		{PriorityHigh, "high"},
		{PriorityUrgent, "urgent"},
		{Priority(9), "priority(9)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.priority.String(); got != tt.want {
				t.Errorf("Priority.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPriority_Ordering(t *testing.T) {
	assert.Less(t, PriorityLow, PriorityMedium)
	assert.Less(t, PriorityMedium, PriorityHigh)
	assert.Less(t, PriorityHigh, PriorityUrgent)
	assert.Equal(t, "Urgent", PriorityUrgent.Label())
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority(" HIGH ")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	_, err = ParsePriority("critical")
	assert.Error(t, err)
}

func TestPriority_YAML(t *testing.T) {
	var doc struct {
		Priority Priority `yaml:"priority"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("priority: urgent\n"), &doc))
	assert.Equal(t, PriorityUrgent, doc.Priority)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, "priority: urgent\n", string(out))

	assert.Error(t, yaml.Unmarshal([]byte("priority: someday\n"), &doc))
}

func TestTask_DueLabel(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		v := now.Add(d)
		return &v
	}

	tests := []struct {
		name string
		due  *time.Time
		want string
	}{
		{"no due date", nil, ""},
		{"overdue", at(-72 * time.Hour), "Overdue 3d"},
		{"due later today", at(0), "Due today"},
		{"due within a day", at(20 * time.Hour), "Due tomorrow"},
		{"due this week", at(5 * 24 * time.Hour), "Due in 5d"},
		{"far future", at(30 * 24 * time.Hour), "Apr 9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{DueDate: tt.due}
			assert.Equal(t, tt.want, task.DueLabel(now))
		})
	}
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.False(t, Task{}.IsOverdue(now))
	assert.True(t, Task{DueDate: &past}.IsOverdue(now))
	assert.False(t, Task{DueDate: &future}.IsOverdue(now))
}

func TestTask_FieldsDoesNotAlias(t *testing.T) {
	task := Task{Title: "x", Tags: []Tag{{ID: "1", Label: "Bug"}}}
	fields := task.Fields()
	fields.Tags[0].Label = "changed"
	assert.Equal(t, "Bug", task.Tags[0].Label)
}

func TestParseDueDate(t *testing.T) {
	d, err := ParseDueDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseDueDate("2026-05-01")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "2026-05-01", FormatDueDate(d))

	_, err = ParseDueDate("05/01/2026")
	assert.Error(t, err)
}
