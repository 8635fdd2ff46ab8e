package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/riordanpawley/wipboard/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadFile reads and validates a YAML board document
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read board file: %w", err)
	}
	return Decode(data)
}

// Decode parses a YAML board document and checks its invariants
func Decode(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("failed to parse board: %w", err)
	}
	for i := range doc.Columns {
		if doc.Columns[i].TaskIDs == nil {
			doc.Columns[i].TaskIDs = []string{}
		}
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// LoadOrDefault loads the board at path. A missing file yields the sample
// board.
func LoadOrDefault(path string, now time.Time) (Document, error) {
	doc, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(now), nil
	}
	return doc, err
}

// saveMu serializes writers so the last SaveFile call in this process wins
var saveMu sync.Mutex

// SaveFile writes the document atomically as YAML. The data goes to a fresh
// temp file in the target directory, which is then renamed over path.
func SaveFile(path string, doc Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode board: %w", err)
	}

	saveMu.Lock()
	defer saveMu.Unlock()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create board directory: %w", err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write board file: %w", err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write board file: %w", err)
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		return fmt.Errorf("failed to write board file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write board file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace board file: %w", err)
	}
	return nil
}

// Default returns the four-column sample board
func Default(now time.Time) Document {
	day := func(offset int) *time.Time {
		d := time.Date(now.Year(), now.Month(), now.Day()+offset, 0, 0, 0, 0, now.Location())
		return &d
	}

	people := []domain.Assignee{
		{ID: "u-1", Name: "Ada Park", Initials: "AP"},
		{ID: "u-2", Name: "Sam Ortiz", Initials: "SO"},
		{ID: "u-3", Name: "Lee Novak", Initials: "LN"},
	}
	tags := []domain.Tag{
		{ID: "frontend", Label: "Frontend", Color: "#3b82f6"},
		{ID: "backend", Label: "Backend", Color: "#10b981"},
		{ID: "design", Label: "Design", Color: "#8b5cf6"},
		{ID: "bug", Label: "Bug", Color: "#ef4444"},
	}

	task := func(id, title, desc string, p domain.Priority, due *time.Time, who *domain.Assignee, col string, t ...domain.Tag) domain.Task {
		return domain.Task{
			ID: id, Title: title, Description: desc, Priority: p, DueDate: due,
			Assignee: who, Tags: t, ColumnID: col, CreatedAt: now, UpdatedAt: now,
		}
	}

	return Document{
		Board: domain.Board{
			Columns: []domain.Column{
				{ID: "todo", Title: "To Do", TaskIDs: []string{"task-1", "task-2", "task-8"}, WIPLimit: 5},
				{ID: "in-progress", Title: "In Progress", TaskIDs: []string{"task-3", "task-4"}, WIPLimit: 3},
				{ID: "review", Title: "In Review", TaskIDs: []string{"task-5"}, WIPLimit: 2},
				{ID: "done", Title: "Done", TaskIDs: []string{"task-6", "task-7"}},
			},
			Tasks: []domain.Task{
				task("task-1", "Sketch the dashboard layout", "Mock up the new dashboard screens",
					domain.PriorityHigh, day(1), &people[0], "todo", tags[0], tags[2]),
				task("task-2", "Add token auth endpoints", "Login and refresh handlers",
					domain.PriorityUrgent, day(0), &people[1], "todo", tags[1]),
				task("task-3", "Fix button hover state", "",
					domain.PriorityLow, day(7), &people[2], "in-progress", tags[0], tags[3]),
				task("task-4", "Write schema migrations", "Initial tables for users",
					domain.PriorityMedium, day(7), &people[1], "in-progress", tags[1]),
				task("task-5", "Cover helpers with tests", "",
					domain.PriorityMedium, day(7), nil, "review", tags[1]),
				task("task-6", "Review open pull requests", "",
					domain.PriorityHigh, day(1), &people[0], "done"),
				task("task-7", "Refresh the README", "Document the new endpoints",
					domain.PriorityLow, day(7), &people[2], "done"),
				task("task-8", "Chase the overdue invoice", "Shows how overdue tasks render",
					domain.PriorityHigh, day(-7), &people[1], "todo", tags[3]),
			},
		},
		Assignees: people,
		Tags:      tags,
	}
}
