package store

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/riordanpawley/wipboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestMemory() *Memory {
	m := NewMemory(Default(testNow), slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.SetClock(func() time.Time { return testNow })
	return m
}

func TestDefault_IsValid(t *testing.T) {
	doc := Default(testNow)

	require.NoError(t, doc.Validate())
	assert.Len(t, doc.Columns, 4)
	assert.Equal(t, []int{5, 3, 2, 0}, []int{
		doc.Columns[0].WIPLimit, doc.Columns[1].WIPLimit, doc.Columns[2].WIPLimit, doc.Columns[3].WIPLimit,
	})
	assert.Len(t, doc.Assignees, 3)
	assert.Len(t, doc.Tags, 4)
}

func TestMemory_CreateTaskRoundTrip(t *testing.T) {
	m := newTestMemory()
	m.SetIDGenerator(func() string { return "task-new" })
	before := len(m.Snapshot().Columns[0].TaskIDs)

	task, err := m.CreateTask(domain.CreateRequest{
		Fields:   domain.TaskFields{Title: "Plan sprint", Priority: domain.PriorityMedium},
		ColumnID: "todo",
	})
	require.NoError(t, err)

	assert.Equal(t, "task-new", task.ID)
	assert.Equal(t, testNow, task.CreatedAt)
	board := m.Snapshot()
	require.Len(t, board.Columns[0].TaskIDs, before+1)
	assert.Equal(t, "task-new", board.Columns[0].TaskIDs[before])
	stored, ok := board.Task("task-new")
	require.True(t, ok)
	assert.Equal(t, "todo", stored.ColumnID)
	assert.NoError(t, board.Validate())
}

func TestMemory_CreateTaskGeneratesUUID(t *testing.T) {
	m := newTestMemory()

	task, err := m.CreateTask(domain.CreateRequest{Fields: domain.TaskFields{Title: "x"}, ColumnID: "done"})
	require.NoError(t, err)

	assert.Len(t, task.ID, 36)
}

func TestMemory_MoveTask(t *testing.T) {
	m := newTestMemory()

	err := m.MoveTask(domain.MoveRequest{TaskID: "task-1", FromColumnID: "todo", ToColumnID: "done"})
	require.NoError(t, err)

	board := m.Snapshot()
	task, _ := board.Task("task-1")
	assert.Equal(t, "done", task.ColumnID)
	assert.Equal(t, testNow, task.UpdatedAt)
	assert.Equal(t, []string{"task-6", "task-7", "task-1"}, board.Columns[3].TaskIDs)
	assert.NoError(t, board.Validate())
}

func TestMemory_MoveTaskRechecksLimit(t *testing.T) {
	m := newTestMemory()
	require.NoError(t, m.MoveTask(domain.MoveRequest{TaskID: "task-1", FromColumnID: "todo", ToColumnID: "review"}))

	err := m.MoveTask(domain.MoveRequest{TaskID: "task-2", FromColumnID: "todo", ToColumnID: "review"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrWIPLimitReached))
	task, _ := m.Snapshot().Task("task-2")
	assert.Equal(t, "todo", task.ColumnID)
}

func TestMemory_EditAndDelete(t *testing.T) {
	m := newTestMemory()

	task, _ := m.Snapshot().Task("task-3")
	task.Title = "Fix link hover state"
	task.ColumnID = "done"
	require.NoError(t, m.EditTask(domain.EditRequest{Task: task}))

	stored, _ := m.Snapshot().Task("task-3")
	assert.Equal(t, "Fix link hover state", stored.Title)
	assert.Equal(t, "in-progress", stored.ColumnID)

	require.NoError(t, m.DeleteTask(domain.DeleteRequest{TaskID: "task-3"}))
	_, ok := m.Snapshot().Task("task-3")
	assert.False(t, ok)
	assert.Equal(t, []string{"task-4"}, m.Snapshot().Columns[1].TaskIDs)

	err := m.DeleteTask(domain.DeleteRequest{TaskID: "task-3"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMemory_OnChange(t *testing.T) {
	m := newTestMemory()
	var got []Document
	m.OnChange(func(doc Document) { got = append(got, doc) })

	require.NoError(t, m.ToggleCollapsed("done"))
	_ = m.MoveTask(domain.MoveRequest{TaskID: "missing", FromColumnID: "todo", ToColumnID: "done"})

	require.Len(t, got, 1)
	assert.True(t, got[0].Columns[3].Collapsed)
	assert.Len(t, got[0].Tags, 4)
}

func TestMemory_SnapshotIsCopy(t *testing.T) {
	m := newTestMemory()

	snap := m.Snapshot()
	snap.Columns[0].TaskIDs[0] = "mutated"

	assert.Equal(t, "task-1", m.Snapshot().Columns[0].TaskIDs[0])
}

func TestMemory_DocumentIsACopy(t *testing.T) {
	m := newTestMemory()
	require.NoError(t, m.MoveTask(domain.MoveRequest{TaskID: "task-1", FromColumnID: "todo", ToColumnID: "done"}))

	doc := m.Document()
	task, ok := doc.Task("task-1")
	require.True(t, ok)
	assert.Equal(t, "done", task.ColumnID)
	assert.Equal(t, m.Assignees(), doc.Assignees)
	assert.Equal(t, m.Tags(), doc.Tags)

	doc.Columns[0].TaskIDs[0] = "mutated"
	doc.Tags[0].Label = "mutated"
	assert.NotEqual(t, "mutated", m.Snapshot().Columns[0].TaskIDs[0])
	assert.NotEqual(t, "mutated", m.Tags()[0].Label)
}

func TestFile_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boards", "board.yaml")
	doc := Default(testNow)

	require.NoError(t, SaveFile(path, doc))
	loaded, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, len(doc.Tasks), len(loaded.Tasks))
	assert.Equal(t, doc.Columns, loaded.Columns)
	task, ok := loaded.Task("task-2")
	require.True(t, ok)
	assert.Equal(t, domain.PriorityUrgent, task.Priority)
	assert.Equal(t, "SO", task.Assignee.Initials)
	assert.Equal(t, doc.Assignees, loaded.Assignees)
}

func TestFile_ConcurrentSavesNeverCorrupt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.yaml")

	const writers = 6
	const rounds = 40

	var wg sync.WaitGroup
	errs := make(chan error, writers*rounds)

	wg.Add(writers)
	for w := range writers {
		go func() {
			defer wg.Done()

			doc := Default(testNow)
			// Each writer produces a document of a different size
			for i := range w * 20 {
				id := fmt.Sprintf("w%d-%d", w, i)
				doc.Tasks = append(doc.Tasks, domain.Task{
					ID: id, Title: "Filler " + id, ColumnID: "done", Priority: domain.PriorityLow,
				})
				doc.Columns[3].TaskIDs = append(doc.Columns[3].TaskIDs, id)
			}
			for range rounds {
				if err := SaveFile(path, doc); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("SaveFile error: %v", err)
	}

	_, err := LoadFile(path)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files should not be left behind")
	assert.Equal(t, "board.yaml", entries[0].Name())
}

func TestFile_LoadRejectsInvalidBoard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	data := `
columns:
  - id: todo
    title: To Do
    wip_limit: 1
    task_ids: [a, b]
tasks:
  - {id: a, title: A, column_id: todo, priority: low}
  - {id: b, title: B, column_id: todo, priority: high}
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := LoadFile(path)

	assert.True(t, errors.Is(err, domain.ErrWIPLimitReached))
}

func TestFile_EmptyColumnsDecodeAsEmpty(t *testing.T) {
	doc, err := Decode([]byte("columns:\n  - id: todo\n    title: To Do\n"))
	require.NoError(t, err)

	assert.NotNil(t, doc.Columns[0].TaskIDs)
	assert.Empty(t, doc.Columns[0].TaskIDs)
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	doc, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"), testNow)

	require.NoError(t, err)
	assert.Len(t, doc.Columns, 4)
}
