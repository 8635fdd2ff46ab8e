package toast

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/wipboard/internal/types"
	"github.com/riordanpawley/wipboard/internal/ui/styles"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestToastRenderer_Render_Empty(t *testing.T) {
	renderer := New(styles.New())

	result := renderer.Render([]types.Toast{}, 80, now)

	assert.Equal(t, "", result, "Empty toast list should return empty string")
}

func TestToastRenderer_Render_SingleToast(t *testing.T) {
	renderer := New(styles.New())

	toasts := []types.Toast{types.NewToast(types.ToastInfo, "Column is full", now, 5*time.Second)}

	result := renderer.Render(toasts, 120, now)

	assert.Contains(t, ansi.Strip(result), "Column is full")
}

func TestToastRenderer_Render_SkipsExpired(t *testing.T) {
	renderer := New(styles.New())

	toasts := []types.Toast{
		types.NewToast(types.ToastInfo, "stale", now.Add(-time.Minute), time.Second),
		types.NewToast(types.ToastSuccess, "Task moved", now, 5*time.Second),
	}

	result := ansi.Strip(renderer.Render(toasts, 120, now))

	assert.NotContains(t, result, "stale")
	assert.Contains(t, result, "Task moved")

	all := []types.Toast{toasts[0]}
	assert.Equal(t, "", renderer.Render(all, 120, now))
}

func TestToastRenderer_Render_MultipleToasts(t *testing.T) {
	renderer := New(styles.New())

	toasts := []types.Toast{
		types.NewToast(types.ToastInfo, "First", now, 5*time.Second),
		types.NewToast(types.ToastSuccess, "Second", now, 5*time.Second),
		types.NewToast(types.ToastError, "Third", now, 5*time.Second),
	}

	result := ansi.Strip(renderer.Render(toasts, 120, now))

	assert.Contains(t, result, "First")
	assert.Contains(t, result, "Second")
	assert.Contains(t, result, "Third")
	assert.Greater(t, len(strings.Split(result, "\n")), 1, "Multiple toasts should stack")
}

func TestToastRenderer_Render_DifferentLevels(t *testing.T) {
	renderer := New(styles.New())

	tests := []struct {
		name  string
		level types.ToastLevel
	}{
		{"Info", types.ToastInfo},
		{"Success", types.ToastSuccess},
		{"Warning", types.ToastWarning},
		{"Error", types.ToastError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toasts := []types.Toast{types.NewToast(tt.level, "Test "+tt.name, now, 5*time.Second)}

			result := renderer.Render(toasts, 120, now)

			assert.Contains(t, ansi.Strip(result), "Test "+tt.name)
		})
	}
}
