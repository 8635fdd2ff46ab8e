package wip

import (
	"testing"

	"github.com/riordanpawley/wipboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCanAdmit(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		residents int
		want      bool
	}{
		{"unlimited empty", 0, 0, true},
		{"unlimited crowded", 0, 500, true},
		{"below limit", 3, 2, true},
		{"at limit", 3, 3, false},
		{"over limit", 3, 4, false},
		{"limit one empty", 1, 0, true},
		{"limit one full", 1, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := domain.Column{ID: "c", WIPLimit: tt.limit}
			assert.Equal(t, tt.want, CanAdmit(col, tt.residents))
		})
	}
}

func TestAdmitInto(t *testing.T) {
	board := domain.Board{
		Columns: []domain.Column{
			{ID: "a", TaskIDs: []string{"t1"}, WIPLimit: 1},
			{ID: "b", TaskIDs: []string{"t2"}},
		},
		Tasks: []domain.Task{
			{ID: "t1", Title: "one", ColumnID: "a"},
			{ID: "t2", Title: "two", ColumnID: "b"},
		},
	}

	assert.False(t, AdmitInto(board, "a"), "full column must reject")
	assert.True(t, AdmitInto(board, "b"), "unlimited column must admit")
	assert.False(t, AdmitInto(board, "missing"), "unknown column must reject")
}

func TestUsage_Label(t *testing.T) {
	tests := []struct {
		usage Usage
		want  string
	}{
		{Usage{Count: 4, Limit: 0}, ""},
		{Usage{Count: 1, Limit: 3}, "WIP: 1/3"},
		{Usage{Count: 3, Limit: 3}, "Limit Reached (3/3)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.usage.Label())
		})
	}
}

func TestUsageOf(t *testing.T) {
	col := domain.Column{ID: "a", WIPLimit: 2}
	board := domain.Board{
		Columns: []domain.Column{col},
		Tasks: []domain.Task{
			{ID: "t1", ColumnID: "a"},
			{ID: "t2", ColumnID: "a"},
		},
	}

	u := UsageOf(board, col)
	assert.Equal(t, Usage{Count: 2, Limit: 2}, u)
	assert.True(t, u.Reached())
}
