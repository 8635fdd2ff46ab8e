package board

import (
	"github.com/riordanpawley/wipboard/internal/domain"
)

// Rows above the first card: header line, then the column's top border
const bodyTop = 2

// Layout is the screen geometry of a rendered board, used for mouse hit-testing.
// Coordinates are cells relative to the board's top-left corner.
type Layout struct {
	ColumnWidth int
	Height      int
	Columns     []ColumnRegion
}

// ColumnRegion is a column's horizontal extent and its visible cards
type ColumnRegion struct {
	ID    string
	X0    int // inclusive
	X1    int // exclusive
	Cards []CardRegion
}

// CardRegion is a card's vertical extent
type CardRegion struct {
	TaskID string
	Y0     int // inclusive
	Y1     int // exclusive
}

// ComputeLayout derives the geometry Render will produce for the same inputs
func ComputeLayout(b domain.Board, width, height, maxColumnWidth int) Layout {
	l := Layout{Height: height}
	if len(b.Columns) == 0 {
		return l
	}
	l.ColumnWidth = columnWidth(len(b.Columns), width, maxColumnWidth)

	for i, col := range b.Columns {
		region := ColumnRegion{ID: col.ID, X0: i * l.ColumnWidth, X1: (i + 1) * l.ColumnWidth}
		if !col.Collapsed {
			tasks, _ := visibleTasks(b.ColumnTasks(col.ID), bodyHeight(height))
			y := bodyTop
			for _, t := range tasks {
				h := cardHeight(t)
				region.Cards = append(region.Cards, CardRegion{TaskID: t.ID, Y0: y, Y1: y + h})
				y += h
			}
		}
		l.Columns = append(l.Columns, region)
	}
	return l
}

// ColumnAt returns the column under x
func (l Layout) ColumnAt(x, y int) (string, bool) {
	if y < 0 || (l.Height > 0 && y >= l.Height) {
		return "", false
	}
	for _, c := range l.Columns {
		if x >= c.X0 && x < c.X1 {
			return c.ID, true
		}
	}
	return "", false
}

// CardAt returns the card under (x, y) and its column
func (l Layout) CardAt(x, y int) (taskID, columnID string, ok bool) {
	for _, c := range l.Columns {
		if x < c.X0 || x >= c.X1 {
			continue
		}
		for _, card := range c.Cards {
			if y >= card.Y0 && y < card.Y1 {
				return card.TaskID, c.ID, true
			}
		}
		return "", c.ID, false
	}
	return "", "", false
}

// columnWidth splits width evenly, capped at maxColumnWidth when positive
func columnWidth(n, width, maxColumnWidth int) int {
	w := width / n
	if maxColumnWidth > 0 && w > maxColumnWidth {
		w = maxColumnWidth
	}
	return max(w, minColumnWidth)
}

const minColumnWidth = 12

// bodyHeight is the number of rows inside a column's borders
func bodyHeight(height int) int {
	return max(height-bodyTop-1, 0)
}

// cardHeight is border (2) + title + meta, plus a tag line when present
func cardHeight(t domain.Task) int {
	h := 4
	if len(t.Tags) > 0 {
		h++
	}
	return h
}

// visibleTasks returns the tasks that fit in rows, reserving a line for the
// overflow marker when some do not. hidden is the number left out.
func visibleTasks(tasks []domain.Task, rows int) (shown []domain.Task, hidden int) {
	used := 0
	for i, t := range tasks {
		need := cardHeight(t)
		if i < len(tasks)-1 {
			need++ // keep room for "+N more"
		}
		if used+need > rows {
			return tasks[:i], len(tasks) - i
		}
		used += cardHeight(t)
	}
	return tasks, 0
}
