// Package wip provides the work-in-progress admission policy.
//
// A column with a WIP limit admits another task only while its resident count
// is strictly below the limit. The check always runs against the pre-move
// count of the target column; the source column is never checked on removal.
//
// Both interaction engines and the store consult this package, so the rule
// lives in exactly one place.
package wip

import (
	"fmt"

	"github.com/riordanpawley/wipboard/internal/domain"
)

// CanAdmit reports whether one more task may enter the column
func CanAdmit(column domain.Column, residents int) bool {
	return !column.HasLimit() || residents < column.WIPLimit
}

// AdmitInto applies CanAdmit to a column of the snapshot, counting residents
// from the snapshot. Unknown columns never admit.
func AdmitInto(board domain.Board, columnID string) bool {
	col, ok := board.Column(columnID)
	if !ok {
		return false
	}
	return CanAdmit(col, board.ResidentCount(columnID))
}

// Usage is a column's current load against its limit
type Usage struct {
	Count int
	Limit int // 0 = unlimited
}

// UsageOf computes the usage of a column in the snapshot
func UsageOf(board domain.Board, column domain.Column) Usage {
	return Usage{Count: board.ResidentCount(column.ID), Limit: column.WIPLimit}
}

// Limited reports whether a limit applies
func (u Usage) Limited() bool {
	return u.Limit > 0
}

// Reached reports whether the column is full
func (u Usage) Reached() bool {
	return u.Limited() && u.Count >= u.Limit
}

// Label renders the WIP badge text; empty when the column is unlimited
func (u Usage) Label() string {
	switch {
	case !u.Limited():
		return ""
	case u.Reached():
		return fmt.Sprintf("Limit Reached (%d/%d)", u.Count, u.Limit)
	default:
		return fmt.Sprintf("WIP: %d/%d", u.Count, u.Limit)
	}
}
