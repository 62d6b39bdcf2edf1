package domain

import (
	"strings"
	"time"
)

// Event is a branch-scoped day off (holiday, maintenance)
type Event struct {
	ID        int64
	BranchID  int64
	CompanyID int64
	Reason    string
	OffDate   time.Time // дата без времени
	CreatedAt time.Time
}

// Check проверяет ограничения события при создании
// off_date должна быть строго позже сегодняшнего дня
func (e *Event) Check(now time.Time) error {
	if strings.TrimSpace(e.Reason) == "" {
		return Violation(ConstraintEventReasonNotEmpty)
	}
	if !TruncateToDay(e.OffDate).After(TruncateToDay(now)) {
		return Violation(ConstraintEventOffDateInFuture)
	}
	return nil
}

// TruncateToDay returns midnight of t in t's location
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
