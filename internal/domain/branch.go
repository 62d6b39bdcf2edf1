package domain

import (
	"strings"
	"time"
)

// Branch represents a physical location of a company
type Branch struct {
	ID                  int64
	CompanyID           int64
	City                string
	Location            string
	WorkingHours        Schedule
	ExcludedTimes       Schedule
	AvailableOnWeekends bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Check проверяет ограничения филиала, которые можно проверить без обращения к хранилищу
// Уникальность (city, location) проверяется валидатором и ограничением БД
func (b *Branch) Check() error {
	if strings.TrimSpace(b.City) == "" {
		return Violation(ConstraintBranchCityNotEmpty)
	}
	if b.WorkingHours.MissingKey(ScheduleWeekdays) != "" {
		return Violation(ConstraintBranchWorkingHoursWeekdays)
	}
	if b.WorkingHours.Has(ScheduleWeekends) && b.WorkingHours.MissingKey(ScheduleWeekends) != "" {
		return Violation(ConstraintBranchWorkingHoursWeekends)
	}
	if b.ExcludedTimes.MissingKey(ScheduleWeekdays) != "" {
		return Violation(ConstraintBranchExcludedWeekdays)
	}
	return nil
}

// WorkingWindow returns the working window of the branch for a weekday or weekend day
// Weekends fall back to the weekdays window when not defined
func (b *Branch) WorkingWindow(weekend bool) (Window, error) {
	if weekend {
		if w, ok, err := b.WorkingHours.Window(ScheduleWeekends); ok {
			return w, err
		}
	}
	w, _, err := b.WorkingHours.Window(ScheduleWeekdays)
	return w, err
}

// ExcludedWindow returns the excluded window for the day type, ok is false if none applies
func (b *Branch) ExcludedWindow(weekend bool) (Window, bool, error) {
	key := ScheduleWeekdays
	if weekend {
		key = ScheduleWeekends
	}
	return b.ExcludedTimes.Window(key)
}
