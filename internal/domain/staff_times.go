package domain

import "time"

// StaffTimes working hours of a single staff member
// Unlike Branch.WorkingHours any day keys are allowed, there is no mandatory "weekdays"
type StaffTimes struct {
	ID           int64
	UserID       int64
	CompanyID    int64
	WorkingHours Schedule
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Check проверяет ограничения расписания сотрудника
// Признак is_staff проверяется сервисом через UserService
func (s *StaffTimes) Check() error {
	if len(s.WorkingHours) == 0 {
		return Violation(ConstraintStaffTimesNotEmpty)
	}
	for _, day := range s.WorkingHours.Days() {
		if s.WorkingHours.MissingKey(day) != "" {
			return Violation(ConstraintStaffTimesDaysHaveBounds)
		}
	}
	return nil
}
