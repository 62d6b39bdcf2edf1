package validation

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ValidateSchedule проверяет структуру документа филиала (working_hours, excluded_times):
// обязательный weekdays{start,end} и необязательный weekends{start,end}
// Значения start/end не разбираются
func ValidateSchedule(field string, doc domain.Schedule) error {
	if missing := doc.MissingKey(domain.ScheduleWeekdays); missing != "" {
		return missingKeyError(field, missing)
	}
	if doc.Has(domain.ScheduleWeekends) {
		if missing := doc.MissingKey(domain.ScheduleWeekends); missing != "" {
			return missingKeyError(field, missing)
		}
	}
	return nil
}

// ValidateStaffSchedule проверяет расписание сотрудника: хотя бы один день,
// каждый день содержит start и end. Обязательного weekdays нет
func ValidateStaffSchedule(field string, doc domain.Schedule) error {
	if len(doc) == 0 {
		return domain.NewStructuralError(field, "at least one day must be specified")
	}
	for _, day := range doc.Days() {
		if missing := doc.MissingKey(day); missing != "" {
			return missingKeyError(field, missing)
		}
	}
	return nil
}

func missingKeyError(field, path string) *domain.ValidationError {
	return domain.NewStructuralError(field, fmt.Sprintf("missing required key %q", path))
}

// ValidateScheduleWindows разбирает границы weekdays и weekends (если есть) как HH:MM
// Структура документа должна быть уже проверена ValidateSchedule
func ValidateScheduleWindows(field string, doc domain.Schedule) error {
	for _, key := range []string{domain.ScheduleWeekdays, domain.ScheduleWeekends} {
		if _, _, err := doc.Window(key); err != nil {
			return domain.NewStructuralError(field, err.Error())
		}
	}
	return nil
}
