package validation

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// ValidateAvailability проверяет, что бронь попадает в доступное время филиала
// Время брони переводится в часовой пояс loc. Отказ (ErrUnavailable), если бронь:
//   - занимает больше одних календарных суток
//   - приходится на выходной, а филиал не работает в выходные
//   - выходит за рабочее окно дня (weekends для выходного, если задано, иначе weekdays)
//   - пересекает исключенное окно дня (excluded_times.weekends / excluded_times.weekdays)
//   - приходится на off_date события филиала
//
// Неразбираемые границы окон дают ErrStructural
func ValidateAvailability(b *domain.Booking, branch *domain.Branch, offDates []time.Time, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}

	start := b.StartTime.In(loc)
	end := b.EndTime.In(loc)

	startMin := types.MinutesOfDay(start)
	endMin := types.MinutesOfDay(end)
	if !domain.SameDay(start, end) {
		// конец ровно в полночь следующего дня считаем концом текущего
		if !(domain.SameDay(start, end.Add(-time.Minute)) && endMin == 0) {
			return domain.NewUnavailableError("end_time", "booking must start and end on the same day")
		}
		endMin = 24 * 60
	}

	weekend := isWeekend(start)
	if weekend && !branch.AvailableOnWeekends {
		return domain.NewUnavailableError("start_time", "branch is closed on weekends")
	}

	working, err := branch.WorkingWindow(weekend)
	if err != nil {
		return domain.NewStructuralError("working_hours", err.Error())
	}
	if !working.Contains(startMin, endMin) {
		return domain.NewUnavailableError("start_time", "booking is outside of branch working hours")
	}

	excluded, ok, err := branch.ExcludedWindow(weekend)
	if err != nil {
		return domain.NewStructuralError("excluded_times", err.Error())
	}
	if ok && excluded.Overlaps(startMin, endMin) {
		return domain.NewUnavailableError("start_time", "booking overlaps with branch excluded times")
	}

	for _, off := range offDates {
		if domain.SameDay(off, start) {
			return domain.NewUnavailableError("start_time", "branch is closed on "+off.Format(domain.DateFormat))
		}
	}

	return nil
}

func isWeekend(t time.Time) bool {
	day := t.Weekday()
	return day == time.Saturday || day == time.Sunday
}
