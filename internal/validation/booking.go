package validation

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ValidateBooking проверяет предлагаемую бронь. Первая неуспешная проверка прерывает остальные:
//  1. start < end
//  2. start > now
//  3. нет пересечения с активной бронью той же услуги (кроме самой брони)
//  4. payment_status из допустимого множества
//
// Ошибка хранилища при поиске пересечений возвращается как есть
func ValidateBooking(ctx context.Context, b *domain.Booking, now time.Time, lookup OverlapLookup) error {
	if !b.StartTime.Before(b.EndTime) {
		return domain.NewOrderingError("start_time", "start time must be before end time")
	}

	if !b.StartTime.After(now) {
		return domain.NewPastStartError("start_time", "start time must be in the future")
	}

	conflict, err := lookup.FindOverlapping(ctx, b.ServiceID, b.StartTime, b.EndTime, b.ID)
	if err != nil {
		return err
	}
	if conflict != nil {
		return domain.NewOverlapError(
			"start_time",
			fmt.Sprintf("this booking overlaps with an existing booking from %s to %s",
				conflict.StartTime.Format(time.RFC3339), conflict.EndTime.Format(time.RFC3339)),
			conflict.ID,
		)
	}

	if !b.PaymentStatus.IsValid() {
		return domain.NewInvalidEnumError("payment_status", domain.PaymentStatusValues())
	}

	return nil
}
