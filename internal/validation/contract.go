package validation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// OverlapLookup поиск пересекающихся бронирований услуги
// Реализация должна вернуть активную (не отмененную) бронь той же услуги,
// для которой start < end' и end > start', кроме брони excludeID
// nil без ошибки - пересечений нет
type OverlapLookup interface {
	FindOverlapping(ctx context.Context, serviceID int64, start, end time.Time, excludeID int64) (*domain.Booking, error)
}

// BranchLookup поиск филиала по паре (city, location)
type BranchLookup interface {
	FindByCityLocation(ctx context.Context, city, location string, excludeID int64) (*domain.Branch, error)
}

// OverlapLookupFunc адаптер функции к OverlapLookup
type OverlapLookupFunc func(ctx context.Context, serviceID int64, start, end time.Time, excludeID int64) (*domain.Booking, error)

// FindOverlapping implements OverlapLookup
func (f OverlapLookupFunc) FindOverlapping(ctx context.Context, serviceID int64, start, end time.Time, excludeID int64) (*domain.Booking, error) {
	return f(ctx, serviceID, start, end, excludeID)
}
