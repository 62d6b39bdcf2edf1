package domain

import "time"

// Booking represents a reserved time range of a service
// Bookings are never hard-deleted, cancellation sets IsCanceled
type Booking struct {
	ID            int64
	StartTime     time.Time
	EndTime       time.Time
	BookedBy      int64
	ServiceID     int64
	CompanyID     int64 // компания-владелец ("main")
	BranchID      int64
	IsCanceled    bool
	PaymentStatus PaymentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking takes part in overlap checks
func (b *Booking) IsActive() bool {
	return !b.IsCanceled
}

// Overlaps reports whether the half-open ranges [StartTime, EndTime) and [start, end) intersect
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && start.Before(b.EndTime)
}

// Duration returns the length of the booked range
func (b *Booking) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}

// Check проверяет ограничения брони, действующие при любой записи
func (b *Booking) Check() error {
	if !b.StartTime.Before(b.EndTime) {
		return Violation(ConstraintBookingStartBeforeEnd)
	}
	if !b.PaymentStatus.IsValid() {
		return Violation(ConstraintBookingValidPaymentStatus)
	}
	return nil
}

// CheckNew проверяет ограничения новой брони: к общим добавляется начало в будущем
func (b *Booking) CheckNew(now time.Time) error {
	if !b.StartTime.Before(b.EndTime) {
		return Violation(ConstraintBookingStartBeforeEnd)
	}
	if !b.StartTime.After(now) {
		return Violation(ConstraintBookingStartInFuture)
	}
	return b.Check()
}

// UserBookingsFilter фильтр для получения бронирований пользователя
type UserBookingsFilter struct {
	UserID          int64
	PaymentStatus   *PaymentStatus // опционально
	IncludeCanceled bool
}

// CompanyBookingsFilter фильтр для получения бронирований компании
// From/To ограничивают start_time полуинтервалом [From, To)
type CompanyBookingsFilter struct {
	CompanyID       int64
	BranchID        *int64
	PaymentStatus   *PaymentStatus
	From            *time.Time
	To              *time.Time
	IncludeCanceled bool
}
