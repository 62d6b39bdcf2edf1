package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/statistics"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error)
	GetByCompany(ctx context.Context, filter domain.CompanyBookingsFilter) ([]*domain.Booking, error)
	FindOverlapping(ctx context.Context, serviceID int64, start, end time.Time, excludeID int64) (*domain.Booking, error)
	Reschedule(ctx context.Context, booking *domain.Booking) error
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
	Cancel(ctx context.Context, id int64) error
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetItemByReservationCode(ctx context.Context, code uuid.UUID) (*domain.OrderItem, error)
	UpdatePaymentStatusByBooking(ctx context.Context, bookingID int64, status domain.PaymentStatus) error
}

// AvailabilityChecker проверка брони относительно рабочего времени филиала
type AvailabilityChecker interface {
	Check(ctx context.Context, b *domain.Booking) error
}

// StatisticsDispatcher пересчет счетчиков по триггеру
type StatisticsDispatcher interface {
	Dispatch(ctx context.Context, trigger statistics.Trigger, ids ...int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Metrics счетчик отклоненных валидацией запросов
type Metrics interface {
	IncValidationRejection(operation, kind string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
