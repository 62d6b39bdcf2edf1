package staff

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/userservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/statistics"
)

// StaffTimesRepository интерфейс репозитория расписаний сотрудников
type StaffTimesRepository interface {
	Upsert(ctx context.Context, staffTimes *domain.StaffTimes) (*domain.StaffTimes, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.StaffTimes, error)
	DeleteByUserID(ctx context.Context, userID int64) error
}

// UserServiceClient интерфейс клиента UserService
type UserServiceClient interface {
	GetStaffMember(ctx context.Context, userID int64) (*userservice.StaffMember, error)
}

// StatisticsDispatcher пересчет счетчиков по триггеру
type StatisticsDispatcher interface {
	Dispatch(ctx context.Context, trigger statistics.Trigger, ids ...int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
