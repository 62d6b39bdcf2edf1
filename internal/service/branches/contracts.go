package branches

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/statistics"
)

// BranchRepository интерфейс репозитория филиалов
type BranchRepository interface {
	Create(ctx context.Context, branch *domain.Branch) (*domain.Branch, error)
	Update(ctx context.Context, branch *domain.Branch) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Branch, error)
	FindByCityLocation(ctx context.Context, city, location string, excludeID int64) (*domain.Branch, error)
	List(ctx context.Context, companyID *int64) ([]*domain.Branch, error)
}

// CompanyRepository интерфейс репозитория компаний
type CompanyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
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
