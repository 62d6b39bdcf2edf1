package catalog

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/statistics"
)

// CompanyRepository интерфейс репозитория компаний
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) (*domain.Company, error)
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
	List(ctx context.Context) ([]*domain.Company, error)
	Rename(ctx context.Context, id int64, name string) error
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	CountExisting(ctx context.Context, ids []int64) (int, error)
}

// CategoryRepository интерфейс репозитория категорий
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Rename(ctx context.Context, id int64, title string) error
	AddServices(ctx context.Context, categoryID int64, serviceIDs []int64) error
	RemoveServices(ctx context.Context, categoryID int64, serviceIDs []int64) error
	ClearServices(ctx context.Context, categoryID int64) error
	ServiceIDs(ctx context.Context, categoryID int64) ([]int64, error)
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
