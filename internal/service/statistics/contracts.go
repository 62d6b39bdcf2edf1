package statistics

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// CompanyRepository интерфейс репозитория компаний
type CompanyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
	CountRelations(ctx context.Context, companyID int64) (*domain.CompanyStatistics, error)
	UpdateStatistics(ctx context.Context, stats *domain.CompanyStatistics) error
	ListIDs(ctx context.Context) ([]int64, error)
}

// CategoryRepository интерфейс репозитория категорий
type CategoryRepository interface {
	CountServices(ctx context.Context, categoryID int64) (int, error)
	UpdateTotalServices(ctx context.Context, categoryID int64, total int) error
	ListIDs(ctx context.Context) ([]int64, error)
}

// Metrics счетчики пересчетов
type Metrics interface {
	IncStatisticsRecompute(target, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
