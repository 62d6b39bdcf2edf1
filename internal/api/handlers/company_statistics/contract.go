package company_statistics

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type StatisticsService interface {
	GetCompanyStatistics(ctx context.Context, companyID int64) (*domain.CompanyStatistics, error)
	RecomputeCompanyStatistics(ctx context.Context, companyID int64) (*domain.CompanyStatistics, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
