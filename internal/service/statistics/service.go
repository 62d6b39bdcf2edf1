package statistics

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	categoryRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/category"
	companyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/company"
)

// Метки метрики пересчетов
const (
	targetCompany  = "company"
	targetCategory = "category"

	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

// Service пересчитывает денормализованные счетчики полным пересчетом
// Каждый вызов перезаписывает счетчики, поэтому повторный вызов без изменений данных ничего не меняет
type Service struct {
	companyRepo  CompanyRepository
	categoryRepo CategoryRepository
	metrics      Metrics
	logger       Logger
}

// NewService создает новый экземпляр сервиса статистики
func NewService(
	companyRepo CompanyRepository,
	categoryRepo CategoryRepository,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		companyRepo:  companyRepo,
		categoryRepo: categoryRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

// RecomputeCompanyStatistics пересчитывает branch_count, staff_count и total_books компании
func (s *Service) RecomputeCompanyStatistics(ctx context.Context, companyID int64) (*domain.CompanyStatistics, error) {
	stats, err := s.companyRepo.CountRelations(ctx, companyID)
	if errors.Is(err, companyRepo.ErrCompanyNotFound) {
		s.metrics.IncStatisticsRecompute(targetCompany, outcomeNotFound)
		s.logger.Warn("RecomputeCompanyStatistics: company id=%d not found", companyID)
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		s.metrics.IncStatisticsRecompute(targetCompany, outcomeError)
		s.logger.Error("RecomputeCompanyStatistics: failed to count relations for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: RecomputeCompanyStatistics - count relations: %w", ErrPersist, err)
	}

	if err := s.companyRepo.UpdateStatistics(ctx, stats); err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			s.metrics.IncStatisticsRecompute(targetCompany, outcomeNotFound)
			s.logger.Warn("RecomputeCompanyStatistics: company id=%d not found", companyID)
			return nil, ErrCompanyNotFound
		}
		s.metrics.IncStatisticsRecompute(targetCompany, outcomeError)
		s.logger.Error("RecomputeCompanyStatistics: failed to update company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: RecomputeCompanyStatistics - update statistics: %w", ErrPersist, err)
	}

	s.metrics.IncStatisticsRecompute(targetCompany, outcomeOK)
	s.logger.Info("RecomputeCompanyStatistics: company=%d branches=%d staff=%d books=%d",
		companyID, stats.BranchCount, stats.StaffCount, stats.TotalBooks)

	return stats, nil
}

// RecomputeCategoryServiceCount пересчитывает total_services категории
func (s *Service) RecomputeCategoryServiceCount(ctx context.Context, categoryID int64) (int, error) {
	total, err := s.categoryRepo.CountServices(ctx, categoryID)
	if errors.Is(err, categoryRepo.ErrCategoryNotFound) {
		s.metrics.IncStatisticsRecompute(targetCategory, outcomeNotFound)
		s.logger.Warn("RecomputeCategoryServiceCount: category id=%d not found", categoryID)
		return 0, ErrCategoryNotFound
	}
	if err != nil {
		s.metrics.IncStatisticsRecompute(targetCategory, outcomeError)
		s.logger.Error("RecomputeCategoryServiceCount: failed to count services for category=%d: %v", categoryID, err)
		return 0, fmt.Errorf("%w: RecomputeCategoryServiceCount - count services: %w", ErrPersist, err)
	}

	if err := s.categoryRepo.UpdateTotalServices(ctx, categoryID, total); err != nil {
		if errors.Is(err, categoryRepo.ErrCategoryNotFound) {
			s.metrics.IncStatisticsRecompute(targetCategory, outcomeNotFound)
			s.logger.Warn("RecomputeCategoryServiceCount: category id=%d not found", categoryID)
			return 0, ErrCategoryNotFound
		}
		s.metrics.IncStatisticsRecompute(targetCategory, outcomeError)
		s.logger.Error("RecomputeCategoryServiceCount: failed to update category=%d: %v", categoryID, err)
		return 0, fmt.Errorf("%w: RecomputeCategoryServiceCount - update total: %w", ErrPersist, err)
	}

	s.metrics.IncStatisticsRecompute(targetCategory, outcomeOK)
	s.logger.Info("RecomputeCategoryServiceCount: category=%d total=%d", categoryID, total)

	return total, nil
}

// GetCompanyStatistics возвращает сохраненные счетчики компании
func (s *Service) GetCompanyStatistics(ctx context.Context, companyID int64) (*domain.CompanyStatistics, error) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("GetCompanyStatistics: repository error for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: GetCompanyStatistics - repository error: %w", ErrPersist, err)
	}

	return company.Statistics(), nil
}

// RecomputeAll пересчитывает счетчики всех компаний и категорий
// Ошибка одной сущности не останавливает пересчет остальных, возвращается первая ошибка
func (s *Service) RecomputeAll(ctx context.Context) error {
	var firstErr error
	keep := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	companyIDs, err := s.companyRepo.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("%w: RecomputeAll - list companies: %w", ErrPersist, err)
	}
	for _, id := range companyIDs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := s.RecomputeCompanyStatistics(ctx, id); err != nil {
			keep(err)
		}
	}

	categoryIDs, err := s.categoryRepo.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("%w: RecomputeAll - list categories: %w", ErrPersist, err)
	}
	for _, id := range categoryIDs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := s.RecomputeCategoryServiceCount(ctx, id); err != nil {
			keep(err)
		}
	}

	s.logger.Info("RecomputeAll: processed %d companies and %d categories", len(companyIDs), len(categoryIDs))
	return firstErr
}
