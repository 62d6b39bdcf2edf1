package branches

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	branchRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/branch"
	companyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/company"
	"github.com/m04kA/SMC-AppointmentService/internal/service/branches/models"
	"github.com/m04kA/SMC-AppointmentService/internal/service/statistics"
	"github.com/m04kA/SMC-AppointmentService/internal/validation"
)

// Service сервис филиалов
type Service struct {
	branchRepo    BranchRepository
	companyRepo   CompanyRepository
	dispatcher    StatisticsDispatcher
	txManager     TransactionManager
	metrics       Metrics
	logger        Logger
	strictWindows bool
}

// NewService создает новый экземпляр сервиса филиалов
func NewService(
	branchRepo BranchRepository,
	companyRepo CompanyRepository,
	dispatcher StatisticsDispatcher,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		branchRepo:  branchRepo,
		companyRepo: companyRepo,
		dispatcher:  dispatcher,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// WithStrictWindows включает разбор границ окон working_hours и excluded_times при записи
// Включается вместе с booking.enforce_availability
func (s *Service) WithStrictWindows(enabled bool) *Service {
	s.strictWindows = enabled
	return s
}

// Create создает филиал и пересчитывает статистику компании
func (s *Service) Create(ctx context.Context, req *models.BranchRequest) (*models.BranchResponse, error) {
	s.logger.Info("Create: branch for company=%d, city=%s, location=%s", req.CompanyID, req.City, req.Location)

	branch := req.ToDomain(0)
	var result *domain.Branch

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.ensureCompany(txCtx, "Create", branch.CompanyID); err != nil {
			return err
		}

		if err := s.validate(txCtx, branch); err != nil {
			return s.rejected("Create", err)
		}

		created, err := s.branchRepo.Create(txCtx, branch)
		if err != nil {
			return s.rejected("Create", err)
		}

		if err := s.dispatcher.Dispatch(txCtx, statistics.TriggerBranchSaved, created.CompanyID); err != nil {
			return fmt.Errorf("%w: Create - recompute statistics: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Create: branch id=%d created", result.ID)
	return models.FromDomainBranch(result), nil
}

// Update обновляет филиал
// При переносе в другую компанию пересчитываются обе компании
func (s *Service) Update(ctx context.Context, id int64, req *models.BranchRequest) (*models.BranchResponse, error) {
	s.logger.Info("Update: branch id=%d", id)

	branch := req.ToDomain(id)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.getBranch(txCtx, "Update", id)
		if err != nil {
			return err
		}

		if branch.CompanyID != current.CompanyID {
			if err := s.ensureCompany(txCtx, "Update", branch.CompanyID); err != nil {
				return err
			}
		}

		if err := s.validate(txCtx, branch); err != nil {
			return s.rejected("Update", err)
		}

		if err := s.branchRepo.Update(txCtx, branch); err != nil {
			if errors.Is(err, branchRepo.ErrBranchNotFound) {
				return ErrBranchNotFound
			}
			return s.rejected("Update", err)
		}

		if err := s.dispatcher.Dispatch(txCtx, statistics.TriggerBranchSaved, current.CompanyID, branch.CompanyID); err != nil {
			return fmt.Errorf("%w: Update - recompute statistics: %w", ErrInternal, err)
		}

		branch.CreatedAt = current.CreatedAt
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: branch id=%d updated", id)
	return models.FromDomainBranch(branch), nil
}

// Delete удаляет филиал и пересчитывает статистику компании
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: branch id=%d", id)

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.getBranch(txCtx, "Delete", id)
		if err != nil {
			return err
		}

		if err := s.branchRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, branchRepo.ErrBranchNotFound) {
				return ErrBranchNotFound
			}
			s.logger.Error("Delete: repository error for branch id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		if err := s.dispatcher.Dispatch(txCtx, statistics.TriggerBranchDeleted, current.CompanyID); err != nil {
			return fmt.Errorf("%w: Delete - recompute statistics: %w", ErrInternal, err)
		}

		s.logger.Info("Delete: branch id=%d deleted", id)
		return nil
	})
}

// GetByID получает филиал по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BranchResponse, error) {
	branch, err := s.getBranch(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainBranch(branch), nil
}

// List возвращает филиалы, опционально только одной компании
func (s *Service) List(ctx context.Context, companyID *int64) (*models.BranchListResponse, error) {
	if companyID != nil {
		if err := s.ensureCompany(ctx, "List", *companyID); err != nil {
			return nil, err
		}
	}

	branches, err := s.branchRepo.List(ctx, companyID)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &models.BranchListResponse{Branches: make([]models.BranchResponse, 0, len(branches))}
	for _, b := range branches {
		resp.Branches = append(resp.Branches, *models.FromDomainBranch(b))
	}
	return resp, nil
}

func (s *Service) getBranch(ctx context.Context, op string, id int64) (*domain.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			s.logger.Warn("%s: branch id=%d not found", op, id)
			return nil, ErrBranchNotFound
		}
		s.logger.Error("%s: repository error for branch id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return branch, nil
}

func (s *Service) validate(ctx context.Context, branch *domain.Branch) error {
	if err := validation.ValidateBranch(ctx, branch, s.branchRepo); err != nil {
		return err
	}
	if !s.strictWindows {
		return nil
	}
	if err := validation.ValidateScheduleWindows("working_hours", branch.WorkingHours); err != nil {
		return err
	}
	return validation.ValidateScheduleWindows("excluded_times", branch.ExcludedTimes)
}

func (s *Service) ensureCompany(ctx context.Context, op string, companyID int64) error {
	if _, err := s.companyRepo.GetByID(ctx, companyID); err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			s.logger.Warn("%s: company id=%d not found", op, companyID)
			return ErrCompanyNotFound
		}
		s.logger.Error("%s: failed to get company id=%d: %v", op, companyID, err)
		return fmt.Errorf("%w: %s - get company: %v", ErrInternal, op, err)
	}
	return nil
}

func (s *Service) rejected(op string, err error) error {
	if vErr, ok := domain.AsValidationError(err); ok {
		s.metrics.IncValidationRejection("Branch"+op, vErr.KindName())
		s.logger.Warn("%s: validation failed: %v", op, vErr)
		return vErr
	}
	s.logger.Error("%s: %v", op, err)
	return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
}
