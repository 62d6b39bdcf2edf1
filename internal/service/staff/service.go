package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	staffTimesRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/stafftimes"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/userservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/staff/models"
	"github.com/m04kA/SMC-AppointmentService/internal/service/statistics"
	"github.com/m04kA/SMC-AppointmentService/internal/validation"
)

// Service сервис расписаний сотрудников
type Service struct {
	staffTimesRepo StaffTimesRepository
	userService    UserServiceClient
	dispatcher     StatisticsDispatcher
	txManager      TransactionManager
	metrics        Metrics
	logger         Logger
}

// NewService создает новый экземпляр сервиса расписаний сотрудников
func NewService(
	staffTimesRepo StaffTimesRepository,
	userService UserServiceClient,
	dispatcher StatisticsDispatcher,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		staffTimesRepo: staffTimesRepo,
		userService:    userService,
		dispatcher:     dispatcher,
		txManager:      txManager,
		metrics:        metrics,
		logger:         logger,
	}
}

// SetWorkingHours создает или заменяет расписание сотрудника
// Компания сотрудника берется из UserService; при смене компании пересчитываются обе
func (s *Service) SetWorkingHours(ctx context.Context, userID int64, req *models.WorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	s.logger.Info("SetWorkingHours: user=%d", userID)

	// Поход в UserService до транзакции
	companyID, err := s.resolveCompany(ctx, userID)
	if err != nil {
		return nil, err
	}

	staffTimes := &domain.StaffTimes{
		UserID:       userID,
		CompanyID:    companyID,
		WorkingHours: domain.Schedule(req.WorkingHours),
	}

	if err := validation.ValidateStaffSchedule("working_hours", staffTimes.WorkingHours); err != nil {
		return nil, s.rejected("SetWorkingHours", err)
	}

	var result *domain.StaffTimes

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		var previousCompanyID int64
		current, err := s.staffTimesRepo.GetByUserID(txCtx, userID)
		switch {
		case err == nil:
			previousCompanyID = current.CompanyID
		case errors.Is(err, staffTimesRepo.ErrStaffTimesNotFound):
		default:
			return fmt.Errorf("%w: SetWorkingHours - get current: %v", ErrInternal, err)
		}

		saved, err := s.staffTimesRepo.Upsert(txCtx, staffTimes)
		if err != nil {
			return s.rejected("SetWorkingHours", err)
		}

		if err := s.dispatcher.Dispatch(txCtx, statistics.TriggerStaffTimesSaved, previousCompanyID, saved.CompanyID); err != nil {
			return fmt.Errorf("%w: SetWorkingHours - recompute statistics: %w", ErrInternal, err)
		}

		result = saved
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("SetWorkingHours: user=%d saved for company=%d", userID, result.CompanyID)
	return models.FromDomainStaffTimes(result), nil
}

// GetWorkingHours возвращает расписание сотрудника
func (s *Service) GetWorkingHours(ctx context.Context, userID int64) (*models.WorkingHoursResponse, error) {
	staffTimes, err := s.staffTimesRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, staffTimesRepo.ErrStaffTimesNotFound) {
			return nil, ErrStaffTimesNotFound
		}
		s.logger.Error("GetWorkingHours: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetWorkingHours - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainStaffTimes(staffTimes), nil
}

// DeleteWorkingHours удаляет расписание сотрудника
func (s *Service) DeleteWorkingHours(ctx context.Context, userID int64) error {
	s.logger.Info("DeleteWorkingHours: user=%d", userID)

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.staffTimesRepo.GetByUserID(txCtx, userID)
		if err != nil {
			if errors.Is(err, staffTimesRepo.ErrStaffTimesNotFound) {
				s.logger.Warn("DeleteWorkingHours: user=%d has no working hours", userID)
				return ErrStaffTimesNotFound
			}
			return fmt.Errorf("%w: DeleteWorkingHours - get current: %v", ErrInternal, err)
		}

		if err := s.staffTimesRepo.DeleteByUserID(txCtx, userID); err != nil {
			if errors.Is(err, staffTimesRepo.ErrStaffTimesNotFound) {
				return ErrStaffTimesNotFound
			}
			return fmt.Errorf("%w: DeleteWorkingHours - repository error: %v", ErrInternal, err)
		}

		if err := s.dispatcher.Dispatch(txCtx, statistics.TriggerStaffTimesDeleted, current.CompanyID); err != nil {
			return fmt.Errorf("%w: DeleteWorkingHours - recompute statistics: %w", ErrInternal, err)
		}
		return nil
	})
}

// resolveCompany проверяет, что пользователь - сотрудник, и возвращает его компанию
func (s *Service) resolveCompany(ctx context.Context, userID int64) (int64, error) {
	member, err := s.userService.GetStaffMember(ctx, userID)
	if err != nil {
		if errors.Is(err, userservice.ErrUserNotFound) {
			s.logger.Warn("SetWorkingHours: user=%d not found in user service", userID)
			return 0, ErrUserNotFound
		}
		s.logger.Error("SetWorkingHours: user service error for user=%d: %v", userID, err)
		return 0, fmt.Errorf("%w: %v", ErrUserServiceUnavailable, err)
	}

	if !member.IsStaff {
		return 0, s.rejected("SetWorkingHours", domain.Violation(domain.ConstraintStaffTimesUserIsStaff))
	}
	if member.CompanyID == nil || *member.CompanyID <= 0 {
		return 0, s.rejected("SetWorkingHours", domain.NewStructuralError("company_id", "staff member is not assigned to a company"))
	}

	return *member.CompanyID, nil
}

func (s *Service) rejected(op string, err error) error {
	if vErr, ok := domain.AsValidationError(err); ok {
		s.metrics.IncValidationRejection("Staff"+op, vErr.KindName())
		s.logger.Warn("%s: validation failed: %v", op, vErr)
		return vErr
	}
	s.logger.Error("%s: %v", op, err)
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}
