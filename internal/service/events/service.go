package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	branchRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/branch"
	"github.com/m04kA/SMC-AppointmentService/internal/service/events/models"
)

// maxOffDatesRange ограничение диапазона выборки выходных дней
const maxOffDatesRange = 366 * 24 * time.Hour

// Service сервис выходных дней филиалов
type Service struct {
	eventRepo    EventRepository
	branchRepo   BranchRepository
	timeProvider TimeProvider
	loc          *time.Location
	metrics      Metrics
	logger       Logger
}

// NewService создает новый экземпляр сервиса событий
// loc - часовой пояс, в котором разбираются даты
func NewService(
	eventRepo EventRepository,
	branchRepo BranchRepository,
	timeProvider TimeProvider,
	loc *time.Location,
	metrics Metrics,
	logger Logger,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		eventRepo:    eventRepo,
		branchRepo:   branchRepo,
		timeProvider: timeProvider,
		loc:          loc,
		metrics:      metrics,
		logger:       logger,
	}
}

// Create создает выходной день филиала
// Компания события берется из филиала
func (s *Service) Create(ctx context.Context, req *models.CreateEventRequest) (*models.EventResponse, error) {
	s.logger.Info("Create: event for branch=%d, off_date=%s", req.BranchID, req.OffDate)

	offDate, err := time.ParseInLocation(domain.DateFormat, req.OffDate, s.loc)
	if err != nil {
		return nil, s.rejected("Create", domain.NewStructuralError("off_date", "off date must have format YYYY-MM-DD"))
	}

	branch, err := s.branchRepo.GetByID(ctx, req.BranchID)
	if err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			s.logger.Warn("Create: branch id=%d not found", req.BranchID)
			return nil, ErrBranchNotFound
		}
		return nil, fmt.Errorf("%w: Create - get branch: %v", ErrInternal, err)
	}

	event := &domain.Event{
		BranchID:  branch.ID,
		CompanyID: branch.CompanyID,
		Reason:    req.Reason,
		OffDate:   offDate,
	}

	if err := event.Check(s.timeProvider.Now().In(s.loc)); err != nil {
		return nil, s.rejected("Create", err)
	}

	created, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, s.rejected("Create", err)
	}

	s.logger.Info("Create: event id=%d created", created.ID)
	return models.FromDomainEvent(created), nil
}

// ListOffDates возвращает выходные дни филиала в диапазоне дат [from, to]
func (s *Service) ListOffDates(ctx context.Context, branchID int64, from, to string) (*models.OffDatesResponse, error) {
	fromDate, err := time.ParseInLocation(domain.DateFormat, from, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: from must have format YYYY-MM-DD", ErrInvalidInput)
	}
	toDate, err := time.ParseInLocation(domain.DateFormat, to, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: to must have format YYYY-MM-DD", ErrInvalidInput)
	}
	if toDate.Before(fromDate) || toDate.Sub(fromDate) > maxOffDatesRange {
		return nil, fmt.Errorf("%w: invalid date range", ErrInvalidInput)
	}

	if _, err := s.branchRepo.GetByID(ctx, branchID); err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, fmt.Errorf("%w: ListOffDates - get branch: %v", ErrInternal, err)
	}

	dates, err := s.eventRepo.ListOffDates(ctx, branchID, fromDate, toDate)
	if err != nil {
		s.logger.Error("ListOffDates: repository error for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: ListOffDates - repository error: %v", ErrInternal, err)
	}

	resp := &models.OffDatesResponse{BranchID: branchID, OffDates: make([]string, 0, len(dates))}
	for _, d := range dates {
		resp.OffDates = append(resp.OffDates, d.Format(domain.DateFormat))
	}
	return resp, nil
}

func (s *Service) rejected(op string, err error) error {
	if vErr, ok := domain.AsValidationError(err); ok {
		s.metrics.IncValidationRejection("Event"+op, vErr.KindName())
		s.logger.Warn("%s: validation failed: %v", op, vErr)
		return vErr
	}
	s.logger.Error("%s: %v", op, err)
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}
