package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	branchRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/branch"
	"github.com/m04kA/SMC-AppointmentService/internal/validation"
)

// Checker проверяет, что бронь относится к филиалу своей компании
// и (если включено) попадает в рабочее время филиала
type Checker struct {
	branchRepo BranchRepository
	eventRepo  EventRepository
	location   *time.Location
	enforce    bool
}

// NewChecker создает проверку доступности
// enforce=false оставляет только проверку принадлежности филиала компании
func NewChecker(branchRepo BranchRepository, eventRepo EventRepository, location *time.Location, enforce bool) *Checker {
	if location == nil {
		location = time.UTC
	}
	return &Checker{
		branchRepo: branchRepo,
		eventRepo:  eventRepo,
		location:   location,
		enforce:    enforce,
	}
}

// Check проверяет бронь относительно её филиала
func (c *Checker) Check(ctx context.Context, b *domain.Booking) error {
	branch, err := c.branchRepo.GetByID(ctx, b.BranchID)
	if err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			return ErrBranchNotFound
		}
		return fmt.Errorf("%w: Check - get branch: %w", ErrInternal, err)
	}

	if branch.CompanyID != b.CompanyID {
		return domain.NewStructuralError("branch_id", "branch does not belong to the company of the service")
	}

	if !c.enforce {
		return nil
	}

	day := domain.TruncateToDay(b.StartTime.In(c.location))
	offDates, err := c.eventRepo.ListOffDates(ctx, branch.ID, day, day)
	if err != nil {
		return fmt.Errorf("%w: Check - list off dates: %w", ErrInternal, err)
	}

	return validation.ValidateAvailability(b, branch, offDates, c.location)
}
