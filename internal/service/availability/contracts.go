package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BranchRepository интерфейс репозитория филиалов
type BranchRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Branch, error)
}

// EventRepository интерфейс репозитория выходных дней
type EventRepository interface {
	ListOffDates(ctx context.Context, branchID int64, from, to time.Time) ([]time.Time, error)
}
