package events

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/events/models"
)

type EventService interface {
	Create(ctx context.Context, req *models.CreateEventRequest) (*models.EventResponse, error)
	ListOffDates(ctx context.Context, branchID int64, from, to string) (*models.OffDatesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
