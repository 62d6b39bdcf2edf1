package staff_working_hours

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/staff/models"
)

type StaffService interface {
	SetWorkingHours(ctx context.Context, userID int64, req *models.WorkingHoursRequest) (*models.WorkingHoursResponse, error)
	GetWorkingHours(ctx context.Context, userID int64) (*models.WorkingHoursResponse, error)
	DeleteWorkingHours(ctx context.Context, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
