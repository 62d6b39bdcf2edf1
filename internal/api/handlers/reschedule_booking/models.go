package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *RescheduleBookingRequest) ToServiceRequest(userID int64) *models.RescheduleRequest {
	return &models.RescheduleRequest{
		UserID:    userID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}
