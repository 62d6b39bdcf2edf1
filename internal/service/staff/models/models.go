package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// WorkingHoursRequest запрос на установку расписания сотрудника
type WorkingHoursRequest struct {
	WorkingHours map[string]interface{} `json:"workingHours"`
}

// WorkingHoursResponse расписание сотрудника
type WorkingHoursResponse struct {
	ID           int64                  `json:"id"`
	UserID       int64                  `json:"userId"`
	CompanyID    int64                  `json:"companyId"`
	WorkingHours map[string]interface{} `json:"workingHours"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

// FromDomainStaffTimes конвертирует domain модель в DTO
func FromDomainStaffTimes(s *domain.StaffTimes) *WorkingHoursResponse {
	return &WorkingHoursResponse{
		ID:           s.ID,
		UserID:       s.UserID,
		CompanyID:    s.CompanyID,
		WorkingHours: s.WorkingHours,
		UpdatedAt:    s.UpdatedAt,
	}
}
