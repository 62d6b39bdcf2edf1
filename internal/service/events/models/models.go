package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// CreateEventRequest запрос на создание выходного дня филиала
type CreateEventRequest struct {
	BranchID int64  `json:"branchId"`
	Reason   string `json:"reason"`
	OffDate  string `json:"offDate"` // YYYY-MM-DD
}

// EventResponse ответ с данными события
type EventResponse struct {
	ID        int64     `json:"id"`
	BranchID  int64     `json:"branchId"`
	CompanyID int64     `json:"companyId"`
	Reason    string    `json:"reason"`
	OffDate   string    `json:"offDate"`
	CreatedAt time.Time `json:"createdAt"`
}

// OffDatesResponse выходные дни филиала
type OffDatesResponse struct {
	BranchID int64    `json:"branchId"`
	OffDates []string `json:"offDates"`
}

// FromDomainEvent конвертирует domain модель в DTO
func FromDomainEvent(e *domain.Event) *EventResponse {
	return &EventResponse{
		ID:        e.ID,
		BranchID:  e.BranchID,
		CompanyID: e.CompanyID,
		Reason:    e.Reason,
		OffDate:   e.OffDate.Format(domain.DateFormat),
		CreatedAt: e.CreatedAt,
	}
}
