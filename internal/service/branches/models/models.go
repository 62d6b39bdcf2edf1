package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BranchRequest запрос на создание или обновление филиала
type BranchRequest struct {
	CompanyID           int64                  `json:"companyId"`
	City                string                 `json:"city"`
	Location            string                 `json:"location"`
	WorkingHours        map[string]interface{} `json:"workingHours"`
	ExcludedTimes       map[string]interface{} `json:"excludedTimes"`
	AvailableOnWeekends bool                   `json:"availableOnWeekends"`
}

// ToDomain конвертирует запрос в domain модель
func (r *BranchRequest) ToDomain(id int64) *domain.Branch {
	return &domain.Branch{
		ID:                  id,
		CompanyID:           r.CompanyID,
		City:                r.City,
		Location:            r.Location,
		WorkingHours:        domain.Schedule(r.WorkingHours),
		ExcludedTimes:       domain.Schedule(r.ExcludedTimes),
		AvailableOnWeekends: r.AvailableOnWeekends,
	}
}

// BranchResponse ответ с данными филиала
type BranchResponse struct {
	ID                  int64                  `json:"id"`
	CompanyID           int64                  `json:"companyId"`
	City                string                 `json:"city"`
	Location            string                 `json:"location"`
	WorkingHours        map[string]interface{} `json:"workingHours"`
	ExcludedTimes       map[string]interface{} `json:"excludedTimes"`
	AvailableOnWeekends bool                   `json:"availableOnWeekends"`
	CreatedAt           time.Time              `json:"createdAt"`
	UpdatedAt           time.Time              `json:"updatedAt"`
}

// FromDomainBranch конвертирует domain модель в DTO
func FromDomainBranch(b *domain.Branch) *BranchResponse {
	if b == nil {
		return nil
	}

	return &BranchResponse{
		ID:                  b.ID,
		CompanyID:           b.CompanyID,
		City:                b.City,
		Location:            b.Location,
		WorkingHours:        b.WorkingHours,
		ExcludedTimes:       b.ExcludedTimes,
		AvailableOnWeekends: b.AvailableOnWeekends,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}

// BranchListResponse ответ со списком филиалов
type BranchListResponse struct {
	Branches []BranchResponse `json:"branches"`
}
