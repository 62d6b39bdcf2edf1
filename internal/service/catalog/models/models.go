package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// CreateCompanyRequest запрос на создание компании
type CreateCompanyRequest struct {
	Name string `json:"companyName"`
}

// UpdateCompanyRequest запрос на переименование компании
type UpdateCompanyRequest struct {
	Name string `json:"companyName"`
}

// CompanyResponse ответ с данными компании
type CompanyResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"companyName"`
	BranchCount int       `json:"branchCount"`
	StaffCount  int       `json:"staffCount"`
	TotalBooks  int       `json:"totalBooks"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FromDomainCompany конвертирует domain модель в DTO
func FromDomainCompany(c *domain.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		BranchCount: c.BranchCount,
		StaffCount:  c.StaffCount,
		TotalBooks:  c.TotalBooks,
		CreatedAt:   c.CreatedAt,
	}
}

// CompanyListResponse ответ со списком компаний
type CompanyListResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	CompanyID               int64  `json:"companyId"`
	Title                   string `json:"title"`
	Description             string `json:"description"`
	IsActive                *bool  `json:"isActive,omitempty"` // по умолчанию true
	CanAcceptUserCustomTime bool   `json:"canAcceptUserCustomTime"`
	HasQuantity             bool   `json:"hasQuantity"`
	Price                   int64  `json:"price"`
	Presentation            string `json:"presentation"`
	AssignedStaffID         *int64 `json:"assignedStaffId,omitempty"`
	SubServiceID            *int64 `json:"subServiceId,omitempty"`
}

// ToDomain конвертирует запрос в domain модель
func (r *CreateServiceRequest) ToDomain() *domain.Service {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}

	presentation := domain.Presentation(r.Presentation)
	if presentation == "" {
		presentation = domain.PresentationInPerson
	}

	return &domain.Service{
		CompanyID:               r.CompanyID,
		Title:                   r.Title,
		Description:             r.Description,
		IsActive:                isActive,
		CanAcceptUserCustomTime: r.CanAcceptUserCustomTime,
		HasQuantity:             r.HasQuantity,
		Price:                   r.Price,
		Presentation:            presentation,
		AssignedStaffID:         r.AssignedStaffID,
		SubServiceID:            r.SubServiceID,
	}
}

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID                      int64     `json:"id"`
	CompanyID               int64     `json:"companyId"`
	Title                   string    `json:"title"`
	Description             string    `json:"description"`
	IsActive                bool      `json:"isActive"`
	CanAcceptUserCustomTime bool      `json:"canAcceptUserCustomTime"`
	HasQuantity             bool      `json:"hasQuantity"`
	Price                   int64     `json:"price"`
	Presentation            string    `json:"presentation"`
	AssignedStaffID         *int64    `json:"assignedStaffId,omitempty"`
	SubServiceID            *int64    `json:"subServiceId,omitempty"`
	CreatedAt               time.Time `json:"createdAt"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:                      s.ID,
		CompanyID:               s.CompanyID,
		Title:                   s.Title,
		Description:             s.Description,
		IsActive:                s.IsActive,
		CanAcceptUserCustomTime: s.CanAcceptUserCustomTime,
		HasQuantity:             s.HasQuantity,
		Price:                   s.Price,
		Presentation:            string(s.Presentation),
		AssignedStaffID:         s.AssignedStaffID,
		SubServiceID:            s.SubServiceID,
		CreatedAt:               s.CreatedAt,
	}
}

// CreateCategoryRequest запрос на создание категории
type CreateCategoryRequest struct {
	Title string `json:"title"`
}

// CategoryServicesRequest список услуг для добавления или удаления
type CategoryServicesRequest struct {
	ServiceIDs []int64 `json:"serviceIds"`
}

// CategoryResponse ответ с данными категории
type CategoryResponse struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	TotalServices int     `json:"totalServices"`
	ServiceIDs    []int64 `json:"serviceIds"`
}

// UpdateCategoryRequest запрос на переименование категории
type UpdateCategoryRequest struct {
	Title string `json:"title"`
}

// CategoryListResponse ответ со списком категорий
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}
