package catalog

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
)

const (
	msgInvalidCategoryID  = "некорректный ID категории"
	msgInvalidCompanyID   = "некорректный ID компании"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgCompanyNotFound    = "компания не найдена"
	msgServiceNotFound    = "услуга не найдена"
	msgCategoryNotFound   = "категория не найдена"
	msgInvalidInput       = "список услуг не должен быть пустым"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// CreateCompany POST /api/v1/companies
func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCompanyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /companies - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	company, err := h.service.CreateCompany(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /companies", err)
		return
	}

	h.logger.Info("POST /companies - Company created: company_id=%d", company.ID)
	handlers.RespondJSON(w, http.StatusCreated, company)
}

// ListCompanies GET /api/v1/companies
func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListCompanies(r.Context())
	if err != nil {
		h.respondServiceError(w, "GET /companies", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// UpdateCompany PUT /api/v1/companies/{companyId}
func (h *Handler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	companyID, err := handlers.PathInt64(r, "companyId")
	if err != nil {
		h.logger.Warn("PUT /companies/{id} - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	var req models.UpdateCompanyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /companies/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	company, err := h.service.UpdateCompany(r.Context(), companyID, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /companies/{id}", err)
		return
	}

	h.logger.Info("PUT /companies/{id} - Company renamed: company_id=%d", companyID)
	handlers.RespondJSON(w, http.StatusOK, company)
}

// CreateService POST /api/v1/services
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	service, err := h.service.CreateService(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /services", err)
		return
	}

	h.logger.Info("POST /services - Service created: service_id=%d, company_id=%d", service.ID, service.CompanyID)
	handlers.RespondJSON(w, http.StatusCreated, service)
}

// CreateCategory POST /api/v1/categories
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCategoryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /categories - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	category, err := h.service.CreateCategory(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /categories", err)
		return
	}

	h.logger.Info("POST /categories - Category created: category_id=%d", category.ID)
	handlers.RespondJSON(w, http.StatusCreated, category)
}

// GetCategory GET /api/v1/categories/{categoryId}
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := h.categoryID(w, r, "GET /categories/{id}")
	if !ok {
		return
	}

	category, err := h.service.GetCategory(r.Context(), categoryID)
	if err != nil {
		h.respondServiceError(w, "GET /categories/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, category)
}

// ListCategories GET /api/v1/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.respondServiceError(w, "GET /categories", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// UpdateCategory PUT /api/v1/categories/{categoryId}
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := h.categoryID(w, r, "PUT /categories/{id}")
	if !ok {
		return
	}

	var req models.UpdateCategoryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /categories/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	category, err := h.service.UpdateCategory(r.Context(), categoryID, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /categories/{id}", err)
		return
	}

	h.logger.Info("PUT /categories/{id} - Category renamed: category_id=%d", categoryID)
	handlers.RespondJSON(w, http.StatusOK, category)
}

// AddServices POST /api/v1/categories/{categoryId}/services
func (h *Handler) AddServices(w http.ResponseWriter, r *http.Request) {
	h.changeServices(w, r, "POST /categories/{id}/services", h.service.AddServices)
}

// RemoveServices DELETE /api/v1/categories/{categoryId}/services
func (h *Handler) RemoveServices(w http.ResponseWriter, r *http.Request) {
	h.changeServices(w, r, "DELETE /categories/{id}/services", h.service.RemoveServices)
}

// ClearServices DELETE /api/v1/categories/{categoryId}/services/all
func (h *Handler) ClearServices(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := h.categoryID(w, r, "DELETE /categories/{id}/services/all")
	if !ok {
		return
	}

	category, err := h.service.ClearServices(r.Context(), categoryID)
	if err != nil {
		h.respondServiceError(w, "DELETE /categories/{id}/services/all", err)
		return
	}

	h.logger.Info("DELETE /categories/{id}/services/all - Category cleared: category_id=%d", categoryID)
	handlers.RespondJSON(w, http.StatusOK, category)
}

type servicesChange func(ctx context.Context, categoryID int64, req *models.CategoryServicesRequest) (*models.CategoryResponse, error)

func (h *Handler) changeServices(w http.ResponseWriter, r *http.Request, route string, change servicesChange) {
	categoryID, ok := h.categoryID(w, r, route)
	if !ok {
		return
	}

	var req models.CategoryServicesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	category, err := change(r.Context(), categoryID, &req)
	if err != nil {
		h.respondServiceError(w, route, err)
		return
	}

	h.logger.Info("%s - Category updated: category_id=%d, total_services=%d", route, categoryID, category.TotalServices)
	handlers.RespondJSON(w, http.StatusOK, category)
}

func (h *Handler) categoryID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	categoryID, err := handlers.PathInt64(r, "categoryId")
	if err != nil {
		h.logger.Warn("%s - Invalid category ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidCategoryID)
		return 0, false
	}
	return categoryID, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, err error) {
	if handlers.RespondValidationError(w, err) {
		h.logger.Warn("%s - Validation failed: %v", route, err)
		return
	}

	switch {
	case errors.Is(err, catalog.ErrCompanyNotFound):
		handlers.RespondNotFound(w, msgCompanyNotFound)
	case errors.Is(err, catalog.ErrServiceNotFound):
		handlers.RespondNotFound(w, msgServiceNotFound)
	case errors.Is(err, catalog.ErrCategoryNotFound):
		handlers.RespondNotFound(w, msgCategoryNotFound)
	case errors.Is(err, catalog.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)
	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
		return
	}
	h.logger.Warn("%s - Request rejected: %v", route, err)
}
