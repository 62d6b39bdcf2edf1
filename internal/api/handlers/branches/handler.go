package branches

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/branches"
	"github.com/m04kA/SMC-AppointmentService/internal/service/branches/models"
)

const (
	msgInvalidBranchID    = "некорректный ID филиала"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "филиал не найден"
	msgCompanyNotFound    = "компания не найдена"
	msgInvalidCompanyID   = "некорректный companyId"
)

type Handler struct {
	service BranchService
	logger  Logger
}

func NewHandler(service BranchService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/branches
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.BranchRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /branches - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	branch, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /branches", err)
		return
	}

	h.logger.Info("POST /branches - Branch created: branch_id=%d, company_id=%d", branch.ID, branch.CompanyID)
	handlers.RespondJSON(w, http.StatusCreated, branch)
}

// Get GET /api/v1/branches/{branchId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	branchID, err := handlers.PathInt64(r, "branchId")
	if err != nil {
		h.logger.Warn("GET /branches/{id} - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	branch, err := h.service.GetByID(r.Context(), branchID)
	if err != nil {
		h.respondServiceError(w, "GET /branches/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, branch)
}

// List GET /api/v1/branches?companyId=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var companyID *int64
	if raw := r.URL.Query().Get("companyId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			h.logger.Warn("GET /branches - Invalid companyId: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidCompanyID)
			return
		}
		companyID = &id
	}

	list, err := h.service.List(r.Context(), companyID)
	if err != nil {
		h.respondServiceError(w, "GET /branches", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// Update PUT /api/v1/branches/{branchId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	branchID, err := handlers.PathInt64(r, "branchId")
	if err != nil {
		h.logger.Warn("PUT /branches/{id} - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	var req models.BranchRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /branches/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	branch, err := h.service.Update(r.Context(), branchID, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /branches/{id}", err)
		return
	}

	h.logger.Info("PUT /branches/{id} - Branch updated: branch_id=%d", branchID)
	handlers.RespondJSON(w, http.StatusOK, branch)
}

// Delete DELETE /api/v1/branches/{branchId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	branchID, err := handlers.PathInt64(r, "branchId")
	if err != nil {
		h.logger.Warn("DELETE /branches/{id} - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	if err := h.service.Delete(r.Context(), branchID); err != nil {
		h.respondServiceError(w, "DELETE /branches/{id}", err)
		return
	}

	h.logger.Info("DELETE /branches/{id} - Branch deleted: branch_id=%d", branchID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, err error) {
	if handlers.RespondValidationError(w, err) {
		h.logger.Warn("%s - Validation failed: %v", route, err)
		return
	}

	switch {
	case errors.Is(err, branches.ErrBranchNotFound):
		h.logger.Warn("%s - Branch not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, branches.ErrCompanyNotFound):
		h.logger.Warn("%s - Company not found", route)
		handlers.RespondNotFound(w, msgCompanyNotFound)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
