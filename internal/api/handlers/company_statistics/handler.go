package company_statistics

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/statistics"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgCompanyNotFound  = "компания не найдена"
)

type Handler struct {
	service StatisticsService
	logger  Logger
}

func NewHandler(service StatisticsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Get GET /api/v1/companies/{companyId}/statistics
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "GET /companies/{id}/statistics", h.service.GetCompanyStatistics)
}

// Recompute POST /api/v1/companies/{companyId}/statistics/recompute
// Полный пересчет счетчиков компании
func (h *Handler) Recompute(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "POST /companies/{id}/statistics/recompute", h.service.RecomputeCompanyStatistics)
}

func (h *Handler) handle(
	w http.ResponseWriter,
	r *http.Request,
	route string,
	fetch func(ctx context.Context, companyID int64) (*domain.CompanyStatistics, error),
) {
	companyID, err := handlers.PathInt64(r, "companyId")
	if err != nil {
		h.logger.Warn("%s - Invalid company ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	stats, err := fetch(r.Context(), companyID)
	if err != nil {
		if errors.Is(err, statistics.ErrCompanyNotFound) {
			h.logger.Warn("%s - Company not found: company_id=%d", route, companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)
			return
		}
		h.logger.Error("%s - Failed: company_id=%d, error=%v", route, companyID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("%s - OK: company_id=%d, branches=%d, staff=%d, books=%d",
		route, companyID, stats.BranchCount, stats.StaffCount, stats.TotalBooks)
	handlers.RespondJSON(w, http.StatusOK, fromDomain(stats))
}
