package events

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/events"
	"github.com/m04kA/SMC-AppointmentService/internal/service/events/models"
)

const (
	msgInvalidBranchID    = "некорректный ID филиала"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRange       = "некорректный диапазон дат, ожидается from и to в формате YYYY-MM-DD"
	msgBranchNotFound     = "филиал не найден"
)

type Handler struct {
	service EventService
	logger  Logger
}

func NewHandler(service EventService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/events
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /events - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	event, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /events", err)
		return
	}

	h.logger.Info("POST /events - Event created: event_id=%d, branch_id=%d, off_date=%s",
		event.ID, event.BranchID, event.OffDate)
	handlers.RespondJSON(w, http.StatusCreated, event)
}

// ListOffDates GET /api/v1/branches/{branchId}/off-dates
// Query params: from, to (required, YYYY-MM-DD)
func (h *Handler) ListOffDates(w http.ResponseWriter, r *http.Request) {
	branchID, err := handlers.PathInt64(r, "branchId")
	if err != nil {
		h.logger.Warn("GET /branches/{id}/off-dates - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	query := r.URL.Query()
	result, err := h.service.ListOffDates(r.Context(), branchID, query.Get("from"), query.Get("to"))
	if err != nil {
		h.respondServiceError(w, "GET /branches/{id}/off-dates", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, err error) {
	if handlers.RespondValidationError(w, err) {
		h.logger.Warn("%s - Validation failed: %v", route, err)
		return
	}

	switch {
	case errors.Is(err, events.ErrBranchNotFound):
		h.logger.Warn("%s - Branch not found", route)
		handlers.RespondNotFound(w, msgBranchNotFound)

	case errors.Is(err, events.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRange)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
