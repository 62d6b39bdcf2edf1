package staff_working_hours

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/staff"
	"github.com/m04kA/SMC-AppointmentService/internal/service/staff/models"
)

const (
	msgInvalidUserID      = "некорректный ID сотрудника"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUserNotFound       = "пользователь не найден"
	msgNotFound           = "расписание сотрудника не найдено"
	msgUserServiceFailure = "сервис пользователей недоступен"
)

type Handler struct {
	service StaffService
	logger  Logger
}

func NewHandler(service StaffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Set PUT /api/v1/staff/{userId}/working-hours
func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r, "PUT /staff/{id}/working-hours")
	if !ok {
		return
	}

	var req models.WorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /staff/{id}/working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetWorkingHours(r.Context(), userID, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /staff/{id}/working-hours", err)
		return
	}

	h.logger.Info("PUT /staff/{id}/working-hours - Working hours saved: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/staff/{userId}/working-hours
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r, "GET /staff/{id}/working-hours")
	if !ok {
		return
	}

	result, err := h.service.GetWorkingHours(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, "GET /staff/{id}/working-hours", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/staff/{userId}/working-hours
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r, "DELETE /staff/{id}/working-hours")
	if !ok {
		return
	}

	if err := h.service.DeleteWorkingHours(r.Context(), userID); err != nil {
		h.respondServiceError(w, "DELETE /staff/{id}/working-hours", err)
		return
	}

	h.logger.Info("DELETE /staff/{id}/working-hours - Working hours deleted: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		h.logger.Warn("%s - Invalid user ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return 0, false
	}
	return userID, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, err error) {
	if handlers.RespondValidationError(w, err) {
		h.logger.Warn("%s - Validation failed: %v", route, err)
		return
	}

	switch {
	case errors.Is(err, staff.ErrUserNotFound):
		h.logger.Warn("%s - User not found", route)
		handlers.RespondNotFound(w, msgUserNotFound)

	case errors.Is(err, staff.ErrStaffTimesNotFound):
		h.logger.Warn("%s - Working hours not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, staff.ErrUserServiceUnavailable):
		h.logger.Error("%s - User service failure: %v", route, err)
		handlers.RespondError(w, http.StatusBadGateway, msgUserServiceFailure)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
