package get_user_bookings

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

const (
	msgInvalidUserID          = "некорректный ID пользователя"
	msgInvalidIncludeCanceled = "некорректное значение includeCanceled"
	msgForbidden              = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/bookings
// Query params: paymentStatus (optional), includeCanceled (optional, bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		h.logger.Warn("GET /users/{userId}/bookings - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	if callerID, ok := middleware.GetUserID(r.Context()); !ok || callerID != userID {
		h.logger.Warn("GET /users/{userId}/bookings - Access denied: user_id=%d", userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	serviceReq := &models.GetUserBookingsRequest{UserID: userID}

	if status := r.URL.Query().Get("paymentStatus"); status != "" {
		serviceReq.PaymentStatus = &status
	}

	if raw := r.URL.Query().Get("includeCanceled"); raw != "" {
		includeCanceled, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /users/{userId}/bookings - Invalid includeCanceled: %v", err)
			handlers.RespondBadRequest(w, msgInvalidIncludeCanceled)
			return
		}
		serviceReq.IncludeCanceled = includeCanceled
	}

	result, err := h.service.GetUserBookings(r.Context(), serviceReq)
	if err != nil {
		if handlers.RespondValidationError(w, err) {
			h.logger.Warn("GET /users/{userId}/bookings - Invalid filter: user_id=%d, error=%v", userID, err)
			return
		}
		h.logger.Error("GET /users/{userId}/bookings - Failed to get bookings: user_id=%d, error=%v",
			userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/{userId}/bookings - Bookings retrieved successfully: user_id=%d, count=%d",
		userID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
