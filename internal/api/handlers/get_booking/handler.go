package get_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
)

const route = "GET /bookings/{bookingId}"

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgBookingNotFound  = "бронирование не найдено"
	msgUnauthorized     = "требуется заголовок X-User-ID"
	msgForeignBooking   = "бронирование принадлежит другому пользователю"
)

// Handler отдает одно бронирование его владельцу
type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - no user in context", route)
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("%s - bad path parameter: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	resp, err := h.service.GetByID(r.Context(), bookingID, userID)
	if err != nil {
		h.respondError(w, err, bookingID, userID)
		return
	}

	h.logger.Info("%s - booking_id=%d returned to user_id=%d", route, bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) respondError(w http.ResponseWriter, err error, bookingID, userID int64) {
	if errors.Is(err, bookings.ErrBookingNotFound) {
		h.logger.Warn("%s - booking_id=%d not found", route, bookingID)
		handlers.RespondNotFound(w, msgBookingNotFound)
		return
	}
	if errors.Is(err, bookings.ErrAccessDenied) {
		h.logger.Warn("%s - user_id=%d is not the owner of booking_id=%d", route, userID, bookingID)
		handlers.RespondForbidden(w, msgForeignBooking)
		return
	}

	h.logger.Error("%s - booking_id=%d: %v", route, bookingID, err)
	handlers.RespondInternalError(w)
}
