package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование с таким кодом не найдено"
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

// Handle DELETE /api/v1/bookings/cancel-by-code
// Повторная отмена не является ошибкой
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CancelByCodeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("DELETE /bookings/cancel-by-code - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CancelByReservationCode(r.Context(), &req)
	if err != nil {
		if handlers.RespondValidationError(w, err) {
			h.logger.Warn("DELETE /bookings/cancel-by-code - Invalid code: %v", err)
			return
		}

		switch {
		case errors.Is(err, bookings.ErrReservationNotFound), errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /bookings/cancel-by-code - Reservation not found")
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /bookings/cancel-by-code - Failed to cancel booking: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/cancel-by-code - Booking cancelled successfully: booking_id=%d", result.BookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
