package coupons

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/coupons"
	"github.com/m04kA/SMC-AppointmentService/internal/service/coupons/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "купон не найден"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	service CouponService
	logger  Logger
}

func NewHandler(service CouponService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/coupons
// Автор купона - пользователь из X-User-ID
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /coupons - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateCouponRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /coupons - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	coupon, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		h.respondServiceError(w, "POST /coupons", err)
		return
	}

	h.logger.Info("POST /coupons - Coupon created: coupon_id=%d, user_id=%d", coupon.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, coupon)
}

// Get GET /api/v1/coupons/{code}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	coupon, err := h.service.GetByCode(r.Context(), code)
	if err != nil {
		h.respondServiceError(w, "GET /coupons/{code}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, coupon)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, err error) {
	if handlers.RespondValidationError(w, err) {
		h.logger.Warn("%s - Validation failed: %v", route, err)
		return
	}

	switch {
	case errors.Is(err, coupons.ErrCouponNotFound):
		handlers.RespondNotFound(w, msgNotFound)
	case errors.Is(err, coupons.ErrServiceNotFound):
		handlers.RespondNotFound(w, msgServiceNotFound)
	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
