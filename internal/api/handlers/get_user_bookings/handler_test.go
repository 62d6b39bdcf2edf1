package get_user_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type stubService struct {
	req *models.GetUserBookingsRequest
	err error
}

func (s *stubService) GetUserBookings(_ context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{}}, nil
}

func serve(svc *stubService, path string, callerID int64) int {
	r := mux.NewRouter()
	r.HandleFunc("/users/{userId}/bookings", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), callerID))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec.Code
}

func TestHandle_PassesFilters(t *testing.T) {
	svc := &stubService{}

	require.Equal(t, http.StatusOK, serve(svc, "/users/7/bookings?paymentStatus=pending&includeCanceled=true", 7))
	assert.Equal(t, int64(7), svc.req.UserID)
	require.NotNil(t, svc.req.PaymentStatus)
	assert.Equal(t, "pending", *svc.req.PaymentStatus)
	assert.True(t, svc.req.IncludeCanceled)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, serve(&stubService{}, "/users/7/bookings", 8))
	assert.Equal(t, http.StatusBadRequest, serve(&stubService{}, "/users/x/bookings", 7))
	assert.Equal(t, http.StatusBadRequest, serve(&stubService{}, "/users/7/bookings?includeCanceled=maybe", 7))
	assert.Equal(t, http.StatusBadRequest,
		serve(&stubService{err: domain.NewInvalidEnumError("payment_status", domain.PaymentStatusValues())}, "/users/7/bookings?paymentStatus=refunded", 7))
}
