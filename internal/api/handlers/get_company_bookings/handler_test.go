package get_company_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type stubService struct {
	req *models.GetCompanyBookingsRequest
	err error
}

func (s *stubService) GetCompanyBookings(_ context.Context, req *models.GetCompanyBookingsRequest) (*models.BookingListResponse, error) {
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{}}, nil
}

func serve(svc *stubService, path string) int {
	r := mux.NewRouter()
	r.HandleFunc("/companies/{companyId}/bookings", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec.Code
}

func TestHandle_ParsesFilters(t *testing.T) {
	svc := &stubService{}
	code := serve(svc, "/companies/2/bookings?branchId=3&paymentStatus=approved&date=2026-03-10&includeCanceled=true")
	require.Equal(t, http.StatusOK, code)

	assert.Equal(t, int64(2), svc.req.CompanyID)
	require.NotNil(t, svc.req.BranchID)
	assert.Equal(t, int64(3), *svc.req.BranchID)
	require.NotNil(t, svc.req.PaymentStatus)
	assert.Equal(t, "approved", *svc.req.PaymentStatus)
	require.NotNil(t, svc.req.Date)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), *svc.req.Date)
	assert.True(t, svc.req.IncludeCanceled)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&stubService{}, "/companies/0/bookings"))
	assert.Equal(t, http.StatusBadRequest, serve(&stubService{}, "/companies/2/bookings?date=10.03.2026"))
	assert.Equal(t, http.StatusBadRequest, serve(&stubService{}, "/companies/2/bookings?branchId=x"))
	assert.Equal(t, http.StatusBadRequest,
		serve(&stubService{err: domain.NewInvalidEnumError("payment_status", domain.PaymentStatusValues())}, "/companies/2/bookings?paymentStatus=refunded"))
}
