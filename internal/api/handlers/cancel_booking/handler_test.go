package cancel_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type stubService struct {
	err error
}

func (s *stubService) CancelByReservationCode(_ context.Context, _ *models.CancelByCodeRequest) (*models.CancelResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.CancelResponse{BookingID: 4, IsCanceled: true}, nil
}

func serve(svc *stubService, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/cancel-by-code", strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	rec := serve(&stubService{}, `{"reservationCode":"0b7e6c1e-4a59-4c1e-9b8e-6f1f6d2f8a11"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.CancelResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.IsCanceled)
	assert.Equal(t, int64(4), resp.BookingID)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&stubService{}, `{`).Code)
	assert.Equal(t, http.StatusBadRequest,
		serve(&stubService{err: domain.NewStructuralError("reservation_code", "bad")}, `{"reservationCode":"x"}`).Code)
	assert.Equal(t, http.StatusNotFound,
		serve(&stubService{err: bookings.ErrReservationNotFound}, `{"reservationCode":"x"}`).Code)
	assert.Equal(t, http.StatusInternalServerError,
		serve(&stubService{err: bookings.ErrInternal}, `{"reservationCode":"x"}`).Code)
}
