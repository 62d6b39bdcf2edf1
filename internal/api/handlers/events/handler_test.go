package events

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/events"
	"github.com/m04kA/SMC-AppointmentService/internal/service/events/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type stubService struct {
	from, to string
	err      error
}

func (s *stubService) Create(_ context.Context, req *models.CreateEventRequest) (*models.EventResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.EventResponse{ID: 1, BranchID: req.BranchID, OffDate: req.OffDate}, nil
}

func (s *stubService) ListOffDates(_ context.Context, branchID int64, from, to string) (*models.OffDatesResponse, error) {
	s.from, s.to = from, to
	if s.err != nil {
		return nil, s.err
	}
	return &models.OffDatesResponse{BranchID: branchID, OffDates: []string{}}, nil
}

func serve(svc *stubService, method, path, body string) int {
	h := NewHandler(svc, logger.Nop())
	r := mux.NewRouter()
	r.HandleFunc("/events", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/branches/{branchId}/off-dates", h.ListOffDates).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec.Code
}

func TestCreate(t *testing.T) {
	const body = `{"branchId":7,"reason":"Holiday","offDate":"2026-03-08"}`

	assert.Equal(t, http.StatusCreated, serve(&stubService{}, http.MethodPost, "/events", body))
	assert.Equal(t, http.StatusBadRequest, serve(&stubService{err: domain.Violation(domain.ConstraintEventOffDateInFuture)}, http.MethodPost, "/events", body))
	assert.Equal(t, http.StatusNotFound, serve(&stubService{err: events.ErrBranchNotFound}, http.MethodPost, "/events", body))
}

func TestListOffDates(t *testing.T) {
	svc := &stubService{}
	assert.Equal(t, http.StatusOK, serve(svc, http.MethodGet, "/branches/7/off-dates?from=2026-03-01&to=2026-03-31", ""))
	assert.Equal(t, "2026-03-01", svc.from)
	assert.Equal(t, "2026-03-31", svc.to)

	assert.Equal(t, http.StatusBadRequest, serve(&stubService{err: events.ErrInvalidInput}, http.MethodGet, "/branches/7/off-dates", ""))
	assert.Equal(t, http.StatusBadRequest, serve(&stubService{}, http.MethodGet, "/branches/x/off-dates", ""))
}
