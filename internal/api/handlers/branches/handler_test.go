package branches

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/branches"
	"github.com/m04kA/SMC-AppointmentService/internal/service/branches/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type stubService struct {
	err error
}

func (s *stubService) Create(_ context.Context, req *models.BranchRequest) (*models.BranchResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.BranchResponse{ID: 1, CompanyID: req.CompanyID, City: req.City}, nil
}

func (s *stubService) Update(_ context.Context, id int64, req *models.BranchRequest) (*models.BranchResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.BranchResponse{ID: id, CompanyID: req.CompanyID}, nil
}

func (s *stubService) Delete(context.Context, int64) error { return s.err }

func (s *stubService) GetByID(_ context.Context, id int64) (*models.BranchResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.BranchResponse{ID: id}, nil
}

func (s *stubService) List(_ context.Context, companyID *int64) (*models.BranchListResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	resp := &models.BranchListResponse{Branches: []models.BranchResponse{{ID: 1, CompanyID: 1}, {ID: 2, CompanyID: 2}}}
	if companyID != nil {
		filtered := resp.Branches[:0]
		for _, b := range resp.Branches {
			if b.CompanyID == *companyID {
				filtered = append(filtered, b)
			}
		}
		resp.Branches = filtered
	}
	return resp, nil
}

func router(svc *stubService) *mux.Router {
	h := NewHandler(svc, logger.Nop())
	r := mux.NewRouter()
	r.HandleFunc("/branches", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/branches", h.List).Methods(http.MethodGet)
	r.HandleFunc("/branches/{branchId}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/branches/{branchId}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/branches/{branchId}", h.Delete).Methods(http.MethodDelete)
	return r
}

const body = `{"companyId":2,"city":"Kazan","location":"Baumana 1","workingHours":{"weekdays":{"start":"09:00","end":"18:00"}},"excludedTimes":{}}`

func do(r http.Handler, method, path, payload string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(payload)))
	return rec
}

func TestCreate(t *testing.T) {
	rec := do(router(&stubService{}), http.MethodPost, "/branches", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.BranchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.CompanyID)
}

func TestCreate_EmptyExcludedTimes(t *testing.T) {
	svc := &stubService{err: domain.NewStructuralError("excluded_times", `missing required key "weekdays"`)}

	rec := do(router(svc), http.MethodPost, "/branches", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "excluded_times", resp.Field)
	assert.Equal(t, "structural", resp.Kind)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		err    error
		status int
	}{
		{"duplicate location", http.MethodPost, "/branches", domain.NewUniquenessError("location", "dup"), http.StatusConflict},
		{"unknown company", http.MethodPost, "/branches", branches.ErrCompanyNotFound, http.StatusNotFound},
		{"bad id", http.MethodGet, "/branches/abc", nil, http.StatusBadRequest},
		{"not found", http.MethodGet, "/branches/5", branches.ErrBranchNotFound, http.StatusNotFound},
		{"update internal", http.MethodPut, "/branches/5", branches.ErrInternal, http.StatusInternalServerError},
		{"delete ok", http.MethodDelete, "/branches/5", nil, http.StatusNoContent},
		{"delete missing", http.MethodDelete, "/branches/5", branches.ErrBranchNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router(&stubService{err: tt.err}), tt.method, tt.path, body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestList(t *testing.T) {
	rec := do(router(&stubService{}), http.MethodGet, "/branches?companyId=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.BranchListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Branches, 1)
	assert.Equal(t, int64(2), resp.Branches[0].ID)

	assert.Equal(t, http.StatusOK, do(router(&stubService{}), http.MethodGet, "/branches", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(router(&stubService{}), http.MethodGet, "/branches?companyId=abc", "").Code)
	assert.Equal(t, http.StatusNotFound,
		do(router(&stubService{err: branches.ErrCompanyNotFound}), http.MethodGet, "/branches?companyId=9", "").Code)
}
