package coupons

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	couponRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/coupon"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AppointmentService/internal/service/coupons/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeCoupons map[string]*domain.Coupon

func (f fakeCoupons) Create(_ context.Context, c *domain.Coupon) (*domain.Coupon, error) {
	if _, ok := f[c.Code]; ok {
		return nil, domain.Violation(domain.ConstraintCouponCodeKey)
	}
	c.ID = int64(len(f) + 1)
	f[c.Code] = c
	return c, nil
}

func (f fakeCoupons) GetByCode(_ context.Context, code string) (*domain.Coupon, error) {
	c, ok := f[code]
	if !ok {
		return nil, couponRepo.ErrCouponNotFound
	}
	return c, nil
}

type fakeServices map[int64]*domain.Service

func (f fakeServices) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := f[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return s, nil
}

type nopMetrics struct{}

func (nopMetrics) IncValidationRejection(string, string) {}

var now = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func newTestService() (*Service, fakeCoupons) {
	coupons := fakeCoupons{}
	services := fakeServices{5: {ID: 5, Title: "Cut"}}
	return NewService(coupons, services, fixedTime{now: now}, nopMetrics{}, logger.Nop()), coupons
}

func validRequest() *models.CreateCouponRequest {
	return &models.CreateCouponRequest{
		Code:               "SPRING",
		StartDate:          now.Add(-24 * time.Hour),
		ExpireDate:         now.Add(30 * 24 * time.Hour),
		DiscountPercentage: 15,
		UsableCount:        10,
		ServiceID:          ptr.Ptr(int64(5)),
	}
}

func TestCreate_Success(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Create(context.Background(), 42, validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.DefinedBy)
	assert.True(t, resp.IsActive)
}

func TestCreate_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *models.CreateCouponRequest)
		wantErr error
	}{
		{"start after expire", func(r *models.CreateCouponRequest) { r.StartDate = r.ExpireDate.Add(time.Hour) }, domain.ErrOrdering},
		{"discount above 100", func(r *models.CreateCouponRequest) { r.DiscountPercentage = 101 }, domain.ErrNonNegative},
		{"negative discount", func(r *models.CreateCouponRequest) { r.DiscountPercentage = -1 }, domain.ErrNonNegative},
		{"negative usable count", func(r *models.CreateCouponRequest) { r.UsableCount = -1 }, domain.ErrNonNegative},
		{"empty code", func(r *models.CreateCouponRequest) { r.Code = "  " }, domain.ErrStructural},
		{"unknown service", func(r *models.CreateCouponRequest) { r.ServiceID = ptr.Ptr(int64(99)) }, ErrServiceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, coupons := newTestService()
			req := validRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), 42, req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, coupons)
		})
	}
}

func TestCreate_DuplicateCode(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, 42, validRequest())
	require.NoError(t, err)

	_, err = svc.Create(ctx, 42, validRequest())
	assert.ErrorIs(t, err, domain.ErrUniqueness)
}

func TestGetByCode(t *testing.T) {
	svc, coupons := newTestService()
	ctx := context.Background()

	req := validRequest()
	req.UsableCount = 0
	_, err := svc.Create(ctx, 42, req)
	require.NoError(t, err)

	resp, err := svc.GetByCode(ctx, "SPRING")
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	assert.Len(t, coupons, 1)

	_, err = svc.GetByCode(ctx, "WINTER")
	assert.ErrorIs(t, err, ErrCouponNotFound)
}
