package coupons

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	couponRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/coupon"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AppointmentService/internal/service/coupons/models"
)

// Service сервис купонов
// Расчет скидки в заказе не выполняется, хранятся только параметры купона
type Service struct {
	couponRepo   CouponRepository
	serviceRepo  ServiceRepository
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
}

// NewService создает новый экземпляр сервиса купонов
func NewService(
	couponRepo CouponRepository,
	serviceRepo ServiceRepository,
	timeProvider TimeProvider,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		couponRepo:   couponRepo,
		serviceRepo:  serviceRepo,
		timeProvider: timeProvider,
		metrics:      metrics,
		logger:       logger,
	}
}

// Create создает купон от имени сотрудника definedBy
func (s *Service) Create(ctx context.Context, definedBy int64, req *models.CreateCouponRequest) (*models.CouponResponse, error) {
	s.logger.Info("Create: coupon code=%s by user=%d", req.Code, definedBy)

	coupon := req.ToDomain(definedBy)
	if err := coupon.Check(); err != nil {
		return nil, s.rejected("Create", err)
	}

	if coupon.ServiceID != nil {
		if _, err := s.serviceRepo.GetByID(ctx, *coupon.ServiceID); err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				s.logger.Warn("Create: service id=%d not found", *coupon.ServiceID)
				return nil, ErrServiceNotFound
			}
			return nil, fmt.Errorf("%w: Create - get service: %v", ErrInternal, err)
		}
	}

	created, err := s.couponRepo.Create(ctx, coupon)
	if err != nil {
		return nil, s.rejected("Create", err)
	}

	s.logger.Info("Create: coupon id=%d created", created.ID)
	return models.FromDomainCoupon(created, s.timeProvider.Now()), nil
}

// GetByCode возвращает купон по коду
func (s *Service) GetByCode(ctx context.Context, code string) (*models.CouponResponse, error) {
	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			return nil, ErrCouponNotFound
		}
		s.logger.Error("GetByCode: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByCode - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainCoupon(coupon, s.timeProvider.Now()), nil
}

func (s *Service) rejected(op string, err error) error {
	if vErr, ok := domain.AsValidationError(err); ok {
		s.metrics.IncValidationRejection("Coupon"+op, vErr.KindName())
		s.logger.Warn("%s: validation failed: %v", op, vErr)
		return vErr
	}
	s.logger.Error("%s: %v", op, err)
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}
