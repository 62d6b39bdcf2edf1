package models

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// CreateCouponRequest запрос на создание купона
type CreateCouponRequest struct {
	Code               string    `json:"code"`
	StartDate          time.Time `json:"startDate"`
	ExpireDate         time.Time `json:"expireDate"`
	DiscountPercentage int       `json:"discountPercentage"`
	UsableCount        int       `json:"usableCount"`
	ServiceID          *int64    `json:"serviceId,omitempty"`
}

// ToDomain конвертирует запрос в domain модель
func (r *CreateCouponRequest) ToDomain(definedBy int64) *domain.Coupon {
	return &domain.Coupon{
		Code:               strings.TrimSpace(r.Code),
		StartDate:          r.StartDate,
		ExpireDate:         r.ExpireDate,
		DiscountPercentage: r.DiscountPercentage,
		UsableCount:        r.UsableCount,
		DefinedBy:          definedBy,
		ServiceID:          r.ServiceID,
	}
}

// CouponResponse ответ с данными купона
type CouponResponse struct {
	ID                 int64     `json:"id"`
	Code               string    `json:"code"`
	StartDate          time.Time `json:"startDate"`
	ExpireDate         time.Time `json:"expireDate"`
	DiscountPercentage int       `json:"discountPercentage"`
	UsableCount        int       `json:"usableCount"`
	DefinedBy          int64     `json:"definedBy"`
	ServiceID          *int64    `json:"serviceId,omitempty"`
	IsActive           bool      `json:"isActive"`
}

// FromDomainCoupon конвертирует domain модель в DTO
// now нужен для вычисления признака активности
func FromDomainCoupon(c *domain.Coupon, now time.Time) *CouponResponse {
	return &CouponResponse{
		ID:                 c.ID,
		Code:               c.Code,
		StartDate:          c.StartDate,
		ExpireDate:         c.ExpireDate,
		DiscountPercentage: c.DiscountPercentage,
		UsableCount:        c.UsableCount,
		DefinedBy:          c.DefinedBy,
		ServiceID:          c.ServiceID,
		IsActive:           c.IsActiveAt(now),
	}
}
