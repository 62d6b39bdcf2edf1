package domain

import (
	"strings"
	"time"
)

// Coupon discount coupon defined by a staff member
type Coupon struct {
	ID                 int64
	Code               string
	StartDate          time.Time
	ExpireDate         time.Time
	DiscountPercentage int
	UsableCount        int
	DefinedBy          int64
	ServiceID          *int64
	CreatedAt          time.Time
}

// Check проверяет ограничения купона
func (c *Coupon) Check() error {
	if strings.TrimSpace(c.Code) == "" {
		return NewStructuralError("code", "code is required")
	}
	if !c.StartDate.Before(c.ExpireDate) {
		return Violation(ConstraintCouponStartBeforeExpire)
	}
	if c.DiscountPercentage < MinDiscountPercentage || c.DiscountPercentage > MaxDiscountPercentage {
		return Violation(ConstraintCouponDiscountInRange)
	}
	if c.UsableCount < 0 {
		return Violation(ConstraintCouponUsableCountNonNeg)
	}
	return nil
}

// IsActiveAt reports whether the coupon can be used at t
func (c *Coupon) IsActiveAt(t time.Time) bool {
	return !t.Before(c.StartDate) && t.Before(c.ExpireDate) && c.UsableCount > 0
}
