package coupons

import "errors"

var (
	// ErrCouponNotFound возвращается, когда купон не найден
	ErrCouponNotFound = errors.New("coupons: coupon not found")

	// ErrServiceNotFound возвращается, когда услуга купона не найдена
	ErrServiceNotFound = errors.New("coupons: service not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("coupons: internal error")
)
