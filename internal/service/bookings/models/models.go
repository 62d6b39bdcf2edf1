package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID          int64   `json:"userId"`
	PaymentStatus   *string `json:"paymentStatus,omitempty"`
	IncludeCanceled bool    `json:"includeCanceled,omitempty"`
}

// GetCompanyBookingsRequest запрос на получение бронирований компании
// Date - день (полночь), за который нужны брони
type GetCompanyBookingsRequest struct {
	CompanyID       int64
	BranchID        *int64
	PaymentStatus   *string
	Date            *time.Time
	IncludeCanceled bool
}

// RescheduleRequest запрос на перенос бронирования
type RescheduleRequest struct {
	UserID    int64     `json:"userId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// UpdatePaymentStatusRequest запрос на изменение статуса оплаты
type UpdatePaymentStatusRequest struct {
	UserID        int64  `json:"userId"`
	PaymentStatus string `json:"paymentStatus"`
}

// CancelByCodeRequest запрос на отмену бронирования по коду
type CancelByCodeRequest struct {
	ReservationCode string `json:"reservationCode"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64     `json:"id"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	BookedBy      int64     `json:"bookedBy"`
	ServiceID     int64     `json:"serviceId"`
	CompanyID     int64     `json:"companyId"`
	BranchID      int64     `json:"branchId"`
	IsCanceled    bool      `json:"isCanceled"`
	PaymentStatus string    `json:"paymentStatus"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// CancelResponse ответ на отмену по коду
type CancelResponse struct {
	BookingID  int64 `json:"bookingId"`
	IsCanceled bool  `json:"isCanceled"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:            b.ID,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		BookedBy:      b.BookedBy,
		ServiceID:     b.ServiceID,
		CompanyID:     b.CompanyID,
		BranchID:      b.BranchID,
		IsCanceled:    b.IsCanceled,
		PaymentStatus: string(b.PaymentStatus),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainPaymentStatus конвертирует строку в domain.PaymentStatus
// Недопустимое значение дает ошибку вида ErrInvalidEnum со списком допустимых значений
func ToDomainPaymentStatus(status string) (domain.PaymentStatus, error) {
	s := domain.PaymentStatus(status)
	if !s.IsValid() {
		return "", domain.NewInvalidEnumError("payment_status", domain.PaymentStatusValues())
	}
	return s, nil
}

// ParseReservationCode разбирает код бронирования
func ParseReservationCode(code string) (uuid.UUID, error) {
	if code == "" {
		return uuid.Nil, domain.NewStructuralError("reservation_code", "reservation code is required")
	}
	parsed, err := uuid.Parse(code)
	if err != nil {
		return uuid.Nil, domain.NewStructuralError("reservation_code", "reservation code must be a valid UUID")
	}
	return parsed, nil
}
