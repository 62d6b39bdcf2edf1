package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Items []BookingItemRequest `json:"items"`
}

// BookingItemRequest одна бронь в запросе
type BookingItemRequest struct {
	ServiceID     int64     `json:"serviceId"`
	BranchID      int64     `json:"branchId"`
	StartTime     time.Time `json:"startTime"` // RFC3339
	EndTime       time.Time `json:"endTime"`
	Quantity      int       `json:"quantity,omitempty"`
	PaymentStatus *string   `json:"paymentStatus,omitempty"`
}

// OrderResponse HTTP response model
type OrderResponse struct {
	OrderID           int64                 `json:"orderId"`
	UserID            int64                 `json:"userId"`
	IsMultipleBooking bool                  `json:"isMultipleBooking"`
	PaymentStatus     string                `json:"paymentStatus"`
	FinalPrice        decimal.Decimal       `json:"finalPrice"`
	Items             []BookingItemResponse `json:"items"`
	CreatedAt         string                `json:"createdAt"`
}

// BookingItemResponse созданная бронь
type BookingItemResponse struct {
	BookingID       int64           `json:"bookingId"`
	OrderItemID     int64           `json:"orderItemId"`
	ServiceID       int64           `json:"serviceId"`
	CompanyID       int64           `json:"companyId"`
	BranchID        int64           `json:"branchId"`
	StartTime       string          `json:"startTime"`
	EndTime         string          `json:"endTime"`
	PaymentStatus   string          `json:"paymentStatus"`
	Price           decimal.Decimal `json:"price"`
	Quantity        int             `json:"quantity"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	ReservationCode string          `json:"reservationCode"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) *createBooking.Request {
	items := make([]createBooking.ItemRequest, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, createBooking.ItemRequest{
			ServiceID:     item.ServiceID,
			BranchID:      item.BranchID,
			StartTime:     item.StartTime,
			EndTime:       item.EndTime,
			Quantity:      item.Quantity,
			PaymentStatus: item.PaymentStatus,
		})
	}

	return &createBooking.Request{
		UserID: userID,
		Items:  items,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *OrderResponse {
	items := make([]BookingItemResponse, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, BookingItemResponse{
			BookingID:       item.BookingID,
			OrderItemID:     item.OrderItemID,
			ServiceID:       item.ServiceID,
			CompanyID:       item.CompanyID,
			BranchID:        item.BranchID,
			StartTime:       item.StartTime.Format(time.RFC3339),
			EndTime:         item.EndTime.Format(time.RFC3339),
			PaymentStatus:   item.PaymentStatus,
			Price:           item.Price,
			Quantity:        item.Quantity,
			TotalPrice:      item.TotalPrice,
			ReservationCode: item.ReservationCode.String(),
		})
	}

	return &OrderResponse{
		OrderID:           resp.OrderID,
		UserID:            resp.UserID,
		IsMultipleBooking: resp.IsMultipleBooking,
		PaymentStatus:     resp.PaymentStatus,
		FinalPrice:        resp.FinalPrice,
		Items:             items,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
	}
}
