package create_booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request модель запроса на создание заказа с одной или несколькими бронями
type Request struct {
	UserID int64         // ID пользователя, от имени которого создается бронь
	Items  []ItemRequest // Бронируемые интервалы
}

// ItemRequest одна бронь заказа
type ItemRequest struct {
	ServiceID     int64     // ID услуги
	BranchID      int64     // ID филиала
	StartTime     time.Time // Начало интервала
	EndTime       time.Time // Конец интервала
	Quantity      int       // Количество (0 = 1)
	PaymentStatus *string   // Статус оплаты (по умолчанию pending)
}

// Response модель ответа с созданным заказом
type Response struct {
	OrderID           int64
	UserID            int64
	IsMultipleBooking bool
	PaymentStatus     string
	FinalPrice        decimal.Decimal
	Items             []ItemResponse
	CreatedAt         time.Time
}

// ItemResponse созданная бронь и позиция заказа
type ItemResponse struct {
	BookingID       int64
	OrderItemID     int64
	ServiceID       int64
	CompanyID       int64
	BranchID        int64
	StartTime       time.Time
	EndTime         time.Time
	PaymentStatus   string
	Price           decimal.Decimal
	Quantity        int
	TotalPrice      decimal.Decimal
	ReservationCode uuid.UUID
}
