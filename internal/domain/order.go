package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order aggregates order items created together with their bookings
type Order struct {
	ID                int64
	UserID            int64
	IsMultipleBooking bool
	IsCouponUsed      bool
	PaymentStatus     PaymentStatus
	FinalPrice        decimal.Decimal
	Items             []*OrderItem
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// OrderItem is a single booked service inside an order
type OrderItem struct {
	ID                     int64
	OrderID                int64
	BookingID              int64
	Price                  decimal.Decimal
	Quantity               int
	TotalPrice             decimal.Decimal
	TotalPriceWithDiscount *decimal.Decimal
	ReservationCode        uuid.UUID
	CreatedAt              time.Time
}

// NewOrderItem creates an item with a fresh reservation code and computed total
func NewOrderItem(bookingID int64, price decimal.Decimal, quantity int) *OrderItem {
	return &OrderItem{
		BookingID:       bookingID,
		Price:           price,
		Quantity:        quantity,
		TotalPrice:      price.Mul(decimal.NewFromInt(int64(quantity))),
		ReservationCode: uuid.New(),
	}
}

// Check проверяет ограничения позиции заказа
func (i *OrderItem) Check() error {
	if i.Quantity < MinOrderItemQuantity {
		return Violation(ConstraintOrderItemQuantityPositive)
	}
	if i.TotalPrice.IsNegative() {
		return Violation(ConstraintOrderItemTotalNonNeg)
	}
	if !i.TotalPrice.Equal(i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))) {
		return Violation(ConstraintOrderItemTotalMatches)
	}
	return nil
}

// CalculateFinalPrice sums item totals, discounted totals take precedence
func (o *Order) CalculateFinalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		if item.TotalPriceWithDiscount != nil {
			total = total.Add(*item.TotalPriceWithDiscount)
			continue
		}
		total = total.Add(item.TotalPrice)
	}
	return total
}

// Check проверяет ограничения заказа
func (o *Order) Check() error {
	if !o.PaymentStatus.IsValid() {
		return Violation(ConstraintOrderValidPaymentStatus)
	}
	if o.FinalPrice.IsNegative() {
		return Violation(ConstraintOrderFinalPriceNonNeg)
	}
	return nil
}
