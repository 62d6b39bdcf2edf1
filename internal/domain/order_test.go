package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewOrderItem(t *testing.T) {
	item := NewOrderItem(7, decimal.RequireFromString("12.50"), 3)

	assert.True(t, item.TotalPrice.Equal(decimal.RequireFromString("37.50")))
	assert.NotEqual(t, uuid.Nil, item.ReservationCode)
	assert.NoError(t, item.Check())
}

func TestOrderItem_Check(t *testing.T) {
	zeroQty := NewOrderItem(1, decimal.NewFromInt(10), 1)
	zeroQty.Quantity = 0
	assert.ErrorIs(t, zeroQty.Check(), ErrNonNegative)

	mismatch := NewOrderItem(1, decimal.NewFromInt(10), 2)
	mismatch.TotalPrice = decimal.NewFromInt(15)
	assert.ErrorIs(t, mismatch.Check(), ErrStructural)
}

func TestOrder_CalculateFinalPrice(t *testing.T) {
	discounted := decimal.NewFromInt(8)
	first := NewOrderItem(1, decimal.NewFromInt(10), 1)
	first.TotalPriceWithDiscount = &discounted

	order := &Order{
		PaymentStatus: PaymentPending,
		Items:         []*OrderItem{first, NewOrderItem(2, decimal.NewFromInt(5), 2)},
	}

	assert.True(t, order.CalculateFinalPrice().Equal(decimal.NewFromInt(18)))

	order.FinalPrice = decimal.NewFromInt(-1)
	assert.ErrorIs(t, order.Check(), ErrNonNegative)
}
