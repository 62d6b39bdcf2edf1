package order

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var fixedNow = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func TestRepository_Create_InsertsOrderAndItems(t *testing.T) {
	repo, mock := newTestRepository(t)

	item := domain.NewOrderItem(9, decimal.NewFromInt(20), 2)
	order := &domain.Order{
		UserID:        5,
		PaymentStatus: domain.PaymentPending,
		FinalPrice:    decimal.NewFromInt(40),
		Items:         []*domain.OrderItem{item},
	}

	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(int64(5), false, false, domain.PaymentPending, order.FinalPrice).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(3, fixedNow, fixedNow))
	mock.ExpectQuery(`INSERT INTO order_items`).
		WithArgs(int64(3), int64(9), item.Price, 2, item.TotalPrice, item.TotalPriceWithDiscount, item.ReservationCode).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(11, fixedNow))

	created, err := repo.Create(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
	assert.Equal(t, int64(3), created.Items[0].OrderID)
	assert.Equal(t, int64(11), created.Items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_RejectsInvalidItemBeforeQuery(t *testing.T) {
	repo, mock := newTestRepository(t)

	item := domain.NewOrderItem(9, decimal.NewFromInt(20), 2)
	item.TotalPrice = decimal.NewFromInt(1)

	_, err := repo.Create(context.Background(), &domain.Order{
		PaymentStatus: domain.PaymentPending,
		Items:         []*domain.OrderItem{item},
	})
	assert.ErrorIs(t, err, domain.ErrStructural)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_DuplicateReservationCode(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(`INSERT INTO orders`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(3, fixedNow, fixedNow))
	mock.ExpectQuery(`INSERT INTO order_items`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: domain.ConstraintOrderItemReservationKey})

	_, err := repo.Create(context.Background(), &domain.Order{
		PaymentStatus: domain.PaymentPending,
		Items:         []*domain.OrderItem{domain.NewOrderItem(1, decimal.NewFromInt(5), 1)},
	})
	assert.ErrorIs(t, err, domain.ErrUniqueness)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetItemByReservationCode_NotFound(t *testing.T) {
	repo, mock := newTestRepository(t)
	code := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM order_items WHERE reservation_code = \$1`).
		WithArgs(code.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetItemByReservationCode(context.Background(), code)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdatePaymentStatusByBooking(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec(`UPDATE orders SET payment_status = \$1, updated_at = NOW\(\) WHERE id IN \(SELECT order_id FROM order_items WHERE booking_id = \$2\)`).
		WithArgs(domain.PaymentApproved, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdatePaymentStatusByBooking(context.Background(), 4, domain.PaymentApproved))

	mock.ExpectExec(`UPDATE orders`).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdatePaymentStatusByBooking(context.Background(), 5, domain.PaymentApproved), ErrOrderNotFound)

	assert.ErrorIs(t, repo.UpdatePaymentStatusByBooking(context.Background(), 5, "refunded"), domain.ErrInvalidEnum)
	assert.NoError(t, mock.ExpectationsWereMet())
}
