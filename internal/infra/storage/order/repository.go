package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий заказов и позиций заказа
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает заказ вместе с позициями
// Вызывать внутри транзакции: заказ и позиции должны появиться атомарно с бронированиями
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := order.Check(); err != nil {
		return nil, err
	}
	for _, item := range order.Items {
		if err := item.Check(); err != nil {
			return nil, err
		}
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("orders").
		Columns("user_id", "is_multiple_booking", "is_coupon_used", "payment_status", "final_price").
		Values(order.UserID, order.IsMultipleBooking, order.IsCouponUsed, order.PaymentStatus, order.FinalPrice).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		if vErr, ok := storage.ConstraintViolation(err); ok {
			return nil, vErr
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	for _, item := range order.Items {
		item.OrderID = order.ID
		if err := r.createItem(ctx, executor, item); err != nil {
			return nil, err
		}
	}

	return order, nil
}

func (r *Repository) createItem(ctx context.Context, executor dbmetrics.DBExecutor, item *domain.OrderItem) error {
	query, args, err := psqlbuilder.Insert("order_items").
		Columns(
			"order_id",
			"booking_id",
			"price",
			"quantity",
			"total_price",
			"total_price_with_discount",
			"reservation_code",
		).
		Values(
			item.OrderID,
			item.BookingID,
			item.Price,
			item.Quantity,
			item.TotalPrice,
			item.TotalPriceWithDiscount,
			item.ReservationCode,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: createItem - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&item.ID, &item.CreatedAt); err != nil {
		if vErr, ok := storage.ConstraintViolation(err); ok {
			return vErr
		}
		return fmt.Errorf("%w: createItem - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetItemByReservationCode находит позицию заказа по коду бронирования
func (r *Repository) GetItemByReservationCode(ctx context.Context, code uuid.UUID) (*domain.OrderItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"order_id",
		"booking_id",
		"price",
		"quantity",
		"total_price",
		"total_price_with_discount",
		"reservation_code",
		"created_at",
	).
		From("order_items").
		Where(squirrel.Eq{"reservation_code": code.String()}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetItemByReservationCode - build select query: %v", ErrBuildQuery, err)
	}

	var item domain.OrderItem
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&item.ID,
		&item.OrderID,
		&item.BookingID,
		&item.Price,
		&item.Quantity,
		&item.TotalPrice,
		&item.TotalPriceWithDiscount,
		&item.ReservationCode,
		&item.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetItemByReservationCode - scan item: %w", ErrScanRow, err)
	}

	return &item, nil
}

// UpdatePaymentStatusByBooking обновляет статус оплаты заказа, в который входит бронирование
func (r *Repository) UpdatePaymentStatusByBooking(ctx context.Context, bookingID int64, status domain.PaymentStatus) error {
	if !status.IsValid() {
		return domain.Violation(domain.ConstraintOrderValidPaymentStatus)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("orders").
		Set("payment_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Expr("id IN (SELECT order_id FROM order_items WHERE booking_id = ?)", bookingID)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentStatusByBooking - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if vErr, ok := storage.ConstraintViolation(err); ok {
			return vErr
		}
		return fmt.Errorf("%w: UpdatePaymentStatusByBooking - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentStatusByBooking - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}
