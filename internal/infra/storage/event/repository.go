package event

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий выходных дней филиалов
type Repository struct {
	db  dbmetrics.DBExecutor
	now func() time.Time
}

// NewRepository создает новый экземпляр репозитория событий
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db, now: time.Now}
}

// Create создает событие (выходной день филиала)
func (r *Repository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if err := event.Check(r.now()); err != nil {
		return nil, err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("events").
		Columns("branch_id", "company_id", "reason", "off_date").
		Values(event.BranchID, event.CompanyID, event.Reason, event.OffDate.Format(domain.DateFormat)).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&event.ID, &event.CreatedAt); err != nil {
		if vErr, ok := storage.ConstraintViolation(err); ok {
			return nil, vErr
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return event, nil
}

// ListOffDates возвращает выходные дни филиала в диапазоне [from, to]
func (r *Repository) ListOffDates(ctx context.Context, branchID int64, from, to time.Time) ([]time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("off_date").
		From("events").
		Where(squirrel.Eq{"branch_id": branchID}).
		Where(squirrel.GtOrEq{"off_date": from.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"off_date": to.Format(domain.DateFormat)}).
		OrderBy("off_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOffDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOffDates - execute select: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("%w: ListOffDates - scan off date: %w", ErrScanRow, err)
		}
		dates = append(dates, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOffDates - rows iteration: %w", ErrScanRow, err)
	}

	return dates, nil
}
