package stafftimes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий рабочих часов сотрудников
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает или заменяет расписание сотрудника (одно расписание на пользователя)
func (r *Repository) Upsert(ctx context.Context, staffTimes *domain.StaffTimes) (*domain.StaffTimes, error) {
	if err := staffTimes.Check(); err != nil {
		return nil, err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("staff_times").
		Columns("user_id", "company_id", "working_hours").
		Values(staffTimes.UserID, staffTimes.CompanyID, staffTimes.WorkingHours).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET company_id = EXCLUDED.company_id, " +
			"working_hours = EXCLUDED.working_hours, updated_at = NOW() " +
			"RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&staffTimes.ID, &staffTimes.CreatedAt, &staffTimes.UpdatedAt)
	if err != nil {
		if vErr, ok := storage.ConstraintViolation(err); ok {
			return nil, vErr
		}
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	return staffTimes, nil
}

// GetByUserID получает расписание сотрудника
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.StaffTimes, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "user_id", "company_id", "working_hours", "created_at", "updated_at").
		From("staff_times").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	var st domain.StaffTimes
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&st.ID,
		&st.UserID,
		&st.CompanyID,
		&st.WorkingHours,
		&st.CreatedAt,
		&st.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaffTimesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - scan staff times: %w", ErrScanRow, err)
	}

	return &st, nil
}

// DeleteByUserID удаляет расписание сотрудника
func (r *Repository) DeleteByUserID(ctx context.Context, userID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("staff_times").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByUserID - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteByUserID - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteByUserID - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrStaffTimesNotFound
	}

	return nil
}
