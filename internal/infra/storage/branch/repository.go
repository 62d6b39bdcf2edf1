package branch

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

var branchColumns = []string{
	"id",
	"company_id",
	"city",
	"location",
	"working_hours",
	"excluded_times",
	"available_on_weekends",
	"created_at",
	"updated_at",
}

// Repository репозиторий филиалов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория филиалов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает филиал
func (r *Repository) Create(ctx context.Context, branch *domain.Branch) (*domain.Branch, error) {
	if err := branch.Check(); err != nil {
		return nil, err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("branches").
		Columns("company_id", "city", "location", "working_hours", "excluded_times", "available_on_weekends").
		Values(
			branch.CompanyID,
			branch.City,
			branch.Location,
			branch.WorkingHours,
			branch.ExcludedTimes,
			branch.AvailableOnWeekends,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&branch.ID, &branch.CreatedAt, &branch.UpdatedAt); err != nil {
		if vErr, ok := storage.ConstraintViolation(err); ok {
			return nil, vErr
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return branch, nil
}

// Update обновляет филиал целиком
func (r *Repository) Update(ctx context.Context, branch *domain.Branch) error {
	if err := branch.Check(); err != nil {
		return err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("branches").
		Set("company_id", branch.CompanyID).
		Set("city", branch.City).
		Set("location", branch.Location).
		Set("working_hours", branch.WorkingHours).
		Set("excluded_times", branch.ExcludedTimes).
		Set("available_on_weekends", branch.AvailableOnWeekends).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": branch.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Update", query, args)
}

// Delete удаляет филиал
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("branches").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Delete", query, args)
}

// GetByID получает филиал по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Branch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(branchColumns...).
		From("branches").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	branch, err := scanBranch(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBranchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan branch: %w", ErrScanRow, err)
	}

	return branch, nil
}

// FindByCityLocation ищет филиал с той же парой (city, location), кроме excludeID
// nil без ошибки - такого филиала нет
func (r *Repository) FindByCityLocation(ctx context.Context, city, location string, excludeID int64) (*domain.Branch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(branchColumns...).
		From("branches").
		Where(squirrel.Eq{"city": city, "location": location}).
		Limit(1)

	if excludeID != 0 {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByCityLocation - build select query: %v", ErrBuildQuery, err)
	}

	branch, err := scanBranch(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindByCityLocation - scan branch: %w", ErrScanRow, err)
	}

	return branch, nil
}

// List возвращает филиалы, упорядоченные по ID
// companyID != nil оставляет только филиалы этой компании
func (r *Repository) List(ctx context.Context, companyID *int64) ([]*domain.Branch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(branchColumns...).
		From("branches").
		OrderBy("id ASC")

	if companyID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"company_id": *companyID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	branches := make([]*domain.Branch, 0)
	for rows.Next() {
		branch, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan branch: %w", ErrScanRow, err)
		}
		branches = append(branches, branch)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %w", ErrScanRow, err)
	}

	return branches, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, executor dbmetrics.DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if vErr, ok := storage.ConstraintViolation(err); ok {
			return vErr
		}
		return fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBranchNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBranch(row rowScanner) (*domain.Branch, error) {
	var branch domain.Branch
	err := row.Scan(
		&branch.ID,
		&branch.CompanyID,
		&branch.City,
		&branch.Location,
		&branch.WorkingHours,
		&branch.ExcludedTimes,
		&branch.AvailableOnWeekends,
		&branch.CreatedAt,
		&branch.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &branch, nil
}
