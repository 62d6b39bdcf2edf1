package category

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

// Repository репозиторий категорий и связи категория-услуга
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория категорий
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает категорию с нулевым счетчиком услуг
func (r *Repository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	category.TotalServices = 0
	if err := category.Check(); err != nil {
		return nil, err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("categories").
		Columns("title").
		Values(category.Title).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&category.ID); err != nil {
		if vErr, ok := storage.ConstraintViolation(err); ok {
			return nil, vErr
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return category, nil
}

// GetByID получает категорию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "title", "total_services").
		From("categories").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var category domain.Category
	err = executor.QueryRowContext(ctx, query, args...).Scan(&category.ID, &category.Title, &category.TotalServices)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan category: %w", ErrScanRow, err)
	}

	return &category, nil
}

// AddServices добавляет услуги в категорию, уже связанные услуги пропускаются
func (r *Repository) AddServices(ctx context.Context, categoryID int64, serviceIDs []int64) error {
	if len(serviceIDs) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("category_services").
		Columns("category_id", "service_id").
		Suffix("ON CONFLICT (category_id, service_id) DO NOTHING")
	for _, serviceID := range serviceIDs {
		insertBuilder = insertBuilder.Values(categoryID, serviceID)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddServices - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddServices - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// RemoveServices удаляет услуги из категории
func (r *Repository) RemoveServices(ctx context.Context, categoryID int64, serviceIDs []int64) error {
	if len(serviceIDs) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("category_services").
		Where(squirrel.Eq{"category_id": categoryID, "service_id": serviceIDs}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RemoveServices - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: RemoveServices - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}

// ClearServices удаляет все услуги из категории
func (r *Repository) ClearServices(ctx context.Context, categoryID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("category_services").
		Where(squirrel.Eq{"category_id": categoryID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ClearServices - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ClearServices - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}

// ServiceIDs возвращает ID услуг категории
func (r *Repository) ServiceIDs(ctx context.Context, categoryID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("service_id").
		From("category_services").
		Where(squirrel.Eq{"category_id": categoryID}).
		OrderBy("service_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ServiceIDs - build select query: %v", ErrBuildQuery, err)
	}

	return storage.QueryIDs(ctx, executor, query, args, ErrExecQuery, ErrScanRow)
}

// CountServices считает живые связи категории с услугами
// Внутри транзакции строка категории сначала блокируется (FOR UPDATE)
func (r *Repository) CountServices(ctx context.Context, categoryID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if err := r.lockCategory(ctx, executor, categoryID); err != nil {
		return 0, err
	}

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("category_services").
		Where(squirrel.Eq{"category_id": categoryID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountServices - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountServices - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

func (r *Repository) lockCategory(ctx context.Context, executor dbmetrics.DBExecutor, categoryID int64) error {
	selectBuilder := psqlbuilder.Select("id").
		From("categories").
		Where(squirrel.Eq{"id": categoryID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: lockCategory - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCategoryNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: lockCategory - scan category: %w", ErrScanRow, err)
	}

	return nil
}

// UpdateTotalServices перезаписывает счетчик услуг категории
func (r *Repository) UpdateTotalServices(ctx context.Context, categoryID int64, total int) error {
	if total < 0 {
		return domain.Violation(domain.ConstraintCategoryTotalNonNeg)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("categories").
		Set("total_services", total).
		Where(squirrel.Eq{"id": categoryID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateTotalServices - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if vErr, ok := storage.ConstraintViolation(err); ok {
			return vErr
		}
		return fmt.Errorf("%w: UpdateTotalServices - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateTotalServices - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

// ListIDs возвращает ID всех категорий
func (r *Repository) ListIDs(ctx context.Context) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("categories").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListIDs - build select query: %v", ErrBuildQuery, err)
	}

	return storage.QueryIDs(ctx, executor, query, args, ErrExecQuery, ErrScanRow)
}

// List возвращает все категории, упорядоченные по ID
func (r *Repository) List(ctx context.Context) ([]*domain.Category, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "title", "total_services").
		From("categories").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.TotalServices); err != nil {
			return nil, fmt.Errorf("%w: List - scan category: %w", ErrScanRow, err)
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %w", ErrScanRow, err)
	}

	return categories, nil
}

// Rename меняет заголовок категории
func (r *Repository) Rename(ctx context.Context, id int64, title string) error {
	if err := (&domain.Category{Title: title}).Check(); err != nil {
		return err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("categories").
		Set("title", title).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Rename - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if vErr, ok := storage.ConstraintViolation(err); ok {
			return vErr
		}
		return fmt.Errorf("%w: Rename - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Rename - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}
