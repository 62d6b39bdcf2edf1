package company

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

// Repository репозиторий компаний и их счетчиков
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория компаний
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает компанию с нулевыми счетчиками
func (r *Repository) Create(ctx context.Context, company *domain.Company) (*domain.Company, error) {
	company.BranchCount, company.StaffCount, company.TotalBooks = 0, 0, 0
	if err := company.Check(); err != nil {
		return nil, err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("companies").
		Columns("company_name").
		Values(company.Name).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt); err != nil {
		if vErr, ok := storage.ConstraintViolation(err); ok {
			return nil, vErr
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return company, nil
}

// GetByID получает компанию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"company_name",
		"branch_count",
		"staff_count",
		"total_books",
		"created_at",
		"updated_at",
	).
		From("companies").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var company domain.Company
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&company.ID,
		&company.Name,
		&company.BranchCount,
		&company.StaffCount,
		&company.TotalBooks,
		&company.CreatedAt,
		&company.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan company: %w", ErrScanRow, err)
	}

	return &company, nil
}

// CountRelations пересчитывает связанные записи компании по живым таблицам:
// филиалы, различные сотрудники с расписанием, все бронирования (включая отмененные)
// Внутри транзакции строка компании сначала блокируется (FOR UPDATE), подсчет идет после блокировки
func (r *Repository) CountRelations(ctx context.Context, companyID int64) (*domain.CompanyStatistics, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if err := r.lockCompany(ctx, executor, companyID); err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("(SELECT COUNT(*) FROM branches WHERE company_id = ?)", companyID)).
		Column(squirrel.Expr("(SELECT COUNT(DISTINCT user_id) FROM staff_times WHERE company_id = ?)", companyID)).
		Column(squirrel.Expr("(SELECT COUNT(*) FROM bookings WHERE company_id = ?)", companyID)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountRelations - build select query: %v", ErrBuildQuery, err)
	}

	stats := &domain.CompanyStatistics{CompanyID: companyID}
	err = executor.QueryRowContext(ctx, query, args...).Scan(&stats.BranchCount, &stats.StaffCount, &stats.TotalBooks)
	if err != nil {
		return nil, fmt.Errorf("%w: CountRelations - scan counts: %w", ErrScanRow, err)
	}

	return stats, nil
}

// lockCompany блокирует строку компании до конца транзакции
// Параллельный пересчет той же компании ждет коммита и затем видит его изменения
func (r *Repository) lockCompany(ctx context.Context, executor dbmetrics.DBExecutor, companyID int64) error {
	selectBuilder := psqlbuilder.Select("id").
		From("companies").
		Where(squirrel.Eq{"id": companyID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: lockCompany - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCompanyNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: lockCompany - scan company: %w", ErrScanRow, err)
	}

	return nil
}

// UpdateStatistics перезаписывает счетчики компании
func (r *Repository) UpdateStatistics(ctx context.Context, stats *domain.CompanyStatistics) error {
	if err := stats.Check(); err != nil {
		return err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("companies").
		Set("branch_count", stats.BranchCount).
		Set("staff_count", stats.StaffCount).
		Set("total_books", stats.TotalBooks).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": stats.CompanyID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatistics - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if vErr, ok := storage.ConstraintViolation(err); ok {
			return vErr
		}
		return fmt.Errorf("%w: UpdateStatistics - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatistics - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrCompanyNotFound
	}

	return nil
}

// ListIDs возвращает ID всех компаний
func (r *Repository) ListIDs(ctx context.Context) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("companies").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListIDs - build select query: %v", ErrBuildQuery, err)
	}

	return storage.QueryIDs(ctx, executor, query, args, ErrExecQuery, ErrScanRow)
}

// List возвращает все компании, упорядоченные по ID
func (r *Repository) List(ctx context.Context) ([]*domain.Company, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"company_name",
		"branch_count",
		"staff_count",
		"total_books",
		"created_at",
		"updated_at",
	).
		From("companies").
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

	companies := make([]*domain.Company, 0)
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.BranchCount, &c.StaffCount, &c.TotalBooks, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan company: %w", ErrScanRow, err)
		}
		companies = append(companies, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %w", ErrScanRow, err)
	}

	return companies, nil
}

// Rename меняет название компании, счетчики не трогаются
func (r *Repository) Rename(ctx context.Context, id int64, name string) error {
	if err := (&domain.Company{Name: name}).Check(); err != nil {
		return err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("companies").
		Set("company_name", name).
		Set("updated_at", squirrel.Expr("NOW()")).
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
		return ErrCompanyNotFound
	}

	return nil
}
