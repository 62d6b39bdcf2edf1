package storage

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
)

// QueryIDs выполняет запрос, возвращающий одну колонку BIGINT, и собирает значения
// execErr и scanErr - сентинел-ошибки вызывающего репозитория
func QueryIDs(ctx context.Context, executor dbmetrics.DBExecutor, query string, args []interface{}, execErr, scanErr error) ([]int64, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: QueryIDs - execute query: %w", execErr, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: QueryIDs - scan id: %v", scanErr, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: QueryIDs - rows error: %v", scanErr, err)
	}

	return ids, nil
}
