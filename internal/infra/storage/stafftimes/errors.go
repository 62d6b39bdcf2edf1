package stafftimes

import "errors"

var (
	// ErrStaffTimesNotFound возвращается, когда расписание сотрудника не найдено
	ErrStaffTimesNotFound = errors.New("stafftimes.repository: staff times not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("stafftimes.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("stafftimes.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("stafftimes.repository: failed to scan row")
)
