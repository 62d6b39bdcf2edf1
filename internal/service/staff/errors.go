package staff

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден в UserService
	ErrUserNotFound = errors.New("staff: user not found")

	// ErrStaffTimesNotFound возвращается, когда у сотрудника нет расписания
	ErrStaffTimesNotFound = errors.New("staff: working hours not found")

	// ErrUserServiceUnavailable возвращается, когда UserService не ответил корректно
	ErrUserServiceUnavailable = errors.New("staff: user service unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("staff: internal error")
)
