package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrReservationNotFound возвращается, когда код бронирования не найден
	ErrReservationNotFound = errors.New("reservation code not found")

	// ErrBranchNotFound возвращается, когда филиал брони не найден
	ErrBranchNotFound = errors.New("branch not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrBookingCanceled возвращается при попытке изменить отмененное бронирование
	ErrBookingCanceled = errors.New("booking is canceled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
