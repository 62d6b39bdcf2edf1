package availability

import "errors"

var (
	// ErrBranchNotFound возвращается, когда филиал брони не найден
	ErrBranchNotFound = errors.New("availability: branch not found")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("availability: internal error")
)
