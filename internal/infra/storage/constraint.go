package storage

import (
	"errors"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// SQLSTATE коды нарушений ограничений
const (
	codeCheckViolation     pq.ErrorCode = "23514"
	codeUniqueViolation    pq.ErrorCode = "23505"
	codeExclusionViolation pq.ErrorCode = "23P01"
)

// ConstraintViolation переводит ошибку PostgreSQL о нарушении именованного ограничения
// в ошибку валидации из реестра domain.ConstraintSpecs
// ok == false, если err не является нарушением известного ограничения
func ConstraintViolation(err error) (*domain.ValidationError, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil, false
	}

	switch pqErr.Code {
	case codeCheckViolation, codeUniqueViolation, codeExclusionViolation:
	default:
		return nil, false
	}

	spec, ok := domain.LookupConstraint(pqErr.Constraint)
	if !ok {
		return nil, false
	}

	return spec.Violation(), true
}

// IsUniqueViolation проверяет, что err - нарушение уникальности (любого ключа)
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == codeUniqueViolation
}
