package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Виды ошибок валидации. Проверяются через errors.Is(err, domain.ErrOverlap)
var (
	ErrStructural  = errors.New("structural error")
	ErrOrdering    = errors.New("ordering error")
	ErrPastStart   = errors.New("past start error")
	ErrOverlap     = errors.New("overlap error")
	ErrInvalidEnum = errors.New("invalid enum error")
	ErrUniqueness  = errors.New("uniqueness error")
	ErrNonNegative = errors.New("non-negative error")
	ErrUnavailable = errors.New("unavailable error")
)

var kindNames = map[error]string{
	ErrStructural:  "structural",
	ErrOrdering:    "ordering",
	ErrPastStart:   "past_start",
	ErrOverlap:     "overlap",
	ErrInvalidEnum: "invalid_enum",
	ErrUniqueness:  "uniqueness",
	ErrNonNegative: "non_negative",
	ErrUnavailable: "unavailable",
}

// ValidationError ошибка валидации, привязанная к полю
type ValidationError struct {
	Kind       error
	Field      string
	Message    string
	Constraint string   // имя ограничения, если ошибка пришла из слоя ограничений
	ConflictID int64    // ID конфликтующей записи (для ErrOverlap)
	Allowed    []string // допустимые значения (для ErrInvalidEnum)
}

// Error реализует интерфейс error
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Field)
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.ConflictID != 0 {
		fmt.Fprintf(&b, " (conflicts with id=%d)", e.ConflictID)
	}
	if len(e.Allowed) > 0 {
		fmt.Fprintf(&b, " (allowed: %s)", strings.Join(e.Allowed, ", "))
	}
	return b.String()
}

// Unwrap позволяет сравнивать ошибку с видом через errors.Is
func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// KindName короткое имя вида ошибки для логов, метрик и API
func (e *ValidationError) KindName() string {
	return KindName(e.Kind)
}

// KindName возвращает короткое имя вида ошибки валидации
func KindName(kind error) string {
	if name, ok := kindNames[kind]; ok {
		return name
	}
	return "unknown"
}

// AsValidationError извлекает ValidationError из цепочки ошибок
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

// NewStructuralError ошибка структуры JSON-документа или обязательного поля
func NewStructuralError(field, message string) *ValidationError {
	return &ValidationError{Kind: ErrStructural, Field: field, Message: message}
}

// NewOrderingError ошибка порядка интервала (start >= end)
func NewOrderingError(field, message string) *ValidationError {
	return &ValidationError{Kind: ErrOrdering, Field: field, Message: message}
}

// NewPastStartError ошибка начала в прошлом
func NewPastStartError(field, message string) *ValidationError {
	return &ValidationError{Kind: ErrPastStart, Field: field, Message: message}
}

// NewOverlapError ошибка пересечения с существующей записью
func NewOverlapError(field, message string, conflictID int64) *ValidationError {
	return &ValidationError{Kind: ErrOverlap, Field: field, Message: message, ConflictID: conflictID}
}

// NewInvalidEnumError ошибка значения вне допустимого множества
func NewInvalidEnumError(field string, allowed []string) *ValidationError {
	return &ValidationError{
		Kind:    ErrInvalidEnum,
		Field:   field,
		Message: "value is not one of the allowed choices",
		Allowed: allowed,
	}
}

// NewUniquenessError ошибка дубликата уникального ключа
func NewUniquenessError(field, message string) *ValidationError {
	return &ValidationError{Kind: ErrUniqueness, Field: field, Message: message}
}

// NewNonNegativeError ошибка отрицательного значения
func NewNonNegativeError(field, message string) *ValidationError {
	return &ValidationError{Kind: ErrNonNegative, Field: field, Message: message}
}

// NewUnavailableError ошибка бронирования вне доступного времени филиала
func NewUnavailableError(field, message string) *ValidationError {
	return &ValidationError{Kind: ErrUnavailable, Field: field, Message: message}
}
