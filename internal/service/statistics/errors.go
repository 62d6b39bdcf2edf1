package statistics

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("statistics: company not found")

	// ErrCategoryNotFound возвращается, когда категория не найдена
	ErrCategoryNotFound = errors.New("statistics: category not found")

	// ErrPersist возвращается, когда пересчет или сохранение счетчиков не удались
	ErrPersist = errors.New("statistics: failed to persist counters")

	// ErrUnknownTrigger возвращается для триггера, которого нет в таблице
	ErrUnknownTrigger = errors.New("statistics: unknown trigger")
)
