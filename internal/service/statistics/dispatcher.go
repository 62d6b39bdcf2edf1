package statistics

import (
	"context"
	"fmt"
)

// Trigger событие изменения данных, после которого нужно пересчитать счетчики
type Trigger string

const (
	TriggerBranchSaved             Trigger = "branch.saved"
	TriggerBranchDeleted           Trigger = "branch.deleted"
	TriggerBookingSaved            Trigger = "booking.saved"
	TriggerBookingDeleted          Trigger = "booking.deleted"
	TriggerStaffTimesSaved         Trigger = "staff_times.saved"
	TriggerStaffTimesDeleted       Trigger = "staff_times.deleted"
	TriggerCategoryServicesAdded   Trigger = "category.services_added"
	TriggerCategoryServicesRemoved Trigger = "category.services_removed"
	TriggerCategoryServicesCleared Trigger = "category.services_cleared"
)

// Таблица триггеров. Единственное место, где описано, какое изменение что пересчитывает.
//
//	branch.saved, branch.deleted           -> компания филиала (старая и новая при переносе)
//	booking.saved, booking.deleted         -> компания бронирования
//	staff_times.saved, staff_times.deleted -> компания сотрудника (старая и новая при переносе)
//	category.services_*                    -> категория
var triggerTargets = map[Trigger]string{
	TriggerBranchSaved:             targetCompany,
	TriggerBranchDeleted:           targetCompany,
	TriggerBookingSaved:            targetCompany,
	TriggerBookingDeleted:          targetCompany,
	TriggerStaffTimesSaved:         targetCompany,
	TriggerStaffTimesDeleted:       targetCompany,
	TriggerCategoryServicesAdded:   targetCategory,
	TriggerCategoryServicesRemoved: targetCategory,
	TriggerCategoryServicesCleared: targetCategory,
}

// Dispatcher синхронно выполняет пересчет по триггеру
// Вызывается внутри транзакции изменения, поэтому ошибка пересчета откатывает изменение
type Dispatcher struct {
	service *Service
}

// NewDispatcher создает диспетчер триггеров
func NewDispatcher(service *Service) *Dispatcher {
	return &Dispatcher{service: service}
}

// Dispatch пересчитывает счетчики для каждой затронутой сущности
// Нулевые и повторяющиеся ID пропускаются
func (d *Dispatcher) Dispatch(ctx context.Context, trigger Trigger, ids ...int64) error {
	target, ok := triggerTargets[trigger]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTrigger, trigger)
	}

	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		var err error
		switch target {
		case targetCompany:
			_, err = d.service.RecomputeCompanyStatistics(ctx, id)
		case targetCategory:
			_, err = d.service.RecomputeCategoryServiceCount(ctx, id)
		}
		if err != nil {
			return fmt.Errorf("%s id=%d: %w", trigger, id, err)
		}
	}

	return nil
}
