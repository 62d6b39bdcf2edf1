package validation

import (
	"context"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ValidateBranch проверяет филиал: непустой город, структуру working_hours и excluded_times,
// уникальность пары (city, location) среди остальных филиалов
func ValidateBranch(ctx context.Context, b *domain.Branch, lookup BranchLookup) error {
	if strings.TrimSpace(b.City) == "" {
		return domain.NewStructuralError("city", "city must not be empty")
	}

	if err := ValidateSchedule("working_hours", b.WorkingHours); err != nil {
		return err
	}

	// excluded_times требует weekdays так же, как working_hours
	if err := ValidateSchedule("excluded_times", b.ExcludedTimes); err != nil {
		return err
	}

	existing, err := lookup.FindByCityLocation(ctx, b.City, b.Location, b.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.NewUniquenessError("location", "a branch with this city and location already exists")
	}

	return nil
}
