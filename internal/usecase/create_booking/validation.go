package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if len(req.Items) == 0 {
		return fmt.Errorf("%w: at least one booking is required", ErrInvalidInput)
	}

	for i, item := range req.Items {
		if item.ServiceID <= 0 {
			return fmt.Errorf("%w: items[%d].serviceID must be positive", ErrInvalidInput, i)
		}
		if item.BranchID <= 0 {
			return fmt.Errorf("%w: items[%d].branchID must be positive", ErrInvalidInput, i)
		}
		if item.StartTime.IsZero() || item.EndTime.IsZero() {
			return fmt.Errorf("%w: items[%d] start and end time are required", ErrInvalidInput, i)
		}
	}

	return nil
}

// resolveQuantity возвращает количество для позиции
// Услуга без количества принимает только 1
func resolveQuantity(service *domain.Service, quantity int) (int, error) {
	if quantity == 0 {
		quantity = domain.MinOrderItemQuantity
	}
	if quantity < domain.MinOrderItemQuantity {
		return 0, domain.Violation(domain.ConstraintOrderItemQuantityPositive)
	}
	if !service.HasQuantity && quantity > 1 {
		return 0, domain.NewStructuralError("quantity", "service does not accept quantity")
	}
	return quantity, nil
}

// resolvePaymentStatus возвращает статус оплаты брони
func resolvePaymentStatus(status *string) domain.PaymentStatus {
	if status == nil {
		return domain.DefaultPaymentStatus
	}
	return domain.PaymentStatus(*status)
}
