package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/service/statistics"
	"github.com/m04kA/SMC-AppointmentService/internal/validation"
)

const operation = "CreateBooking"

// UseCase use case для создания заказа с бронированиями
type UseCase struct {
	bookingRepo  BookingRepository
	orderRepo    OrderRepository
	serviceRepo  ServiceRepository
	availability AvailabilityChecker
	dispatcher   StatisticsDispatcher
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	orderRepo OrderRepository,
	serviceRepo ServiceRepository,
	availability AvailabilityChecker,
	dispatcher StatisticsDispatcher,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		orderRepo:    orderRepo,
		serviceRepo:  serviceRepo,
		availability: availability,
		dispatcher:   dispatcher,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания заказа
// Все брони заказа проверяются и сохраняются в одной сериализуемой транзакции:
// либо создаются все, либо ни одна
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, items=%d", req.UserID, len(req.Items))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *domain.Order
	var created []*domain.Booking

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// При повторе транзакции начинаем с чистого состояния
		created = created[:0]

		order := &domain.Order{
			UserID:            req.UserID,
			IsMultipleBooking: len(req.Items) > 1,
			PaymentStatus:     domain.DefaultPaymentStatus,
		}
		companies := make([]int64, 0, len(req.Items))

		for i, item := range req.Items {
			// 2.1. Получаем услугу
			service, err := uc.serviceRepo.GetByID(txCtx, item.ServiceID)
			if err != nil {
				if errors.Is(err, serviceRepo.ErrServiceNotFound) {
					uc.logger.Warn("CreateBooking: service id=%d not found", item.ServiceID)
					return ErrServiceNotFound
				}
				uc.logger.Error("CreateBooking: failed to get service id=%d: %v", item.ServiceID, err)
				return fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
			}
			if !service.IsActive {
				uc.logger.Warn("CreateBooking: service id=%d is not active", item.ServiceID)
				return ErrServiceInactive
			}

			quantity, err := resolveQuantity(service, item.Quantity)
			if err != nil {
				return uc.rejected(err)
			}

			booking := &domain.Booking{
				StartTime:     item.StartTime,
				EndTime:       item.EndTime,
				BookedBy:      req.UserID,
				ServiceID:     service.ID,
				CompanyID:     service.CompanyID,
				BranchID:      item.BranchID,
				PaymentStatus: resolvePaymentStatus(item.PaymentStatus),
			}

			// 2.2. Правила брони: порядок, начало в будущем, пересечения, статус оплаты
			// Ранее созданные брони этого заказа уже видны в транзакции
			if err := validation.ValidateBooking(txCtx, booking, now, uc.bookingRepo); err != nil {
				return uc.rejected(err)
			}

			// 2.3. Филиал и рабочее время
			if err := uc.availability.Check(txCtx, booking); err != nil {
				if errors.Is(err, availability.ErrBranchNotFound) {
					uc.logger.Warn("CreateBooking: branch id=%d not found", item.BranchID)
					return ErrBranchNotFound
				}
				return uc.rejected(err)
			}

			// 2.4. Сохраняем бронь
			saved, err := uc.bookingRepo.Create(txCtx, booking)
			if err != nil {
				return uc.rejected(err)
			}
			created = append(created, saved)
			companies = append(companies, saved.CompanyID)

			order.Items = append(order.Items, domain.NewOrderItem(saved.ID, decimal.NewFromInt(service.Price), quantity))
			uc.logger.Info("CreateBooking: item %d booked as booking id=%d", i, saved.ID)
		}

		// 2.5. Сохраняем заказ и позиции
		order.FinalPrice = order.CalculateFinalPrice()
		savedOrder, err := uc.orderRepo.Create(txCtx, order)
		if err != nil {
			return uc.rejected(err)
		}

		// 2.6. Пересчитываем статистику компаний
		if err := uc.dispatcher.Dispatch(txCtx, statistics.TriggerBookingSaved, companies...); err != nil {
			uc.logger.Error("CreateBooking: statistics recompute failed: %v", err)
			return fmt.Errorf("%w: recompute statistics: %w", ErrInternal, err)
		}

		result = savedOrder
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created order id=%d with %d bookings", result.ID, len(created))

	return toResponse(result, created), nil
}

// rejected учитывает ошибку валидации в метриках, остальные оборачивает в ErrInternal
// Исходная ошибка сохраняется в цепочке, чтобы менеджер транзакций распознал конфликт сериализации
func (uc *UseCase) rejected(err error) error {
	if vErr, ok := domain.AsValidationError(err); ok {
		uc.metrics.IncValidationRejection(operation, vErr.KindName())
		uc.logger.Warn("CreateBooking: rejected: %v", vErr)
		return vErr
	}
	uc.logger.Error("CreateBooking: %v", err)
	return fmt.Errorf("%w: %w", ErrInternal, err)
}

func toResponse(order *domain.Order, bookings []*domain.Booking) *Response {
	resp := &Response{
		OrderID:           order.ID,
		UserID:            order.UserID,
		IsMultipleBooking: order.IsMultipleBooking,
		PaymentStatus:     string(order.PaymentStatus),
		FinalPrice:        order.FinalPrice,
		Items:             make([]ItemResponse, 0, len(order.Items)),
		CreatedAt:         order.CreatedAt,
	}

	for i, item := range order.Items {
		b := bookings[i]
		resp.Items = append(resp.Items, ItemResponse{
			BookingID:       b.ID,
			OrderItemID:     item.ID,
			ServiceID:       b.ServiceID,
			CompanyID:       b.CompanyID,
			BranchID:        b.BranchID,
			StartTime:       b.StartTime,
			EndTime:         b.EndTime,
			PaymentStatus:   string(b.PaymentStatus),
			Price:           item.Price,
			Quantity:        item.Quantity,
			TotalPrice:      item.TotalPrice,
			ReservationCode: item.ReservationCode,
		})
	}

	return resp
}
