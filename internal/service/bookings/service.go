package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	orderRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/order"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AppointmentService/internal/service/statistics"
	"github.com/m04kA/SMC-AppointmentService/internal/validation"
)

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Service сервис для работы с существующими бронированиями
type Service struct {
	bookingRepo  BookingRepository
	orderRepo    OrderRepository
	availability AvailabilityChecker
	dispatcher   StatisticsDispatcher
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	orderRepo OrderRepository,
	availability AvailabilityChecker,
	dispatcher StatisticsDispatcher,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		orderRepo:    orderRepo,
		availability: availability,
		dispatcher:   dispatcher,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if booking.BookedBy != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает бронирования пользователя
// Опционально фильтрует по статусу оплаты, отмененные по умолчанию исключаются
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d", req.UserID)

	filter := domain.UserBookingsFilter{
		UserID:          req.UserID,
		IncludeCanceled: req.IncludeCanceled,
	}

	if req.PaymentStatus != nil {
		status, err := models.ToDomainPaymentStatus(*req.PaymentStatus)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid payment status=%s for user=%d", *req.PaymentStatus, req.UserID)
			return nil, err
		}
		filter.PaymentStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetCompanyBookings получает бронирования компании
// Опционально фильтрует по филиалу, статусу оплаты и дню
func (s *Service) GetCompanyBookings(ctx context.Context, req *models.GetCompanyBookingsRequest) (*models.BookingListResponse, error) {
	filter := domain.CompanyBookingsFilter{
		CompanyID:       req.CompanyID,
		BranchID:        req.BranchID,
		IncludeCanceled: req.IncludeCanceled,
	}

	if req.PaymentStatus != nil {
		status, err := models.ToDomainPaymentStatus(*req.PaymentStatus)
		if err != nil {
			s.logger.Warn("GetCompanyBookings: invalid payment status=%s for company=%d", *req.PaymentStatus, req.CompanyID)
			return nil, err
		}
		filter.PaymentStatus = &status
	}

	if req.Date != nil {
		from := *req.Date
		to := from.AddDate(0, 0, 1)
		filter.From = &from
		filter.To = &to
	}

	bookings, err := s.bookingRepo.GetByCompany(ctx, filter)
	if err != nil {
		s.logger.Error("GetCompanyBookings: repository error for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: GetCompanyBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCompanyBookings: fetched %d bookings for company=%d", len(bookings), req.CompanyID)
	return models.FromDomainBookingList(bookings), nil
}

// Reschedule переносит бронирование на новый интервал
// Проверка пересечений исключает саму переносимую бронь
func (s *Service) Reschedule(ctx context.Context, bookingID int64, req *models.RescheduleRequest) (*models.BookingResponse, error) {
	s.logger.Info("Reschedule: booking id=%d to %s - %s by user=%d",
		bookingID, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339), req.UserID)

	now := s.timeProvider.Now()
	var result *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "Reschedule", bookingID)
		if err != nil {
			return err
		}

		if booking.BookedBy != req.UserID {
			s.logger.Warn("Reschedule: access denied for user=%d to booking id=%d", req.UserID, bookingID)
			return ErrAccessDenied
		}
		if booking.IsCanceled {
			return ErrBookingCanceled
		}

		booking.StartTime = req.StartTime
		booking.EndTime = req.EndTime

		if err := validation.ValidateBooking(txCtx, booking, now, s.bookingRepo); err != nil {
			return s.rejected("Reschedule", err)
		}
		if err := s.availability.Check(txCtx, booking); err != nil {
			if errors.Is(err, availability.ErrBranchNotFound) {
				return ErrBranchNotFound
			}
			return s.rejected("Reschedule", err)
		}

		if err := s.bookingRepo.Reschedule(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return s.rejected("Reschedule", err)
		}

		if err := s.dispatcher.Dispatch(txCtx, statistics.TriggerBookingSaved, booking.CompanyID); err != nil {
			s.logger.Error("Reschedule: statistics recompute failed for company=%d: %v", booking.CompanyID, err)
			return fmt.Errorf("%w: Reschedule - recompute statistics: %w", ErrInternal, err)
		}

		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Reschedule: booking id=%d moved", bookingID)
	return models.FromDomainBooking(result), nil
}

// UpdatePaymentStatus обновляет статус оплаты брони и её заказа
func (s *Service) UpdatePaymentStatus(ctx context.Context, bookingID int64, req *models.UpdatePaymentStatusRequest) error {
	s.logger.Info("UpdatePaymentStatus: booking id=%d to status=%s by user=%d", bookingID, req.PaymentStatus, req.UserID)

	status, err := models.ToDomainPaymentStatus(req.PaymentStatus)
	if err != nil {
		return s.rejected("UpdatePaymentStatus", err)
	}

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "UpdatePaymentStatus", bookingID)
		if err != nil {
			return err
		}

		if booking.BookedBy != req.UserID {
			s.logger.Warn("UpdatePaymentStatus: access denied for user=%d to booking id=%d", req.UserID, bookingID)
			return ErrAccessDenied
		}

		if err := s.bookingRepo.UpdatePaymentStatus(txCtx, bookingID, status); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("UpdatePaymentStatus: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: UpdatePaymentStatus - repository error: %v", ErrInternal, err)
		}

		// заказ без позиции с этой бронью не считается ошибкой
		if err := s.orderRepo.UpdatePaymentStatusByBooking(txCtx, bookingID, status); err != nil && !errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Error("UpdatePaymentStatus: order update failed for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: UpdatePaymentStatus - order repository error: %v", ErrInternal, err)
		}

		if err := s.dispatcher.Dispatch(txCtx, statistics.TriggerBookingSaved, booking.CompanyID); err != nil {
			return fmt.Errorf("%w: UpdatePaymentStatus - recompute statistics: %w", ErrInternal, err)
		}

		s.logger.Info("UpdatePaymentStatus: booking id=%d status=%s", bookingID, status)
		return nil
	})
}

// CancelByReservationCode отменяет бронь по коду из позиции заказа
// Знание кода достаточно для отмены, повторная отмена не является ошибкой
func (s *Service) CancelByReservationCode(ctx context.Context, req *models.CancelByCodeRequest) (*models.CancelResponse, error) {
	code, err := models.ParseReservationCode(req.ReservationCode)
	if err != nil {
		return nil, s.rejected("CancelByReservationCode", err)
	}

	s.logger.Info("CancelByReservationCode: code=%s", code)

	var bookingID int64
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		item, err := s.orderRepo.GetItemByReservationCode(txCtx, code)
		if err != nil {
			if errors.Is(err, orderRepo.ErrItemNotFound) {
				s.logger.Warn("CancelByReservationCode: code=%s not found", code)
				return ErrReservationNotFound
			}
			s.logger.Error("CancelByReservationCode: repository error for code=%s: %v", code, err)
			return fmt.Errorf("%w: CancelByReservationCode - get order item: %v", ErrInternal, err)
		}

		booking, err := s.getBooking(txCtx, "CancelByReservationCode", item.BookingID)
		if err != nil {
			return err
		}
		bookingID = booking.ID

		if booking.IsCanceled {
			s.logger.Info("CancelByReservationCode: booking id=%d already canceled", booking.ID)
			return nil
		}

		if err := s.bookingRepo.Cancel(txCtx, booking.ID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("CancelByReservationCode: repository error for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: CancelByReservationCode - cancel booking: %v", ErrInternal, err)
		}

		if err := s.dispatcher.Dispatch(txCtx, statistics.TriggerBookingSaved, booking.CompanyID); err != nil {
			return fmt.Errorf("%w: CancelByReservationCode - recompute statistics: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("CancelByReservationCode: booking id=%d canceled", bookingID)
	return &models.CancelResponse{BookingID: bookingID, IsCanceled: true}, nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// rejected учитывает ошибку валидации в метриках, остальные ошибки оборачивает в ErrInternal
func (s *Service) rejected(op string, err error) error {
	if vErr, ok := domain.AsValidationError(err); ok {
		s.metrics.IncValidationRejection(op, vErr.KindName())
		s.logger.Warn("%s: validation failed: %v", op, vErr)
		return vErr
	}
	s.logger.Error("%s: %v", op, err)
	return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
}
