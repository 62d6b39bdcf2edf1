package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	orderRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/order"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AppointmentService/internal/service/statistics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeBookings struct {
	items map[int64]*domain.Booking
}

func (f *fakeBookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.items[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookings) GetByUserID(_ context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.items {
		if b.BookedBy != filter.UserID {
			continue
		}
		if b.IsCanceled && !filter.IncludeCanceled {
			continue
		}
		if filter.PaymentStatus != nil && b.PaymentStatus != *filter.PaymentStatus {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookings) GetByCompany(_ context.Context, filter domain.CompanyBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.items {
		if b.CompanyID != filter.CompanyID {
			continue
		}
		if filter.BranchID != nil && b.BranchID != *filter.BranchID {
			continue
		}
		if b.IsCanceled && !filter.IncludeCanceled {
			continue
		}
		if filter.From != nil && b.StartTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !b.StartTime.Before(*filter.To) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookings) FindOverlapping(_ context.Context, serviceID int64, start, end time.Time, excludeID int64) (*domain.Booking, error) {
	for _, b := range f.items {
		if b.ServiceID == serviceID && b.ID != excludeID && b.IsActive() && b.Overlaps(start, end) {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookings) Reschedule(_ context.Context, booking *domain.Booking) error {
	b, ok := f.items[booking.ID]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.StartTime = booking.StartTime
	b.EndTime = booking.EndTime
	return nil
}

func (f *fakeBookings) UpdatePaymentStatus(_ context.Context, id int64, status domain.PaymentStatus) error {
	b, ok := f.items[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.PaymentStatus = status
	return nil
}

func (f *fakeBookings) Cancel(_ context.Context, id int64) error {
	b, ok := f.items[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.IsCanceled = true
	return nil
}

type fakeOrders struct {
	items    map[uuid.UUID]*domain.OrderItem
	statuses map[int64]domain.PaymentStatus
}

func (f *fakeOrders) GetItemByReservationCode(_ context.Context, code uuid.UUID) (*domain.OrderItem, error) {
	item, ok := f.items[code]
	if !ok {
		return nil, orderRepo.ErrItemNotFound
	}
	return item, nil
}

func (f *fakeOrders) UpdatePaymentStatusByBooking(_ context.Context, bookingID int64, status domain.PaymentStatus) error {
	for _, item := range f.items {
		if item.BookingID == bookingID {
			f.statuses[item.OrderID] = status
			return nil
		}
	}
	return orderRepo.ErrOrderNotFound
}

type stubAvailability struct{ err error }

func (s stubAvailability) Check(context.Context, *domain.Booking) error { return s.err }

type dispatched struct {
	trigger statistics.Trigger
	ids     []int64
}

type recordingDispatcher struct {
	calls []dispatched
	err   error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, trigger statistics.Trigger, ids ...int64) error {
	d.calls = append(d.calls, dispatched{trigger, ids})
	return d.err
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type countingMetrics struct{ kinds []string }

func (m *countingMetrics) IncValidationRejection(_, kind string) { m.kinds = append(m.kinds, kind) }

type fixture struct {
	svc        *Service
	bookings   *fakeBookings
	orders     *fakeOrders
	dispatcher *recordingDispatcher
	metrics    *countingMetrics
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 3, hour, minute, 0, 0, time.UTC)
}

func newFixture(availabilityErr error) *fixture {
	f := &fixture{
		bookings: &fakeBookings{items: map[int64]*domain.Booking{
			1: {ID: 1, StartTime: at(10, 0), EndTime: at(11, 0), BookedBy: 7, ServiceID: 5, CompanyID: 2, BranchID: 3, PaymentStatus: domain.PaymentPending},
			2: {ID: 2, StartTime: at(12, 0), EndTime: at(13, 0), BookedBy: 8, ServiceID: 5, CompanyID: 2, BranchID: 3, PaymentStatus: domain.PaymentApproved},
		}},
		orders:     &fakeOrders{items: map[uuid.UUID]*domain.OrderItem{}, statuses: map[int64]domain.PaymentStatus{}},
		dispatcher: &recordingDispatcher{},
		metrics:    &countingMetrics{},
	}
	f.svc = NewService(f.bookings, f.orders, stubAvailability{availabilityErr}, f.dispatcher, inlineTx{}, f.metrics, logger.Nop()).
		WithTimeProvider(fixedTime{now})
	return f
}

func TestGetByID(t *testing.T) {
	f := newFixture(nil)

	resp, err := f.svc.GetByID(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "pending", resp.PaymentStatus)

	_, err = f.svc.GetByID(context.Background(), 1, 8)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetByID(context.Background(), 99, 7)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings(t *testing.T) {
	f := newFixture(nil)
	f.bookings.items[3] = &domain.Booking{ID: 3, BookedBy: 7, IsCanceled: true, PaymentStatus: domain.PaymentPending}

	resp, err := f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 7})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	resp, err = f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 7, IncludeCanceled: true})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	bad := "refunded"
	_, err = f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 7, PaymentStatus: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidEnum)
}

func TestGetCompanyBookings(t *testing.T) {
	f := newFixture(nil)
	f.bookings.items[3] = &domain.Booking{ID: 3, StartTime: at(9, 0).AddDate(0, 0, 1), CompanyID: 2, BranchID: 4, PaymentStatus: domain.PaymentPending}

	resp, err := f.svc.GetCompanyBookings(context.Background(), &models.GetCompanyBookingsRequest{CompanyID: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 3)

	day := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	resp, err = f.svc.GetCompanyBookings(context.Background(), &models.GetCompanyBookingsRequest{CompanyID: 2, Date: &day})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	branchID := int64(4)
	resp, err = f.svc.GetCompanyBookings(context.Background(), &models.GetCompanyBookingsRequest{CompanyID: 2, BranchID: &branchID})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(3), resp.Bookings[0].ID)
}

func TestReschedule_Success(t *testing.T) {
	f := newFixture(nil)

	// сдвиг внутри собственного интервала не конфликтует с самим собой
	resp, err := f.svc.Reschedule(context.Background(), 1, &models.RescheduleRequest{
		UserID:    7,
		StartTime: at(10, 30),
		EndTime:   at(11, 30),
	})
	require.NoError(t, err)
	assert.Equal(t, at(10, 30), resp.StartTime)
	assert.Equal(t, at(10, 30), f.bookings.items[1].StartTime)
	require.Len(t, f.dispatcher.calls, 1)
	assert.Equal(t, statistics.TriggerBookingSaved, f.dispatcher.calls[0].trigger)
	assert.Equal(t, []int64{2}, f.dispatcher.calls[0].ids)
}

func TestReschedule_OverlapWithOtherBooking(t *testing.T) {
	f := newFixture(nil)

	_, err := f.svc.Reschedule(context.Background(), 1, &models.RescheduleRequest{
		UserID:    7,
		StartTime: at(12, 30),
		EndTime:   at(13, 30),
	})
	require.ErrorIs(t, err, domain.ErrOverlap)

	vErr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, int64(2), vErr.ConflictID)
	assert.Equal(t, []string{"overlap"}, f.metrics.kinds)
	assert.Equal(t, at(10, 0), f.bookings.items[1].StartTime, "booking is not moved")
	assert.Empty(t, f.dispatcher.calls)
}

func TestReschedule_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		bookID  int64
		req     models.RescheduleRequest
		avail   error
		wantErr error
	}{
		{
			name:    "ordering",
			bookID:  1,
			req:     models.RescheduleRequest{UserID: 7, StartTime: at(11, 0), EndTime: at(10, 0)},
			wantErr: domain.ErrOrdering,
		},
		{
			name:    "past start",
			bookID:  1,
			req:     models.RescheduleRequest{UserID: 7, StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour)},
			wantErr: domain.ErrPastStart,
		},
		{
			name:    "unavailable",
			bookID:  1,
			req:     models.RescheduleRequest{UserID: 7, StartTime: at(20, 0), EndTime: at(21, 0)},
			avail:   domain.NewUnavailableError("start_time", "closed"),
			wantErr: domain.ErrUnavailable,
		},
		{
			name:    "not owner",
			bookID:  1,
			req:     models.RescheduleRequest{UserID: 8, StartTime: at(15, 0), EndTime: at(16, 0)},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "not found",
			bookID:  42,
			req:     models.RescheduleRequest{UserID: 7, StartTime: at(15, 0), EndTime: at(16, 0)},
			wantErr: ErrBookingNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.avail)
			req := tt.req

			_, err := f.svc.Reschedule(context.Background(), tt.bookID, &req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.dispatcher.calls)
		})
	}
}

func TestReschedule_CanceledBooking(t *testing.T) {
	f := newFixture(nil)
	f.bookings.items[1].IsCanceled = true

	_, err := f.svc.Reschedule(context.Background(), 1, &models.RescheduleRequest{UserID: 7, StartTime: at(15, 0), EndTime: at(16, 0)})
	assert.ErrorIs(t, err, ErrBookingCanceled)
}

func TestReschedule_StatisticsFailureIsReturned(t *testing.T) {
	f := newFixture(nil)
	f.dispatcher.err = errors.New("recount failed")

	_, err := f.svc.Reschedule(context.Background(), 1, &models.RescheduleRequest{UserID: 7, StartTime: at(15, 0), EndTime: at(16, 0)})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUpdatePaymentStatus(t *testing.T) {
	f := newFixture(nil)
	code := uuid.New()
	f.orders.items[code] = &domain.OrderItem{ID: 1, OrderID: 50, BookingID: 1, ReservationCode: code}

	err := f.svc.UpdatePaymentStatus(context.Background(), 1, &models.UpdatePaymentStatusRequest{UserID: 7, PaymentStatus: "approved"})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentApproved, f.bookings.items[1].PaymentStatus)
	assert.Equal(t, domain.PaymentApproved, f.orders.statuses[50])
	assert.Len(t, f.dispatcher.calls, 1)
}

func TestUpdatePaymentStatus_InvalidEnum(t *testing.T) {
	f := newFixture(nil)

	err := f.svc.UpdatePaymentStatus(context.Background(), 1, &models.UpdatePaymentStatusRequest{UserID: 7, PaymentStatus: "paid"})
	require.ErrorIs(t, err, domain.ErrInvalidEnum)

	vErr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "payment_status", vErr.Field)
	assert.ElementsMatch(t, []string{"approved", "rejected", "pending"}, vErr.Allowed)
	assert.Equal(t, domain.PaymentPending, f.bookings.items[1].PaymentStatus)
}

func TestUpdatePaymentStatus_ForeignBooking(t *testing.T) {
	f := newFixture(nil)

	err := f.svc.UpdatePaymentStatus(context.Background(), 1, &models.UpdatePaymentStatusRequest{UserID: 8, PaymentStatus: "approved"})
	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, domain.PaymentPending, f.bookings.items[1].PaymentStatus)
	assert.Empty(t, f.dispatcher.calls)
}

func TestUpdatePaymentStatus_BookingWithoutOrder(t *testing.T) {
	f := newFixture(nil)

	err := f.svc.UpdatePaymentStatus(context.Background(), 1, &models.UpdatePaymentStatusRequest{UserID: 7, PaymentStatus: "rejected"})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRejected, f.bookings.items[1].PaymentStatus)
}

func TestCancelByReservationCode(t *testing.T) {
	f := newFixture(nil)
	code := uuid.New()
	f.orders.items[code] = &domain.OrderItem{ID: 1, OrderID: 50, BookingID: 2, ReservationCode: code}

	resp, err := f.svc.CancelByReservationCode(context.Background(), &models.CancelByCodeRequest{ReservationCode: code.String()})
	require.NoError(t, err)
	assert.Equal(t, &models.CancelResponse{BookingID: 2, IsCanceled: true}, resp)
	assert.True(t, f.bookings.items[2].IsCanceled)
	require.Len(t, f.dispatcher.calls, 1)

	// повторная отмена идемпотентна и не пересчитывает статистику
	_, err = f.svc.CancelByReservationCode(context.Background(), &models.CancelByCodeRequest{ReservationCode: code.String()})
	require.NoError(t, err)
	assert.Len(t, f.dispatcher.calls, 1)
}

func TestCancelByReservationCode_Errors(t *testing.T) {
	f := newFixture(nil)

	_, err := f.svc.CancelByReservationCode(context.Background(), &models.CancelByCodeRequest{})
	assert.ErrorIs(t, err, domain.ErrStructural)

	_, err = f.svc.CancelByReservationCode(context.Background(), &models.CancelByCodeRequest{ReservationCode: "not-a-uuid"})
	assert.ErrorIs(t, err, domain.ErrStructural)

	_, err = f.svc.CancelByReservationCode(context.Background(), &models.CancelByCodeRequest{ReservationCode: uuid.NewString()})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
