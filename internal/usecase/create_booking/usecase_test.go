package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/service/statistics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 3, hour, minute, 0, 0, time.UTC)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

// fakeBookings хранилище броней, видимое всем шагам одной транзакции
type fakeBookings struct {
	items  []*domain.Booking
	nextID int64
}

func (f *fakeBookings) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	booking.ID = f.nextID
	f.items = append(f.items, booking)
	return booking, nil
}

func (f *fakeBookings) FindOverlapping(_ context.Context, serviceID int64, start, end time.Time, excludeID int64) (*domain.Booking, error) {
	for _, b := range f.items {
		if b.ServiceID == serviceID && b.ID != excludeID && b.IsActive() && b.Overlaps(start, end) {
			return b, nil
		}
	}
	return nil, nil
}

type fakeOrders struct {
	created []*domain.Order
	err     error
}

func (f *fakeOrders) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := order.Check(); err != nil {
		return nil, err
	}
	order.ID = int64(len(f.created) + 100)
	for i, item := range order.Items {
		item.ID = int64(i + 1)
		item.OrderID = order.ID
	}
	f.created = append(f.created, order)
	return order, nil
}

type fakeServices map[int64]*domain.Service

func (f fakeServices) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := f[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return s, nil
}

type stubAvailability struct{ err error }

func (s stubAvailability) Check(context.Context, *domain.Booking) error { return s.err }

type recordingDispatcher struct {
	trigger statistics.Trigger
	ids     []int64
	err     error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, trigger statistics.Trigger, ids ...int64) error {
	d.trigger = trigger
	d.ids = ids
	return d.err
}

// rollbackTx имитирует откат: брони, созданные внутри неудачной транзакции, удаляются
type rollbackTx struct{ bookings *fakeBookings }

func (tx rollbackTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	before := len(tx.bookings.items)
	if err := fn(ctx); err != nil {
		tx.bookings.items = tx.bookings.items[:before]
		return err
	}
	return nil
}

type countingMetrics struct{ kinds []string }

func (m *countingMetrics) IncValidationRejection(_, kind string) { m.kinds = append(m.kinds, kind) }

type fixture struct {
	uc         *UseCase
	bookings   *fakeBookings
	orders     *fakeOrders
	dispatcher *recordingDispatcher
	metrics    *countingMetrics
}

func newFixture(availabilityErr error) *fixture {
	services := fakeServices{
		5: {ID: 5, CompanyID: 2, Title: "Haircut", IsActive: true, Price: 1500, Presentation: domain.PresentationInPerson},
		6: {ID: 6, CompanyID: 3, Title: "Massage", IsActive: true, HasQuantity: true, Price: 1000, Presentation: domain.PresentationInPerson},
		7: {ID: 7, CompanyID: 2, Title: "Archived", IsActive: false, Price: 10, Presentation: domain.PresentationOnline},
	}

	f := &fixture{
		bookings:   &fakeBookings{},
		orders:     &fakeOrders{},
		dispatcher: &recordingDispatcher{},
		metrics:    &countingMetrics{},
	}
	f.uc = NewUseCase(
		f.bookings,
		f.orders,
		services,
		stubAvailability{availabilityErr},
		f.dispatcher,
		rollbackTx{f.bookings},
		f.metrics,
		logger.Nop(),
	).WithTimeProvider(fixedTime{now})

	return f
}

func item(serviceID int64, start, end time.Time) ItemRequest {
	return ItemRequest{ServiceID: serviceID, BranchID: 1, StartTime: start, EndTime: end}
}

func TestExecute_SingleBooking(t *testing.T) {
	f := newFixture(nil)

	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID: 9,
		Items:  []ItemRequest{item(5, at(10, 0), at(11, 0))},
	})
	require.NoError(t, err)

	assert.False(t, resp.IsMultipleBooking)
	assert.Equal(t, "pending", resp.PaymentStatus)
	assert.True(t, decimal.NewFromInt(1500).Equal(resp.FinalPrice))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(2), resp.Items[0].CompanyID)
	assert.Equal(t, 1, resp.Items[0].Quantity)
	assert.NotEqual(t, uuid.Nil, resp.Items[0].ReservationCode)
	assert.Equal(t, int64(9), f.bookings.items[0].BookedBy)

	assert.Equal(t, statistics.TriggerBookingSaved, f.dispatcher.trigger)
	assert.Equal(t, []int64{2}, f.dispatcher.ids)
}

func TestExecute_MultipleBookingsAcrossCompanies(t *testing.T) {
	f := newFixture(nil)

	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID: 9,
		Items: []ItemRequest{
			item(5, at(10, 0), at(11, 0)),
			{ServiceID: 6, BranchID: 2, StartTime: at(10, 0), EndTime: at(11, 0), Quantity: 3},
		},
	})
	require.NoError(t, err)

	assert.True(t, resp.IsMultipleBooking)
	require.Len(t, resp.Items, 2)
	assert.True(t, decimal.NewFromInt(3000).Equal(resp.Items[1].TotalPrice))
	assert.True(t, decimal.NewFromInt(4500).Equal(resp.FinalPrice))
	assert.NotEqual(t, resp.Items[0].ReservationCode, resp.Items[1].ReservationCode)
	assert.Equal(t, []int64{2, 3}, f.dispatcher.ids)
}

func TestExecute_OverlapScenario(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, &Request{UserID: 9, Items: []ItemRequest{item(5, at(10, 0), at(11, 0))}})
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, &Request{UserID: 10, Items: []ItemRequest{item(5, at(10, 30), at(11, 30))}})
	require.ErrorIs(t, err, domain.ErrOverlap)
	vErr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, int64(1), vErr.ConflictID)

	// касание границ не является пересечением
	_, err = f.uc.Execute(ctx, &Request{UserID: 10, Items: []ItemRequest{item(5, at(11, 0), at(12, 0))}})
	require.NoError(t, err)

	assert.Equal(t, []string{"overlap"}, f.metrics.kinds)
}

func TestExecute_OverlapInsideOneOrderRollsBackAll(t *testing.T) {
	f := newFixture(nil)

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID: 9,
		Items: []ItemRequest{
			item(5, at(10, 0), at(11, 0)),
			item(5, at(10, 30), at(11, 30)),
		},
	})
	require.ErrorIs(t, err, domain.ErrOverlap)
	assert.Empty(t, f.bookings.items, "no booking of a failed order survives")
	assert.Empty(t, f.orders.created)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		item    ItemRequest
		avail   error
		wantErr error
	}{
		{
			name:    "ordering",
			item:    item(5, at(11, 0), at(10, 0)),
			wantErr: domain.ErrOrdering,
		},
		{
			name:    "past start regardless of end",
			item:    item(5, now.Add(-time.Minute), now.Add(24*time.Hour)),
			wantErr: domain.ErrPastStart,
		},
		{
			name: "invalid payment status",
			item: ItemRequest{
				ServiceID:     5,
				BranchID:      1,
				StartTime:     at(10, 0),
				EndTime:       at(11, 0),
				PaymentStatus: ptr.Ptr("refunded"),
			},
			wantErr: domain.ErrInvalidEnum,
		},
		{
			name:    "quantity on service without quantity",
			item:    ItemRequest{ServiceID: 5, BranchID: 1, StartTime: at(10, 0), EndTime: at(11, 0), Quantity: 2},
			wantErr: domain.ErrStructural,
		},
		{
			name:    "negative quantity",
			item:    ItemRequest{ServiceID: 6, BranchID: 1, StartTime: at(10, 0), EndTime: at(11, 0), Quantity: -1},
			wantErr: domain.ErrNonNegative,
		},
		{
			name:    "unavailable branch time",
			item:    item(5, at(10, 0), at(11, 0)),
			avail:   domain.NewUnavailableError("start_time", "closed"),
			wantErr: domain.ErrUnavailable,
		},
		{
			name:    "branch not found",
			item:    item(5, at(10, 0), at(11, 0)),
			avail:   availability.ErrBranchNotFound,
			wantErr: ErrBranchNotFound,
		},
		{
			name:    "service not found",
			item:    item(99, at(10, 0), at(11, 0)),
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "inactive service",
			item:    item(7, at(10, 0), at(11, 0)),
			wantErr: ErrServiceInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.avail)

			_, err := f.uc.Execute(context.Background(), &Request{UserID: 9, Items: []ItemRequest{tt.item}})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.bookings.items)
			assert.Nil(t, f.dispatcher.ids)
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(nil)

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 0, Items: []ItemRequest{item(5, at(10, 0), at(11, 0))}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{UserID: 9})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{UserID: 9, Items: []ItemRequest{{ServiceID: 5, BranchID: 1}}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_OrderFailureRollsBack(t *testing.T) {
	f := newFixture(nil)
	storageErr := errors.New("disk full")
	f.orders.err = storageErr

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 9, Items: []ItemRequest{item(5, at(10, 0), at(11, 0))}})
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, storageErr)
	assert.Empty(t, f.bookings.items)
}

func TestExecute_StatisticsFailureIsReturned(t *testing.T) {
	f := newFixture(nil)
	f.dispatcher.err = errors.New("recount failed")

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 9, Items: []ItemRequest{item(5, at(10, 0), at(11, 0))}})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.bookings.items)
}
