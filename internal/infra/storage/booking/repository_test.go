package booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var fixedNow = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewRepository(db)
	repo.now = func() time.Time { return fixedNow }
	return repo, mock
}

func futureBooking() *domain.Booking {
	start := fixedNow.Add(24 * time.Hour)
	return &domain.Booking{
		StartTime:     start,
		EndTime:       start.Add(time.Hour),
		BookedBy:      11,
		ServiceID:     3,
		CompanyID:     1,
		BranchID:      2,
		PaymentStatus: domain.PaymentPending,
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newTestRepository(t)
	b := futureBooking()

	mock.ExpectQuery(`INSERT INTO bookings`).
		WithArgs(b.StartTime, b.EndTime, b.BookedBy, b.ServiceID, b.CompanyID, b.BranchID, false, "pending").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(42, fixedNow, fixedNow))

	created, err := repo.Create(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, fixedNow, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_ExclusionViolationBecomesOverlap(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnError(&pq.Error{Code: "23P01", Constraint: domain.ConstraintBookingNoOverlap})

	_, err := repo.Create(context.Background(), futureBooking())
	require.ErrorIs(t, err, domain.ErrOverlap)

	vErr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ConstraintBookingNoOverlap, vErr.Constraint)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_GuardRejectsBeforeQuery(t *testing.T) {
	repo, mock := newTestRepository(t)

	past := futureBooking()
	past.StartTime = fixedNow.Add(-time.Hour)
	_, err := repo.Create(context.Background(), past)
	assert.ErrorIs(t, err, domain.ErrPastStart)

	inverted := futureBooking()
	inverted.EndTime = inverted.StartTime
	_, err = repo.Create(context.Background(), inverted)
	assert.ErrorIs(t, err, domain.ErrOrdering)

	badStatus := futureBooking()
	badStatus.PaymentStatus = "paid"
	_, err = repo.Create(context.Background(), badStatus)
	assert.ErrorIs(t, err, domain.ErrInvalidEnum)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindOverlapping(t *testing.T) {
	repo, mock := newTestRepository(t)
	start := fixedNow.Add(24 * time.Hour)
	end := start.Add(time.Hour)

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE .+ LIMIT 1`).
		WithArgs(false, int64(3), end, start, int64(9)).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(5, start.Add(-30*time.Minute), start.Add(30*time.Minute), 11, 3, 1, 2, false, "approved", fixedNow, fixedNow))

	conflict, err := repo.FindOverlapping(context.Background(), 3, start, end, 9)
	require.NoError(t, err)
	require.NotNil(t, conflict)
	assert.Equal(t, int64(5), conflict.ID)
	assert.Equal(t, domain.PaymentApproved, conflict.PaymentStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindOverlapping_NoConflict(t *testing.T) {
	repo, mock := newTestRepository(t)
	start := fixedNow.Add(24 * time.Hour)

	mock.ExpectQuery(`SELECT .+ FROM bookings`).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	conflict, err := repo.FindOverlapping(context.Background(), 3, start, start.Add(time.Hour), 0)
	require.NoError(t, err)
	assert.Nil(t, conflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Cancel_NotFound(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec(`UPDATE bookings SET is_canceled`).
		WithArgs(true, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Cancel(context.Background(), 4)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE id = \$1`).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	_, err := repo.GetByID(context.Background(), 8)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByCompany_AppliesFilters(t *testing.T) {
	repo, mock := newTestRepository(t)

	branchID := int64(2)
	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	b := futureBooking()

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE company_id = \$1 AND branch_id = \$2 AND start_time >= \$3 AND start_time < \$4 AND is_canceled = \$5 ORDER BY start_time ASC`).
		WithArgs(int64(1), branchID, from, to, false).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(5, b.StartTime, b.EndTime, b.BookedBy, b.ServiceID, b.CompanyID, b.BranchID, false, "pending", fixedNow, fixedNow))

	bookings, err := repo.GetByCompany(context.Background(), domain.CompanyBookingsFilter{
		CompanyID: 1,
		BranchID:  &branchID,
		From:      &from,
		To:        &to,
	})
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, int64(5), bookings[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
