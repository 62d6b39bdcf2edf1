package event

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var fixedNow = time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewRepository(db)
	repo.now = func() time.Time { return fixedNow }
	return repo, mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newTestRepository(t)
	offDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO events (branch_id,company_id,reason,off_date) VALUES ($1,$2,$3,$4) RETURNING id, created_at")).
		WithArgs(int64(2), int64(1), "Inventory", "2026-03-10").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(5, fixedNow))

	created, err := repo.Create(context.Background(), &domain.Event{
		BranchID:  2,
		CompanyID: 1,
		Reason:    "Inventory",
		OffDate:   offDate,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_GuardRejectsBeforeQuery(t *testing.T) {
	repo, mock := newTestRepository(t)

	_, err := repo.Create(context.Background(), &domain.Event{BranchID: 2, Reason: "Today", OffDate: fixedNow})
	assert.ErrorIs(t, err, domain.ErrPastStart)

	_, err = repo.Create(context.Background(), &domain.Event{BranchID: 2, OffDate: fixedNow.AddDate(0, 0, 3)})
	assert.ErrorIs(t, err, domain.ErrStructural)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListOffDates(t *testing.T) {
	repo, mock := newTestRepository(t)
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	first := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	second := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT off_date FROM events WHERE branch_id = $1 AND off_date >= $2 AND off_date <= $3 ORDER BY off_date ASC")).
		WithArgs(int64(2), "2026-03-01", "2026-03-31").
		WillReturnRows(sqlmock.NewRows([]string{"off_date"}).AddRow(first).AddRow(second))

	dates, err := repo.ListOffDates(context.Background(), 2, from, to)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{first, second}, dates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListOffDates_Empty(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(`SELECT off_date FROM events`).
		WillReturnRows(sqlmock.NewRows([]string{"off_date"}))

	dates, err := repo.ListOffDates(context.Background(), 2, fixedNow, fixedNow)
	require.NoError(t, err)
	assert.Empty(t, dates)
	assert.NoError(t, mock.ExpectationsWereMet())
}
