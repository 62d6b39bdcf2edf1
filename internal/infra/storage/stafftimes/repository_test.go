package stafftimes

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func mondayShift() *domain.StaffTimes {
	return &domain.StaffTimes{
		UserID:    11,
		CompanyID: 1,
		WorkingHours: domain.Schedule{
			"monday": map[string]interface{}{"start": "09:00", "end": "17:00"},
		},
	}
}

func TestRepository_Upsert(t *testing.T) {
	repo, mock := newTestRepository(t)
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO staff_times (user_id,company_id,working_hours) VALUES ($1,$2,$3) ON CONFLICT (user_id) DO UPDATE")).
		WithArgs(int64(11), int64(1), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(4, now, now))

	saved, err := repo.Upsert(context.Background(), mondayShift())
	require.NoError(t, err)
	assert.Equal(t, int64(4), saved.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Upsert_GuardRejectsBeforeQuery(t *testing.T) {
	repo, mock := newTestRepository(t)

	empty := mondayShift()
	empty.WorkingHours = domain.Schedule{}
	_, err := repo.Upsert(context.Background(), empty)
	assert.ErrorIs(t, err, domain.ErrStructural)

	noEnd := mondayShift()
	noEnd.WorkingHours["friday"] = map[string]interface{}{"start": "10:00"}
	_, err = repo.Upsert(context.Background(), noEnd)
	require.ErrorIs(t, err, domain.ErrStructural)
	vErr, _ := domain.AsValidationError(err)
	assert.Equal(t, domain.ConstraintStaffTimesDaysHaveBounds, vErr.Constraint)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Upsert_CheckViolationFromDatabase(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(`INSERT INTO staff_times`).
		WillReturnError(&pq.Error{Code: "23514", Constraint: domain.ConstraintStaffTimesNotEmpty})

	_, err := repo.Upsert(context.Background(), mondayShift())
	assert.ErrorIs(t, err, domain.ErrStructural)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByUserID_NotFound(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(`SELECT id, user_id, company_id, working_hours, created_at, updated_at FROM staff_times WHERE user_id = \$1`).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByUserID(context.Background(), 11)
	assert.ErrorIs(t, err, ErrStaffTimesNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteByUserID(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM staff_times WHERE user_id = $1")).
		WithArgs(int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM staff_times`).
		WithArgs(int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.DeleteByUserID(context.Background(), 11))
	assert.ErrorIs(t, repo.DeleteByUserID(context.Background(), 12), ErrStaffTimesNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
