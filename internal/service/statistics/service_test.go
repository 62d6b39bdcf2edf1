package statistics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	categoryRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/category"
	companyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/company"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

// store хранилище в памяти, считающее связи так же, как SQL подзапросы
type store struct {
	companies map[int64]*domain.Company
	branches  map[int64]int64 // branch id -> company id
	staff     map[int64]int64 // user id -> company id
	bookings  map[int64]int64 // booking id -> company id

	categories       map[int64]int
	categoryServices map[int64]map[int64]struct{}

	countErr error
}

func newStore() *store {
	return &store{
		companies:        map[int64]*domain.Company{},
		branches:         map[int64]int64{},
		staff:            map[int64]int64{},
		bookings:         map[int64]int64{},
		categories:       map[int64]int{},
		categoryServices: map[int64]map[int64]struct{}{},
	}
}

type fakeCompanies struct{ s *store }

func (f fakeCompanies) GetByID(_ context.Context, id int64) (*domain.Company, error) {
	c, ok := f.s.companies[id]
	if !ok {
		return nil, companyRepo.ErrCompanyNotFound
	}
	copied := *c
	return &copied, nil
}

func (f fakeCompanies) CountRelations(_ context.Context, companyID int64) (*domain.CompanyStatistics, error) {
	if f.s.countErr != nil {
		return nil, f.s.countErr
	}
	if _, ok := f.s.companies[companyID]; !ok {
		return nil, companyRepo.ErrCompanyNotFound
	}
	stats := &domain.CompanyStatistics{CompanyID: companyID}
	for _, c := range f.s.branches {
		if c == companyID {
			stats.BranchCount++
		}
	}
	for _, c := range f.s.staff {
		if c == companyID {
			stats.StaffCount++
		}
	}
	for _, c := range f.s.bookings {
		if c == companyID {
			stats.TotalBooks++
		}
	}
	return stats, nil
}

func (f fakeCompanies) UpdateStatistics(_ context.Context, stats *domain.CompanyStatistics) error {
	c, ok := f.s.companies[stats.CompanyID]
	if !ok {
		return companyRepo.ErrCompanyNotFound
	}
	c.BranchCount = stats.BranchCount
	c.StaffCount = stats.StaffCount
	c.TotalBooks = stats.TotalBooks
	return nil
}

func (f fakeCompanies) ListIDs(context.Context) ([]int64, error) {
	ids := make([]int64, 0, len(f.s.companies))
	for id := range f.s.companies {
		ids = append(ids, id)
	}
	return ids, nil
}

type fakeCategories struct{ s *store }

func (f fakeCategories) CountServices(_ context.Context, categoryID int64) (int, error) {
	if _, ok := f.s.categories[categoryID]; !ok {
		return 0, categoryRepo.ErrCategoryNotFound
	}
	return len(f.s.categoryServices[categoryID]), nil
}

func (f fakeCategories) UpdateTotalServices(_ context.Context, categoryID int64, total int) error {
	if _, ok := f.s.categories[categoryID]; !ok {
		return categoryRepo.ErrCategoryNotFound
	}
	f.s.categories[categoryID] = total
	return nil
}

func (f fakeCategories) ListIDs(context.Context) ([]int64, error) {
	ids := make([]int64, 0, len(f.s.categories))
	for id := range f.s.categories {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *store) addServices(categoryID int64, ids ...int64) {
	if s.categoryServices[categoryID] == nil {
		s.categoryServices[categoryID] = map[int64]struct{}{}
	}
	for _, id := range ids {
		s.categoryServices[categoryID][id] = struct{}{}
	}
}

type recordedMetrics struct {
	calls []string
}

func (m *recordedMetrics) IncStatisticsRecompute(target, outcome string) {
	m.calls = append(m.calls, target+":"+outcome)
}

func newTestService(s *store) (*Service, *recordedMetrics) {
	m := &recordedMetrics{}
	return NewService(fakeCompanies{s}, fakeCategories{s}, m, logger.Nop()), m
}

func TestRecomputeCompanyStatistics(t *testing.T) {
	s := newStore()
	s.companies[1] = &domain.Company{ID: 1, Name: "Acme"}
	s.companies[2] = &domain.Company{ID: 2, Name: "Other"}
	s.branches[10] = 1
	s.branches[11] = 1
	s.branches[12] = 2
	s.staff[100] = 1
	s.bookings[1000] = 1
	s.bookings[1001] = 1
	s.bookings[1002] = 1

	svc, m := newTestService(s)

	stats, err := svc.RecomputeCompanyStatistics(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, &domain.CompanyStatistics{CompanyID: 1, BranchCount: 2, StaffCount: 1, TotalBooks: 3}, stats)
	assert.Equal(t, 2, s.companies[1].BranchCount)
	assert.Equal(t, 1, s.companies[1].StaffCount)
	assert.Equal(t, 3, s.companies[1].TotalBooks)
	assert.Equal(t, 0, s.companies[2].BranchCount, "other companies are untouched")
	assert.Equal(t, []string{"company:ok"}, m.calls)
}

func TestRecomputeCompanyStatistics_Idempotent(t *testing.T) {
	s := newStore()
	s.companies[1] = &domain.Company{ID: 1}
	s.branches[10] = 1
	s.staff[100] = 1
	s.bookings[1000] = 1

	svc, _ := newTestService(s)

	first, err := svc.RecomputeCompanyStatistics(context.Background(), 1)
	require.NoError(t, err)
	second, err := svc.RecomputeCompanyStatistics(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, s.companies[1].BranchCount)
}

func TestRecomputeCompanyStatistics_AfterDeletes(t *testing.T) {
	s := newStore()
	s.companies[1] = &domain.Company{ID: 1, BranchCount: 5, StaffCount: 5, TotalBooks: 5}
	s.branches[10] = 1
	s.branches[11] = 1
	s.staff[100] = 1

	svc, _ := newTestService(s)

	_, err := svc.RecomputeCompanyStatistics(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, s.companies[1].BranchCount)

	delete(s.branches, 10)
	delete(s.staff, 100)

	stats, err := svc.RecomputeCompanyStatistics(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.BranchCount)
	assert.Equal(t, 0, stats.StaffCount)
	assert.Equal(t, 0, stats.TotalBooks)
	assert.Equal(t, 0, s.companies[1].TotalBooks, "stale cached value is overwritten")
}

func TestRecomputeCompanyStatistics_UnknownCompany(t *testing.T) {
	svc, m := newTestService(newStore())

	_, err := svc.RecomputeCompanyStatistics(context.Background(), 42)
	assert.ErrorIs(t, err, ErrCompanyNotFound)
	assert.Equal(t, []string{"company:not_found"}, m.calls)
}

func TestRecomputeCompanyStatistics_StorageFailure(t *testing.T) {
	s := newStore()
	s.companies[1] = &domain.Company{ID: 1}
	boom := errors.New("connection reset")
	s.countErr = boom

	svc, m := newTestService(s)

	_, err := svc.RecomputeCompanyStatistics(context.Background(), 1)
	assert.ErrorIs(t, err, ErrPersist)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"company:error"}, m.calls)
}

func TestRecomputeCategoryServiceCount_AddRemoveClear(t *testing.T) {
	s := newStore()
	s.categories[7] = 0
	svc, _ := newTestService(s)
	dispatcher := NewDispatcher(svc)
	ctx := context.Background()

	s.addServices(7, 1, 2, 3)
	require.NoError(t, dispatcher.Dispatch(ctx, TriggerCategoryServicesAdded, 7))
	assert.Equal(t, 3, s.categories[7])

	delete(s.categoryServices[7], 2)
	require.NoError(t, dispatcher.Dispatch(ctx, TriggerCategoryServicesRemoved, 7))
	assert.Equal(t, 2, s.categories[7])

	s.categoryServices[7] = nil
	require.NoError(t, dispatcher.Dispatch(ctx, TriggerCategoryServicesCleared, 7))
	assert.Equal(t, 0, s.categories[7])

	s.addServices(7, 2)
	require.NoError(t, dispatcher.Dispatch(ctx, TriggerCategoryServicesAdded, 7))
	assert.Equal(t, 1, s.categories[7])
}

func TestRecomputeCategoryServiceCount_UnknownCategory(t *testing.T) {
	svc, _ := newTestService(newStore())

	_, err := svc.RecomputeCategoryServiceCount(context.Background(), 9)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestGetCompanyStatistics(t *testing.T) {
	s := newStore()
	s.companies[1] = &domain.Company{ID: 1, BranchCount: 2, StaffCount: 3, TotalBooks: 4}
	svc, _ := newTestService(s)

	stats, err := svc.GetCompanyStatistics(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, &domain.CompanyStatistics{CompanyID: 1, BranchCount: 2, StaffCount: 3, TotalBooks: 4}, stats)

	_, err = svc.GetCompanyStatistics(context.Background(), 2)
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestRecomputeAll(t *testing.T) {
	s := newStore()
	s.companies[1] = &domain.Company{ID: 1}
	s.companies[2] = &domain.Company{ID: 2}
	s.branches[10] = 1
	s.branches[11] = 2
	s.bookings[1000] = 2
	s.categories[7] = 99
	s.addServices(7, 1, 2)

	svc, _ := newTestService(s)

	require.NoError(t, svc.RecomputeAll(context.Background()))
	assert.Equal(t, 1, s.companies[1].BranchCount)
	assert.Equal(t, 1, s.companies[2].BranchCount)
	assert.Equal(t, 1, s.companies[2].TotalBooks)
	assert.Equal(t, 2, s.categories[7])
}

func TestRecomputeAll_ReportsFirstErrorAndContinues(t *testing.T) {
	s := newStore()
	s.companies[1] = &domain.Company{ID: 1}
	s.countErr = errors.New("db down")
	s.categories[7] = 0
	s.addServices(7, 1)

	svc, _ := newTestService(s)

	err := svc.RecomputeAll(context.Background())
	assert.ErrorIs(t, err, ErrPersist)
	assert.Equal(t, 1, s.categories[7], "categories are recomputed despite company failure")
}
