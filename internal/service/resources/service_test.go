package resources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/branchmaster/BM-BookingService/internal/audit"
	"github.com/branchmaster/BM-BookingService/internal/domain"
	branchRepoPkg "github.com/branchmaster/BM-BookingService/internal/infra/storage/branch"
	resourceRepoPkg "github.com/branchmaster/BM-BookingService/internal/infra/storage/resource"
	"github.com/branchmaster/BM-BookingService/internal/service/resources/models"
	"github.com/branchmaster/BM-BookingService/pkg/ptr"
)

type fakeBranchRepo struct{}

func (fakeBranchRepo) GetByID(_ context.Context, id int64) (*domain.Branch, error) {
	if id != 1 {
		return nil, branchRepoPkg.ErrBranchNotFound
	}
	return &domain.Branch{ID: 1, TimeslotLength: 30, Active: true}, nil
}

type fakeResourceRepo struct {
	availabilities   map[int64]*domain.ResourceAvailability
	unavailabilities map[int64]*domain.ResourceUnavailability
	nextID           int64
}

func newFakeResourceRepo() *fakeResourceRepo {
	return &fakeResourceRepo{
		availabilities:   make(map[int64]*domain.ResourceAvailability),
		unavailabilities: make(map[int64]*domain.ResourceUnavailability),
	}
}

func (f *fakeResourceRepo) GetAvailabilitiesByBranchID(_ context.Context, branchID int64) ([]*domain.ResourceAvailability, error) {
	result := make([]*domain.ResourceAvailability, 0)
	for _, a := range f.availabilities {
		if a.BranchID == branchID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeResourceRepo) GetAvailabilityByID(_ context.Context, id int64) (*domain.ResourceAvailability, error) {
	a, ok := f.availabilities[id]
	if !ok {
		return nil, resourceRepoPkg.ErrAvailabilityNotFound
	}
	return a, nil
}

func (f *fakeResourceRepo) CreateAvailability(_ context.Context, availability *domain.ResourceAvailability) (*domain.ResourceAvailability, error) {
	f.nextID++
	created := *availability
	created.ID = f.nextID
	f.availabilities[created.ID] = &created
	return &created, nil
}

func (f *fakeResourceRepo) UpdateAvailability(_ context.Context, availability *domain.ResourceAvailability) error {
	if _, ok := f.availabilities[availability.ID]; !ok {
		return resourceRepoPkg.ErrAvailabilityNotFound
	}
	f.availabilities[availability.ID] = availability
	return nil
}

func (f *fakeResourceRepo) DeleteAvailability(_ context.Context, id int64) error {
	if _, ok := f.availabilities[id]; !ok {
		return resourceRepoPkg.ErrAvailabilityNotFound
	}
	delete(f.availabilities, id)
	return nil
}

func (f *fakeResourceRepo) GetUnavailabilityByBranchID(_ context.Context, branchID int64) ([]*domain.ResourceUnavailability, error) {
	result := make([]*domain.ResourceUnavailability, 0)
	for _, u := range f.unavailabilities {
		if u.BranchID == branchID {
			result = append(result, u)
		}
	}
	return result, nil
}

func (f *fakeResourceRepo) GetUnavailabilityByID(_ context.Context, id int64) (*domain.ResourceUnavailability, error) {
	u, ok := f.unavailabilities[id]
	if !ok {
		return nil, resourceRepoPkg.ErrUnavailabilityNotFound
	}
	return u, nil
}

func (f *fakeResourceRepo) CreateUnavailability(_ context.Context, unavailability *domain.ResourceUnavailability) (*domain.ResourceUnavailability, error) {
	f.nextID++
	created := *unavailability
	created.ID = f.nextID
	f.unavailabilities[created.ID] = &created
	return &created, nil
}

func (f *fakeResourceRepo) DeleteUnavailability(_ context.Context, id int64) error {
	if _, ok := f.unavailabilities[id]; !ok {
		return resourceRepoPkg.ErrUnavailabilityNotFound
	}
	delete(f.unavailabilities, id)
	return nil
}

type fakeAuditLog struct {
	entries []audit.ActionType
}

func (f *fakeAuditLog) Log(_ context.Context, _ int64, actionType audit.ActionType, _ interface{}) {
	f.entries = append(f.entries, actionType)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeResourceRepo, *fakeAuditLog) {
	repo := newFakeResourceRepo()
	auditLog := &fakeAuditLog{}
	return NewService(fakeBranchRepo{}, repo, auditLog, nopLogger{}), repo, auditLog
}

func validAvailabilityRequest() *models.SaveAvailabilityRequest {
	return &models.SaveAvailabilityRequest{
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "17:00",
		Name:      "Кабинет 1",
	}
}

func TestCreateAvailability_Success(t *testing.T) {
	svc, repo, auditLog := newTestService()

	result, err := svc.CreateAvailability(context.Background(), 500, 1, validAvailabilityRequest())

	require.NoError(t, err)
	assert.Equal(t, "09:00", result.StartTime)
	assert.Len(t, repo.availabilities, 1)
	require.Len(t, auditLog.entries, 1)
	assert.Equal(t, audit.ActionCreateResourceAvailability, auditLog.entries[0])
}

func TestCreateAvailability_Validation(t *testing.T) {
	svc, _, _ := newTestService()

	tests := []struct {
		name   string
		mutate func(*models.SaveAvailabilityRequest)
	}{
		{"day of week out of range", func(r *models.SaveAvailabilityRequest) { r.DayOfWeek = 7 }},
		{"end before start", func(r *models.SaveAvailabilityRequest) { r.StartTime = "17:00"; r.EndTime = "09:00" }},
		{"end equals start", func(r *models.SaveAvailabilityRequest) { r.EndTime = "09:00" }},
		{"bad time format", func(r *models.SaveAvailabilityRequest) { r.StartTime = "nine am" }},
		{"date bounds inverted", func(r *models.SaveAvailabilityRequest) {
			r.StartDate = ptr.Ptr("2025-12-31")
			r.EndDate = ptr.Ptr("2025-10-01")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validAvailabilityRequest()
			tt.mutate(req)
			_, err := svc.CreateAvailability(context.Background(), 500, 1, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreateAvailability_BranchNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateAvailability(context.Background(), 500, 99, validAvailabilityRequest())

	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestDeleteAvailability_WrongBranch(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.availabilities[1] = &domain.ResourceAvailability{ID: 1, BranchID: 2}
	repo.nextID = 1

	err := svc.DeleteAvailability(context.Background(), 500, 1, 1)

	assert.ErrorIs(t, err, ErrResourceNotFound)
	assert.Len(t, repo.availabilities, 1)
}

func TestCreateUnavailability_WholeDay(t *testing.T) {
	svc, repo, auditLog := newTestService()
	created, err := svc.CreateAvailability(context.Background(), 500, 1, validAvailabilityRequest())
	require.NoError(t, err)

	result, err := svc.CreateUnavailability(context.Background(), 500, 1, &models.CreateUnavailabilityRequest{
		ResourceAvailabilityID: created.ID,
		Date:                   "2025-10-13",
		Reason:                 "отпуск",
	})

	require.NoError(t, err)
	assert.True(t, result.WholeDay)
	assert.Len(t, repo.unavailabilities, 1)
	assert.Contains(t, auditLog.entries, audit.ActionCreateResourceUnavailability)
}

func TestCreateUnavailability_HalfOpenTimesRejected(t *testing.T) {
	svc, _, _ := newTestService()
	created, err := svc.CreateAvailability(context.Background(), 500, 1, validAvailabilityRequest())
	require.NoError(t, err)

	// Время начала без времени конца - некорректная блокировка
	_, err = svc.CreateUnavailability(context.Background(), 500, 1, &models.CreateUnavailabilityRequest{
		ResourceAvailabilityID: created.ID,
		Date:                   "2025-10-13",
		StartTime:              ptr.Ptr("09:00"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateUnavailability_UnknownResource(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateUnavailability(context.Background(), 500, 1, &models.CreateUnavailabilityRequest{
		ResourceAvailabilityID: 42,
		Date:                   "2025-10-13",
	})

	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestDeleteUnavailability_Success(t *testing.T) {
	svc, repo, auditLog := newTestService()
	created, err := svc.CreateAvailability(context.Background(), 500, 1, validAvailabilityRequest())
	require.NoError(t, err)

	block, err := svc.CreateUnavailability(context.Background(), 500, 1, &models.CreateUnavailabilityRequest{
		ResourceAvailabilityID: created.ID,
		Date:                   "2025-10-13",
	})
	require.NoError(t, err)

	err = svc.DeleteUnavailability(context.Background(), 500, 1, block.ID)

	require.NoError(t, err)
	assert.Empty(t, repo.unavailabilities)
	assert.Contains(t, auditLog.entries, audit.ActionDeleteResourceUnavailability)
}
