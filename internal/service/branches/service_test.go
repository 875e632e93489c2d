package branches

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/branchmaster/BM-BookingService/internal/audit"
	"github.com/branchmaster/BM-BookingService/internal/domain"
	branchRepo "github.com/branchmaster/BM-BookingService/internal/infra/storage/branch"
	"github.com/branchmaster/BM-BookingService/internal/service/branches/models"
)

type fakeBranchRepo struct {
	branches map[int64]*domain.Branch
	hours    map[int64]*domain.OperatingHours
	updated  *domain.OperatingHours
}

func (f *fakeBranchRepo) GetByID(_ context.Context, id int64) (*domain.Branch, error) {
	b, ok := f.branches[id]
	if !ok {
		return nil, branchRepo.ErrBranchNotFound
	}
	return b, nil
}

func (f *fakeBranchRepo) GetAllActive(_ context.Context) ([]*domain.Branch, error) {
	result := make([]*domain.Branch, 0)
	for _, b := range f.branches {
		if b.Active {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeBranchRepo) GetOperatingHours(_ context.Context, branchID int64) ([]*domain.OperatingHours, error) {
	result := make([]*domain.OperatingHours, 0)
	for _, oh := range f.hours {
		if oh.BranchID == branchID {
			result = append(result, oh)
		}
	}
	return result, nil
}

func (f *fakeBranchRepo) GetOperatingHoursByID(_ context.Context, id int64) (*domain.OperatingHours, error) {
	oh, ok := f.hours[id]
	if !ok {
		return nil, branchRepo.ErrOperatingHoursNotFound
	}
	return oh, nil
}

func (f *fakeBranchRepo) UpdateOperatingHours(_ context.Context, hours *domain.OperatingHours) error {
	if _, ok := f.hours[hours.ID]; !ok {
		return branchRepo.ErrOperatingHoursNotFound
	}
	f.hours[hours.ID] = hours
	f.updated = hours
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

func newTestService() (*Service, *fakeBranchRepo, *fakeAuditLog) {
	repo := &fakeBranchRepo{
		branches: map[int64]*domain.Branch{
			1: {ID: 1, Name: "Центральный", TimeslotLength: 30, Active: true},
			2: {ID: 2, Name: "Закрытый", TimeslotLength: 30, Active: false},
		},
		hours: map[int64]*domain.OperatingHours{
			10: {ID: 10, BranchID: 1, DayOfWeek: 1, OpeningTime: "09:00", ClosingTime: "18:00"},
		},
	}
	auditLog := &fakeAuditLog{}
	return NewService(repo, auditLog, nopLogger{}), repo, auditLog
}

func TestListActive(t *testing.T) {
	svc, _, _ := newTestService()

	result, err := svc.ListActive(context.Background())

	require.NoError(t, err)
	require.Len(t, result.Branches, 1)
	assert.Equal(t, "Центральный", result.Branches[0].Name)
}

func TestGetOperatingHours_BranchNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetOperatingHours(context.Background(), 99)

	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestUpdateOperatingHours_Success(t *testing.T) {
	svc, repo, auditLog := newTestService()

	result, err := svc.UpdateOperatingHours(context.Background(), 500, 1, 10, &models.UpdateOperatingHoursRequest{
		OpeningTime: "10:00",
		ClosingTime: "16:00",
	})

	require.NoError(t, err)
	assert.Equal(t, "10:00", result.OpeningTime)
	assert.Equal(t, "16:00", result.ClosingTime)
	assert.Equal(t, "10:00", repo.updated.OpeningTime.String())
	// Действие записано в журнал
	require.Len(t, auditLog.entries, 1)
	assert.Equal(t, audit.ActionOperatingHoursUpdated, auditLog.entries[0])
}

func TestUpdateOperatingHours_ClosingBeforeOpening(t *testing.T) {
	svc, _, auditLog := newTestService()

	_, err := svc.UpdateOperatingHours(context.Background(), 500, 1, 10, &models.UpdateOperatingHoursRequest{
		OpeningTime: "18:00",
		ClosingTime: "09:00",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, auditLog.entries)
}

func TestUpdateOperatingHours_WrongBranch(t *testing.T) {
	svc, _, _ := newTestService()

	// Запись часов принадлежит филиалу 1, а не 2
	_, err := svc.UpdateOperatingHours(context.Background(), 500, 2, 10, &models.UpdateOperatingHoursRequest{
		OpeningTime: "10:00",
		ClosingTime: "16:00",
	})

	assert.ErrorIs(t, err, ErrOperatingHoursNotFound)
}

func TestUpdateOperatingHours_MarkClosed(t *testing.T) {
	svc, repo, _ := newTestService()

	result, err := svc.UpdateOperatingHours(context.Background(), 500, 1, 10, &models.UpdateOperatingHoursRequest{
		Closed: true,
	})

	require.NoError(t, err)
	assert.True(t, result.Closed)
	assert.Empty(t, result.OpeningTime)
	assert.True(t, repo.updated.Closed)
}
