package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/branchmaster/BM-BookingService/internal/domain"
	branchStorage "github.com/branchmaster/BM-BookingService/internal/infra/storage/branch"
)

type fakeBranchRepo struct {
	branch *domain.Branch
	hours  []*domain.OperatingHours
}

func (f *fakeBranchRepo) GetByID(_ context.Context, id int64) (*domain.Branch, error) {
	if f.branch == nil || f.branch.ID != id {
		return nil, branchStorage.ErrBranchNotFound
	}
	return f.branch, nil
}

func (f *fakeBranchRepo) GetOpenOperatingHours(_ context.Context, _ int64) ([]*domain.OperatingHours, error) {
	return f.hours, nil
}

type fakeResourceRepo struct {
	availabilities   []*domain.ResourceAvailability
	unavailabilities []*domain.ResourceUnavailability
}

func (f *fakeResourceRepo) GetAvailabilitiesForRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.ResourceAvailability, error) {
	return f.availabilities, nil
}

func (f *fakeResourceRepo) GetUnavailabilityForRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.ResourceUnavailability, error) {
	return f.unavailabilities, nil
}

type fakeAppointmentRepo struct {
	booked []*domain.Appointment
}

func (f *fakeAppointmentRepo) FindBookedForRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.Appointment, error) {
	return f.booked, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(branchRepo *fakeBranchRepo, resourceRepo *fakeResourceRepo, appointmentRepo *fakeAppointmentRepo) *UseCase {
	return NewUseCase(branchRepo, resourceRepo, appointmentRepo, fakeTxManager{}, nopLogger{})
}

func TestExecute_BranchNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBranchRepo{}, &fakeResourceRepo{}, &fakeAppointmentRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		BranchID:  42,
		StartDate: monday,
		EndDate:   monday,
	})

	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestExecute_InvalidDateRange(t *testing.T) {
	uc := newTestUseCase(&fakeBranchRepo{}, &fakeResourceRepo{}, &fakeAppointmentRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		BranchID:  1,
		StartDate: monday,
		EndDate:   monday.AddDate(0, 0, -1),
	})

	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestExecute_SkipsClosedAndUnknownDays(t *testing.T) {
	branchRepo := &fakeBranchRepo{
		branch: &domain.Branch{ID: 1, TimeslotLength: 60},
		hours: []*domain.OperatingHours{
			{DayOfWeek: 1, OpeningTime: "09:00", ClosingTime: "11:00"},
			// вторника и остальных дней нет - они закрыты
		},
	}
	resourceRepo := &fakeResourceRepo{
		availabilities: []*domain.ResourceAvailability{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00"},
		},
	}

	uc := newTestUseCase(branchRepo, resourceRepo, &fakeAppointmentRepo{})

	// Понедельник - среда: слоты только в понедельник
	resp, err := uc.Execute(context.Background(), &Request{
		BranchID:  1,
		StartDate: monday,
		EndDate:   monday.AddDate(0, 0, 2),
	})

	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, monday, resp.Days[0].Date)
	require.Len(t, resp.Days[0].Timeslots, 2)
	assert.Equal(t, domain.SlotAvailable, resp.Days[0].Timeslots[0].Status)
}

func TestExecute_BookingMarksSlotFullyBooked(t *testing.T) {
	branchRepo := &fakeBranchRepo{
		branch: &domain.Branch{ID: 1, TimeslotLength: 30},
		hours: []*domain.OperatingHours{
			{DayOfWeek: 1, OpeningTime: "09:00", ClosingTime: "11:00"},
		},
	}
	resourceRepo := &fakeResourceRepo{
		availabilities: []*domain.ResourceAvailability{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00"},
		},
	}
	appointmentRepo := &fakeAppointmentRepo{
		booked: []*domain.Appointment{
			{AppointmentDate: monday, StartTime: "09:30", EndTime: "10:00", Status: domain.StatusBooked},
		},
	}

	uc := newTestUseCase(branchRepo, resourceRepo, appointmentRepo)

	resp, err := uc.Execute(context.Background(), &Request{
		BranchID:  1,
		StartDate: monday,
		EndDate:   monday,
	})

	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	timeslots := resp.Days[0].Timeslots
	require.Len(t, timeslots, 4)
	assert.Equal(t, domain.SlotAvailable, timeslots[0].Status)
	assert.Equal(t, domain.SlotFullyBooked, timeslots[1].Status)
	assert.Equal(t, domain.SlotAvailable, timeslots[2].Status)
	assert.Equal(t, domain.SlotAvailable, timeslots[3].Status)
}

func TestExecute_Idempotent(t *testing.T) {
	branchRepo := &fakeBranchRepo{
		branch: &domain.Branch{ID: 1, TimeslotLength: 60},
		hours: []*domain.OperatingHours{
			{DayOfWeek: 1, OpeningTime: "09:00", ClosingTime: "12:00"},
		},
	}
	resourceRepo := &fakeResourceRepo{
		availabilities: []*domain.ResourceAvailability{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
		},
	}

	uc := newTestUseCase(branchRepo, resourceRepo, &fakeAppointmentRepo{})

	req := &Request{BranchID: 1, StartDate: monday, EndDate: monday}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Чтение ничего не меняет - повторный запрос дает тот же результат
	assert.Equal(t, first, second)
}
