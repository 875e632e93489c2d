package create_appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/branchmaster/BM-BookingService/internal/domain"
	appointmentStorage "github.com/branchmaster/BM-BookingService/internal/infra/storage/appointment"
	branchStorage "github.com/branchmaster/BM-BookingService/internal/infra/storage/branch"
	"github.com/branchmaster/BM-BookingService/pkg/types"
)

// Понедельник
var monday = time.Date(2025, time.October, 13, 0, 0, 0, 0, time.UTC)

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
	candidates []*domain.ResourceAvailability
	blockedIDs []int64
}

func (f *fakeResourceRepo) FindCandidatesForSlot(_ context.Context, _ int64, dayOfWeek int, date time.Time, startTime, endTime types.TimeString) ([]*domain.ResourceAvailability, error) {
	requested := domain.TimeRange{Start: startTime, End: endTime}

	result := make([]*domain.ResourceAvailability, 0)
	for _, c := range f.candidates {
		if c.DayOfWeek == dayOfWeek && c.CoversDate(date) && c.Window().Covers(requested) {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f *fakeResourceRepo) FindBlockedResourceIDs(_ context.Context, _ int64, _ time.Time, _, _ types.TimeString) ([]int64, error) {
	return f.blockedIDs, nil
}

// fakeAppointmentRepo хранит созданные записи, поэтому последовательные
// аллокации видят занятые ресурсы. Вставка воспроизводит уникальный индекс
// по (ресурс, дата, начало) для BOOKED-записей
type fakeAppointmentRepo struct {
	mu           sync.Mutex
	created      []*domain.Appointment
	conflictOnce bool
	nextID       int64
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.conflictOnce {
		f.conflictOnce = false
		return nil, appointmentStorage.ErrConflict
	}
	for _, existing := range f.created {
		if existing.IsBooked() &&
			existing.ResourceAvailabilityID == appt.ResourceAvailabilityID &&
			existing.AppointmentDate.Equal(appt.AppointmentDate) &&
			existing.StartTime == appt.StartTime {
			return nil, appointmentStorage.ErrConflict
		}
	}
	f.nextID++
	created := *appt
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	f.created = append(f.created, &created)
	return &created, nil
}

func (f *fakeAppointmentRepo) FindBookedResourceIDs(_ context.Context, _ int64, date time.Time, startTime, endTime types.TimeString) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	requested := domain.TimeRange{Start: startTime, End: endTime}

	ids := make([]int64, 0)
	for _, appt := range f.created {
		if appt.AppointmentDate.Equal(date) && appt.IsBooked() && appt.Window().Overlaps(requested) {
			ids = append(ids, appt.ResourceAvailabilityID)
		}
	}
	return ids, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func defaultBranchRepo() *fakeBranchRepo {
	return &fakeBranchRepo{
		branch: &domain.Branch{ID: 1, TimeslotLength: 30},
		hours: []*domain.OperatingHours{
			{DayOfWeek: 1, OpeningTime: "09:00", ClosingTime: "17:00"},
		},
	}
}

func candidate(id int64, start, end string) *domain.ResourceAvailability {
	return &domain.ResourceAvailability{
		ID:        id,
		BranchID:  1,
		DayOfWeek: 1,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

func request(start string) *Request {
	return &Request{
		BranchID:  1,
		Date:      monday,
		StartTime: types.TimeString(start),
		Name:      "Иван Петров",
	}
}

func rangeRequest(start, end string) *Request {
	req := request(start)
	req.EndTime = types.TimeString(end)
	return req
}

func newTestUseCase(branchRepo *fakeBranchRepo, resourceRepo *fakeResourceRepo, appointmentRepo *fakeAppointmentRepo) *UseCase {
	return NewUseCase(branchRepo, resourceRepo, appointmentRepo, fakeTxManager{}, nopLogger{})
}

func TestExecute_BranchNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBranchRepo{}, &fakeResourceRepo{}, &fakeAppointmentRepo{})

	_, err := uc.Execute(context.Background(), request("09:00"))

	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestExecute_BranchClosedOnWeekday(t *testing.T) {
	branchRepo := defaultBranchRepo()
	branchRepo.hours = nil // филиал вообще не открыт

	uc := newTestUseCase(branchRepo, &fakeResourceRepo{}, &fakeAppointmentRepo{})

	_, err := uc.Execute(context.Background(), request("09:00"))

	assert.ErrorIs(t, err, ErrBranchClosed)
}

func TestExecute_SlotOutsideOperatingHours(t *testing.T) {
	uc := newTestUseCase(defaultBranchRepo(), &fakeResourceRepo{}, &fakeAppointmentRepo{})

	// 17:00 + 30 минут выходит за закрытие
	_, err := uc.Execute(context.Background(), request("17:00"))

	assert.ErrorIs(t, err, ErrBranchClosed)
}

func TestExecute_MisalignedStartTime(t *testing.T) {
	uc := newTestUseCase(defaultBranchRepo(), &fakeResourceRepo{}, &fakeAppointmentRepo{})

	_, err := uc.Execute(context.Background(), request("09:10"))

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_NoCandidates(t *testing.T) {
	uc := newTestUseCase(defaultBranchRepo(), &fakeResourceRepo{}, &fakeAppointmentRepo{})

	_, err := uc.Execute(context.Background(), request("09:00"))

	assert.ErrorIs(t, err, ErrNoAvailableResource)
}

func TestExecute_PartialCoverageIsNotEnough(t *testing.T) {
	// Окно ресурса пересекает запрошенный слот, но не покрывает целиком
	resourceRepo := &fakeResourceRepo{
		candidates: []*domain.ResourceAvailability{
			candidate(1, "09:15", "10:00"),
		},
	}
	uc := newTestUseCase(defaultBranchRepo(), resourceRepo, &fakeAppointmentRepo{})

	_, err := uc.Execute(context.Background(), request("09:00"))

	assert.ErrorIs(t, err, ErrNoAvailableResource)
}

func TestExecute_Success(t *testing.T) {
	resourceRepo := &fakeResourceRepo{
		candidates: []*domain.ResourceAvailability{
			candidate(7, "09:00", "17:00"),
		},
	}
	uc := newTestUseCase(defaultBranchRepo(), resourceRepo, &fakeAppointmentRepo{})

	resp, err := uc.Execute(context.Background(), request("09:00"))

	require.NoError(t, err)
	appt := resp.Appointment
	assert.Equal(t, domain.StatusBooked, appt.Status)
	assert.Equal(t, int64(7), appt.ResourceAvailabilityID)
	assert.Equal(t, "09:00", appt.StartTime.String())
	assert.Equal(t, "09:30", appt.EndTime.String())
	assert.False(t, appt.CreatedAt.IsZero())
}

func TestExecute_MultiSlotBooking(t *testing.T) {
	resourceRepo := &fakeResourceRepo{
		candidates: []*domain.ResourceAvailability{
			candidate(7, "09:00", "17:00"),
		},
	}
	appointmentRepo := &fakeAppointmentRepo{}
	uc := newTestUseCase(defaultBranchRepo(), resourceRepo, appointmentRepo)

	// Интервал в два слота на филиале с 30-минутной сеткой
	resp, err := uc.Execute(context.Background(), rangeRequest("09:00", "10:00"))

	require.NoError(t, err)
	assert.Equal(t, "09:00", resp.Appointment.StartTime.String())
	assert.Equal(t, "10:00", resp.Appointment.EndTime.String())

	// Оба накрытых слота заняты: одиночная запись на 09:30 не проходит
	_, err = uc.Execute(context.Background(), request("09:30"))
	assert.ErrorIs(t, err, ErrNoAvailableResource)

	// Слот сразу за интервалом свободен
	_, err = uc.Execute(context.Background(), request("10:00"))
	assert.NoError(t, err)
}

func TestExecute_EndBeforeStartRejected(t *testing.T) {
	uc := newTestUseCase(defaultBranchRepo(), &fakeResourceRepo{}, &fakeAppointmentRepo{})

	_, err := uc.Execute(context.Background(), rangeRequest("10:00", "09:00"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), rangeRequest("10:00", "10:00"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_MultiSlotOutsideOperatingHours(t *testing.T) {
	uc := newTestUseCase(defaultBranchRepo(), &fakeResourceRepo{}, &fakeAppointmentRepo{})

	// Начало на сетке, но конец выходит за закрытие в 17:00
	_, err := uc.Execute(context.Background(), rangeRequest("16:30", "17:30"))

	assert.ErrorIs(t, err, ErrBranchClosed)
}

func TestExecute_SkipsBlockedAndBookedResources(t *testing.T) {
	resourceRepo := &fakeResourceRepo{
		candidates: []*domain.ResourceAvailability{
			candidate(1, "09:00", "17:00"),
			candidate(2, "09:00", "17:00"),
			candidate(3, "09:00", "17:00"),
		},
		blockedIDs: []int64{1},
	}
	appointmentRepo := &fakeAppointmentRepo{}
	// Ресурс 2 уже занят пересекающейся записью
	appointmentRepo.created = append(appointmentRepo.created, &domain.Appointment{
		AppointmentDate:        monday,
		StartTime:              "09:00",
		EndTime:                "09:30",
		Status:                 domain.StatusBooked,
		ResourceAvailabilityID: 2,
	})

	uc := newTestUseCase(defaultBranchRepo(), resourceRepo, appointmentRepo)

	resp, err := uc.Execute(context.Background(), request("09:00"))

	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Appointment.ResourceAvailabilityID)
}

func TestExecute_SequentialAllocationsExhaustCapacity(t *testing.T) {
	resourceRepo := &fakeResourceRepo{
		candidates: []*domain.ResourceAvailability{
			candidate(1, "09:00", "17:00"),
		},
	}
	appointmentRepo := &fakeAppointmentRepo{}
	uc := newTestUseCase(defaultBranchRepo(), resourceRepo, appointmentRepo)

	// Первая аллокация занимает единственный ресурс
	first, err := uc.Execute(context.Background(), request("09:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Appointment.ResourceAvailabilityID)

	// Вторая на тот же слот уже не находит свободных
	_, err = uc.Execute(context.Background(), request("09:00"))
	assert.ErrorIs(t, err, ErrNoAvailableResource)

	// Непересекающийся слот по-прежнему доступен
	_, err = uc.Execute(context.Background(), request("09:30"))
	assert.NoError(t, err)
}

func TestExecute_ConflictTranslatedToNoAvailableResource(t *testing.T) {
	// Конкурент успел вставить запись между выборкой и вставкой -
	// конфликт уникальности не просачивается наружу как есть
	resourceRepo := &fakeResourceRepo{
		candidates: []*domain.ResourceAvailability{
			candidate(1, "09:00", "17:00"),
		},
	}
	appointmentRepo := &fakeAppointmentRepo{conflictOnce: true}
	uc := newTestUseCase(defaultBranchRepo(), resourceRepo, appointmentRepo)

	_, err := uc.Execute(context.Background(), request("09:00"))

	assert.ErrorIs(t, err, ErrNoAvailableResource)
}

func TestExecute_ConcurrentBookingsSingleWinner(t *testing.T) {
	resourceRepo := &fakeResourceRepo{
		candidates: []*domain.ResourceAvailability{
			candidate(1, "09:00", "17:00"),
		},
	}
	appointmentRepo := &fakeAppointmentRepo{}
	uc := newTestUseCase(defaultBranchRepo(), resourceRepo, appointmentRepo)

	// Два конкурирующих запроса на один и тот же слот единственного ресурса
	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), request("09:00"))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, exhausted int
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrNoAvailableResource)
		exhausted++
	}

	// Слот достается ровно одному, второй получает отказ
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, exhausted)
	assert.Len(t, appointmentRepo.created, 1)
}

func TestExecute_ValidatesInput(t *testing.T) {
	uc := newTestUseCase(defaultBranchRepo(), &fakeResourceRepo{}, &fakeAppointmentRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		BranchID:  1,
		Date:      monday,
		StartTime: "09:00",
		Name:      "", // имя обязательно
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
