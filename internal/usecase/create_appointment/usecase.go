package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/branchmaster/BM-BookingService/internal/domain"
	appointmentStorage "github.com/branchmaster/BM-BookingService/internal/infra/storage/appointment"
	branchStorage "github.com/branchmaster/BM-BookingService/internal/infra/storage/branch"
	"github.com/branchmaster/BM-BookingService/pkg/txmanager"
	"github.com/branchmaster/BM-BookingService/pkg/types"
)

// UseCase создание записи с атомарным выбором свободного ресурса
type UseCase struct {
	branchRepo      BranchRepository
	resourceRepo    ResourceRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр usecase
func NewUseCase(
	branchRepo BranchRepository,
	resourceRepo ResourceRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		branchRepo:      branchRepo,
		resourceRepo:    resourceRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет создание записи
//
// Выбор ресурса и вставка записи идут в одной serializable-транзакции с
// блокировкой строк-кандидатов, поэтому два конкурирующих запроса на один
// и тот же интервал не могут занять один ресурс дважды
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("Создание записи: branch_id=%d, date=%s, start_time=%s",
		req.BranchID, req.Date.Format("2006-01-02"), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("Ошибка валидации запроса на создание записи: %v", err)
		return nil, err
	}

	date := dateOnly(req.Date)

	var created *domain.Appointment

	// 2. Аллокация ресурса и вставка записи атомарно
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appointment, txErr := uc.allocateAndCreate(txCtx, req, date)
		if txErr != nil {
			return txErr
		}
		created = appointment
		return nil
	})
	if err != nil {
		// Конфликт сериализации после исчерпания повторов означает, что
		// конкурент успел занять ресурс - для клиента это отсутствие свободных
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("Конфликт сериализации при создании записи branch_id=%d: %v", req.BranchID, err)
			return nil, fmt.Errorf("%w: concurrent booking won the slot", ErrNoAvailableResource)
		}
		return nil, err
	}

	uc.logger.Info("Запись создана: appointment_id=%d, resource_availability_id=%d",
		created.ID, created.ResourceAvailabilityID)

	return &Response{Appointment: created}, nil
}

// allocateAndCreate выполняет шаги аллокации внутри транзакции
func (uc *UseCase) allocateAndCreate(ctx context.Context, req *Request, date time.Time) (*domain.Appointment, error) {
	// 1. Филиал и длина слота
	branch, err := uc.branchRepo.GetByID(ctx, req.BranchID)
	if err != nil {
		if errors.Is(err, branchStorage.ErrBranchNotFound) {
			uc.logger.Warn("Филиал branch_id=%d не найден", req.BranchID)
			return nil, fmt.Errorf("%w: branch_id=%d", ErrBranchNotFound, req.BranchID)
		}
		uc.logger.Error("Ошибка получения филиала branch_id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	// Конец интервала клиент может не передавать - тогда бронируется один слот
	endTime := req.EndTime
	if endTime.IsZero() {
		endTime, err = req.StartTime.AddMinutes(branch.TimeslotLength)
		if err != nil {
			return nil, fmt.Errorf("%w: slot end is out of day bounds: %v", ErrInvalidInput, err)
		}
	}

	// 2. Интервал должен лежать внутри часов работы, а его начало - на сетке филиала
	if err := uc.checkOperatingHours(ctx, branch, date, req.StartTime, endTime); err != nil {
		return nil, err
	}

	dayOfWeek := int(date.Weekday())

	// 3. Кандидаты: окна, полностью покрывающие интервал, с блокировкой строк
	candidates, err := uc.resourceRepo.FindCandidatesForSlot(ctx, req.BranchID, dayOfWeek, date, req.StartTime, endTime)
	if err != nil {
		uc.logger.Error("Ошибка поиска кандидатов branch_id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to find candidate resources: %v", ErrInternal, err)
	}
	if len(candidates) == 0 {
		uc.logger.Warn("Нет окон ресурсов под интервал: branch_id=%d, date=%s, %s-%s",
			req.BranchID, date.Format("2006-01-02"), req.StartTime, endTime)
		return nil, fmt.Errorf("%w: no resource covers the requested slot", ErrNoAvailableResource)
	}

	// 4. Исключаем заблокированные и уже занятые ресурсы
	blockedIDs, err := uc.resourceRepo.FindBlockedResourceIDs(ctx, req.BranchID, date, req.StartTime, endTime)
	if err != nil {
		uc.logger.Error("Ошибка поиска блокировок branch_id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to find blocked resources: %v", ErrInternal, err)
	}

	bookedIDs, err := uc.appointmentRepo.FindBookedResourceIDs(ctx, req.BranchID, date, req.StartTime, endTime)
	if err != nil {
		uc.logger.Error("Ошибка поиска занятых ресурсов branch_id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to find booked resources: %v", ErrInternal, err)
	}

	excluded := make(map[int64]struct{}, len(blockedIDs)+len(bookedIDs))
	for _, id := range blockedIDs {
		excluded[id] = struct{}{}
	}
	for _, id := range bookedIDs {
		excluded[id] = struct{}{}
	}

	// 5. Первый свободный кандидат (по возрастанию id)
	var chosen *domain.ResourceAvailability
	for _, candidate := range candidates {
		if _, ok := excluded[candidate.ID]; !ok {
			chosen = candidate
			break
		}
	}
	if chosen == nil {
		uc.logger.Warn("Все кандидаты исключены: branch_id=%d, date=%s, %s-%s",
			req.BranchID, date.Format("2006-01-02"), req.StartTime, endTime)
		return nil, fmt.Errorf("%w: all candidate resources are taken", ErrNoAvailableResource)
	}

	// 6. Вставка BOOKED-записи. Частичный уникальный индекс - последний рубеж:
	// конкурент, проскочивший до нас, даст конфликт уникальности
	appointment := &domain.Appointment{
		BranchID:               req.BranchID,
		AppointmentDate:        date,
		StartTime:              req.StartTime,
		EndTime:                endTime,
		Status:                 domain.StatusBooked,
		ResourceAvailabilityID: chosen.ID,
		Name:                   req.Name,
		Email:                  req.Email,
		PhoneNumber:            req.PhoneNumber,
		Reason:                 req.Reason,
	}

	created, err := uc.appointmentRepo.Create(ctx, appointment)
	if err != nil {
		if errors.Is(err, appointmentStorage.ErrConflict) {
			uc.logger.Warn("Конфликт уникальности при вставке записи: resource_availability_id=%d", chosen.ID)
			return nil, fmt.Errorf("%w: resource was taken concurrently", ErrNoAvailableResource)
		}
		uc.logger.Error("Ошибка вставки записи branch_id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}

	return created, nil
}

// checkOperatingHours проверяет, что интервал лежит внутри часов работы
// и начало выровнено на сетку слотов филиала
func (uc *UseCase) checkOperatingHours(ctx context.Context, branch *domain.Branch, date time.Time, startTime, endTime types.TimeString) error {
	operatingHours, err := uc.branchRepo.GetOpenOperatingHours(ctx, branch.ID)
	if err != nil {
		uc.logger.Error("Ошибка получения часов работы branch_id=%d: %v", branch.ID, err)
		return fmt.Errorf("%w: failed to get operating hours: %v", ErrInternal, err)
	}

	dayOfWeek := int(date.Weekday())

	var hours *domain.OperatingHours
	for _, oh := range operatingHours {
		if oh.DayOfWeek == dayOfWeek && !oh.Closed {
			hours = oh
			break
		}
	}
	if hours == nil {
		return fmt.Errorf("%w: branch_id=%d is closed on %s", ErrBranchClosed, branch.ID, date.Format("2006-01-02"))
	}

	requested := domain.TimeRange{Start: startTime, End: endTime}
	if !hours.Window().Covers(requested) {
		return fmt.Errorf("%w: slot %s-%s is outside operating hours %s-%s",
			ErrBranchClosed, startTime, endTime, hours.OpeningTime, hours.ClosingTime)
	}

	if (startTime.Minutes()-hours.OpeningTime.Minutes())%branch.TimeslotLength != 0 {
		return fmt.Errorf("%w: start_time %s is not aligned to the %d-minute slot grid",
			ErrInvalidInput, startTime, branch.TimeslotLength)
	}

	return nil
}

// dateOnly обрезает время, оставляя только дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
