package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/branchmaster/BM-BookingService/internal/domain"
	branchStorage "github.com/branchmaster/BM-BookingService/internal/infra/storage/branch"
)

// UseCase получение доступных слотов филиала за диапазон дат
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

// Execute выполняет расчет доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("Расчет доступности: branch_id=%d, start_date=%s, end_date=%s",
		req.BranchID, req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("Ошибка валидации запроса доступности: %v", err)
		return nil, err
	}

	// 2. Все выборки в одной read-only транзакции - расчет идет по единому
	// снимку данных, параллельные записи его не искажают
	var (
		branch           *domain.Branch
		operatingHours   []*domain.OperatingHours
		availabilities   []*domain.ResourceAvailability
		unavailabilities []*domain.ResourceUnavailability
		booked           []*domain.Appointment
	)

	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var txErr error

		// Филиал - длина слота берется из его настроек
		branch, txErr = uc.branchRepo.GetByID(txCtx, req.BranchID)
		if txErr != nil {
			if errors.Is(txErr, branchStorage.ErrBranchNotFound) {
				uc.logger.Warn("Филиал branch_id=%d не найден", req.BranchID)
				return fmt.Errorf("%w: branch_id=%d", ErrBranchNotFound, req.BranchID)
			}
			uc.logger.Error("Ошибка получения филиала branch_id=%d: %v", req.BranchID, txErr)
			return fmt.Errorf("%w: failed to get branch: %v", ErrInternal, txErr)
		}

		// Часы работы на неделю (только открытые дни)
		operatingHours, txErr = uc.branchRepo.GetOpenOperatingHours(txCtx, req.BranchID)
		if txErr != nil {
			uc.logger.Error("Ошибка получения часов работы branch_id=%d: %v", req.BranchID, txErr)
			return fmt.Errorf("%w: failed to get operating hours: %v", ErrInternal, txErr)
		}

		// Три выборки за весь диапазон разом, чтобы не ходить в базу на каждый день
		availabilities, txErr = uc.resourceRepo.GetAvailabilitiesForRange(txCtx, req.BranchID, req.StartDate, req.EndDate)
		if txErr != nil {
			uc.logger.Error("Ошибка получения окон ресурсов branch_id=%d: %v", req.BranchID, txErr)
			return fmt.Errorf("%w: failed to get resource availabilities: %v", ErrInternal, txErr)
		}

		unavailabilities, txErr = uc.resourceRepo.GetUnavailabilityForRange(txCtx, req.BranchID, req.StartDate, req.EndDate)
		if txErr != nil {
			uc.logger.Error("Ошибка получения блокировок ресурсов branch_id=%d: %v", req.BranchID, txErr)
			return fmt.Errorf("%w: failed to get resource unavailability: %v", ErrInternal, txErr)
		}

		booked, txErr = uc.appointmentRepo.FindBookedForRange(txCtx, req.BranchID, req.StartDate, req.EndDate)
		if txErr != nil {
			uc.logger.Error("Ошибка получения записей branch_id=%d: %v", req.BranchID, txErr)
			return fmt.Errorf("%w: failed to get booked appointments: %v", ErrInternal, txErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// 5. Считаем емкость по дням. Дни без часов работы и дни без единого
	// слота в ответ не попадают
	days := make([]DayAvailability, 0)
	for date := dateOnly(req.StartDate); !date.After(dateOnly(req.EndDate)); date = date.AddDate(0, 0, 1) {
		hours := hoursForDate(operatingHours, date)
		if hours == nil {
			continue
		}

		capacity := aggregateDayCapacity(date, hours, branch.TimeslotLength, availabilities, booked, unavailabilities)
		timeslots := renderTimeslots(capacity, branch.TimeslotLength)
		if len(timeslots) == 0 {
			continue
		}

		days = append(days, DayAvailability{
			Date:      date,
			Timeslots: timeslots,
		})
	}

	uc.logger.Info("Доступность рассчитана: branch_id=%d, дней с доступностью %d", req.BranchID, len(days))

	return &Response{
		BranchID: branch.ID,
		Days:     days,
	}, nil
}

// dateOnly обрезает время, оставляя только дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
