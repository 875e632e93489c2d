package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/branchmaster/BM-BookingService/internal/domain"
	appointmentRepo "github.com/branchmaster/BM-BookingService/internal/infra/storage/appointment"
	"github.com/branchmaster/BM-BookingService/internal/service/appointments/models"
)

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appointment), nil
}

// GetForBranchDay получает BOOKED-записи филиала на конкретный день
func (s *Service) GetForBranchDay(ctx context.Context, branchID int64, date time.Time) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetForBranchDay: fetching appointments for branch=%d, date=%s", branchID, date.Format(domain.DateFormat))

	if branchID <= 0 {
		return nil, fmt.Errorf("%w: branch_id must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.FindBookedForDate(ctx, branchID, date)
	if err != nil {
		s.logger.Error("GetForBranchDay: repository error for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: GetForBranchDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetForBranchDay: fetched %d appointments for branch=%d", len(appointments), branchID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel переводит запись в статус USER_CANCELLED
//
// Проверка статуса и смена идут в одной транзакции с блокировкой строки,
// чтобы двойная отмена не прошла дважды. Запись не удаляется - история
// сохраняется, а ёмкость слота пересчитывается заново при каждом чтении
func (s *Service) Cancel(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: appointment id must be positive", ErrInvalidInput)
	}

	var cancelled *domain.Appointment

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, txErr := s.appointmentRepo.GetByID(txCtx, id)
		if txErr != nil {
			if errors.Is(txErr, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, txErr)
		}

		if !appointment.CanBeCancelled() {
			return fmt.Errorf("%w: appointment id=%d has status %s", ErrInvalidState, id, appointment.Status)
		}

		if txErr := s.appointmentRepo.UpdateStatus(txCtx, id, domain.StatusUserCancelled); txErr != nil {
			return fmt.Errorf("%w: Cancel - failed to update status: %v", ErrInternal, txErr)
		}

		appointment.Status = domain.StatusUserCancelled
		cancelled = appointment
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", id)
		} else if errors.Is(err, ErrInvalidState) {
			s.logger.Warn("Cancel: appointment id=%d is not cancellable: %v", id, err)
		} else {
			s.logger.Error("Cancel: failed to cancel appointment id=%d: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("Cancel: appointment id=%d cancelled", id)
	return models.FromDomainAppointment(cancelled), nil
}
