package branches

import (
	"context"
	"errors"
	"fmt"

	"github.com/branchmaster/BM-BookingService/internal/audit"
	"github.com/branchmaster/BM-BookingService/internal/domain"
	branchRepo "github.com/branchmaster/BM-BookingService/internal/infra/storage/branch"
	"github.com/branchmaster/BM-BookingService/internal/service/branches/models"
	"github.com/branchmaster/BM-BookingService/pkg/types"
)

// Service сервис для работы с филиалами и их часами работы
type Service struct {
	branchRepo BranchRepository
	auditLog   AuditLog
	logger     Logger
}

// NewService создает новый экземпляр сервиса филиалов
func NewService(
	branchRepo BranchRepository,
	auditLog AuditLog,
	logger Logger,
) *Service {
	return &Service{
		branchRepo: branchRepo,
		auditLog:   auditLog,
		logger:     logger,
	}
}

// ListActive получает список активных филиалов
func (s *Service) ListActive(ctx context.Context) (*models.BranchListResponse, error) {
	s.logger.Info("ListActive: fetching active branches")

	branches, err := s.branchRepo.GetAllActive(ctx)
	if err != nil {
		s.logger.Error("ListActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListActive: fetched %d branches", len(branches))
	return models.FromDomainBranchList(branches), nil
}

// GetOperatingHours получает часы работы филиала на всю неделю,
// включая закрытые дни
func (s *Service) GetOperatingHours(ctx context.Context, branchID int64) (*models.OperatingHoursListResponse, error) {
	s.logger.Info("GetOperatingHours: fetching operating hours for branch=%d", branchID)

	if branchID <= 0 {
		return nil, fmt.Errorf("%w: branch_id must be positive", ErrInvalidInput)
	}

	if _, err := s.branchRepo.GetByID(ctx, branchID); err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			s.logger.Warn("GetOperatingHours: branch=%d not found", branchID)
			return nil, ErrBranchNotFound
		}
		s.logger.Error("GetOperatingHours: repository error for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: GetOperatingHours - repository error: %v", ErrInternal, err)
	}

	hours, err := s.branchRepo.GetOperatingHours(ctx, branchID)
	if err != nil {
		s.logger.Error("GetOperatingHours: repository error for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: GetOperatingHours - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOperatingHoursList(hours), nil
}

// UpdateOperatingHours обновляет часы работы одного дня недели
// Действие пишется в журнал со снимками до и после
func (s *Service) UpdateOperatingHours(ctx context.Context, staffID, branchID, operatingHoursID int64, req *models.UpdateOperatingHoursRequest) (*models.OperatingHoursResponse, error) {
	s.logger.Info("UpdateOperatingHours: staff=%d updating hours id=%d for branch=%d", staffID, operatingHoursID, branchID)

	// 1. Существующая запись должна принадлежать указанному филиалу
	existing, err := s.branchRepo.GetOperatingHoursByID(ctx, operatingHoursID)
	if err != nil {
		if errors.Is(err, branchRepo.ErrOperatingHoursNotFound) {
			s.logger.Warn("UpdateOperatingHours: hours id=%d not found", operatingHoursID)
			return nil, ErrOperatingHoursNotFound
		}
		s.logger.Error("UpdateOperatingHours: repository error for hours id=%d: %v", operatingHoursID, err)
		return nil, fmt.Errorf("%w: UpdateOperatingHours - repository error: %v", ErrInternal, err)
	}
	if existing.BranchID != branchID {
		s.logger.Warn("UpdateOperatingHours: hours id=%d belongs to branch=%d, not branch=%d", operatingHoursID, existing.BranchID, branchID)
		return nil, ErrOperatingHoursNotFound
	}

	// 2. Валидация нового расписания
	updated := &domain.OperatingHours{
		ID:        existing.ID,
		BranchID:  existing.BranchID,
		DayOfWeek: existing.DayOfWeek,
		Closed:    req.Closed,
	}
	if !req.Closed {
		opening, err := types.NewTimeStringFromString(req.OpeningTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid openingTime: %v", ErrInvalidInput, err)
		}
		closing, err := types.NewTimeStringFromString(req.ClosingTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid closingTime: %v", ErrInvalidInput, err)
		}
		if !closing.IsAfter(opening) {
			return nil, fmt.Errorf("%w: closingTime must be after openingTime", ErrInvalidInput)
		}
		updated.OpeningTime = opening
		updated.ClosingTime = closing
	}

	// 3. Обновление
	if err := s.branchRepo.UpdateOperatingHours(ctx, updated); err != nil {
		if errors.Is(err, branchRepo.ErrOperatingHoursNotFound) {
			return nil, ErrOperatingHoursNotFound
		}
		s.logger.Error("UpdateOperatingHours: failed to update hours id=%d: %v", operatingHoursID, err)
		return nil, fmt.Errorf("%w: UpdateOperatingHours - repository error: %v", ErrInternal, err)
	}

	// 4. Журнал: снимки до и после
	s.auditLog.Log(ctx, staffID, audit.ActionOperatingHoursUpdated, map[string]interface{}{
		"branchId": branchID,
		"before":   models.FromDomainOperatingHours(existing),
		"after":    models.FromDomainOperatingHours(updated),
	})

	s.logger.Info("UpdateOperatingHours: hours id=%d updated by staff=%d", operatingHoursID, staffID)
	return models.FromDomainOperatingHours(updated), nil
}
