package resources

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/branchmaster/BM-BookingService/internal/audit"
	"github.com/branchmaster/BM-BookingService/internal/domain"
	branchRepo "github.com/branchmaster/BM-BookingService/internal/infra/storage/branch"
	resourceRepo "github.com/branchmaster/BM-BookingService/internal/infra/storage/resource"
	"github.com/branchmaster/BM-BookingService/internal/service/resources/models"
	"github.com/branchmaster/BM-BookingService/pkg/types"
)

// Service сервис управления окнами ресурсов и их блокировками
type Service struct {
	branchRepo   BranchRepository
	resourceRepo ResourceRepository
	auditLog     AuditLog
	logger       Logger
}

// NewService создает новый экземпляр сервиса ресурсов
func NewService(
	branchRepo BranchRepository,
	resourceRepo ResourceRepository,
	auditLog AuditLog,
	logger Logger,
) *Service {
	return &Service{
		branchRepo:   branchRepo,
		resourceRepo: resourceRepo,
		auditLog:     auditLog,
		logger:       logger,
	}
}

// List получает окна ресурсов филиала вместе с блокировками
func (s *Service) List(ctx context.Context, branchID int64) (*models.ResourceListResponse, error) {
	s.logger.Info("List: fetching resources for branch=%d", branchID)

	if err := s.checkBranch(ctx, branchID); err != nil {
		return nil, err
	}

	availabilities, err := s.resourceRepo.GetAvailabilitiesByBranchID(ctx, branchID)
	if err != nil {
		s.logger.Error("List: repository error for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	unavailabilities, err := s.resourceRepo.GetUnavailabilityByBranchID(ctx, branchID)
	if err != nil {
		s.logger.Error("List: repository error for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d resources, %d blocks for branch=%d", len(availabilities), len(unavailabilities), branchID)
	return models.FromDomainResourceLists(availabilities, unavailabilities), nil
}

// CreateAvailability создает новое окно ресурса
func (s *Service) CreateAvailability(ctx context.Context, staffID, branchID int64, req *models.SaveAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("CreateAvailability: staff=%d creating resource for branch=%d", staffID, branchID)

	if err := s.checkBranch(ctx, branchID); err != nil {
		return nil, err
	}

	availability, err := buildAvailability(branchID, req)
	if err != nil {
		s.logger.Warn("CreateAvailability: validation failed for branch=%d: %v", branchID, err)
		return nil, err
	}

	created, err := s.resourceRepo.CreateAvailability(ctx, availability)
	if err != nil {
		s.logger.Error("CreateAvailability: repository error for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: CreateAvailability - repository error: %v", ErrInternal, err)
	}

	s.auditLog.Log(ctx, staffID, audit.ActionCreateResourceAvailability, map[string]interface{}{
		"branchId": branchID,
		"resource": models.FromDomainAvailability(created),
	})

	s.logger.Info("CreateAvailability: resource id=%d created for branch=%d by staff=%d", created.ID, branchID, staffID)
	return models.FromDomainAvailability(created), nil
}

// UpdateAvailability обновляет окно ресурса
func (s *Service) UpdateAvailability(ctx context.Context, staffID, branchID, resourceID int64, req *models.SaveAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("UpdateAvailability: staff=%d updating resource id=%d for branch=%d", staffID, resourceID, branchID)

	existing, err := s.getBranchAvailability(ctx, branchID, resourceID)
	if err != nil {
		return nil, err
	}

	updated, err := buildAvailability(branchID, req)
	if err != nil {
		s.logger.Warn("UpdateAvailability: validation failed for resource id=%d: %v", resourceID, err)
		return nil, err
	}
	updated.ID = existing.ID

	if err := s.resourceRepo.UpdateAvailability(ctx, updated); err != nil {
		if errors.Is(err, resourceRepo.ErrAvailabilityNotFound) {
			return nil, ErrResourceNotFound
		}
		s.logger.Error("UpdateAvailability: repository error for resource id=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: UpdateAvailability - repository error: %v", ErrInternal, err)
	}

	s.auditLog.Log(ctx, staffID, audit.ActionUpdateResourceAvailability, map[string]interface{}{
		"branchId": branchID,
		"before":   models.FromDomainAvailability(existing),
		"after":    models.FromDomainAvailability(updated),
	})

	s.logger.Info("UpdateAvailability: resource id=%d updated by staff=%d", resourceID, staffID)
	return models.FromDomainAvailability(updated), nil
}

// DeleteAvailability удаляет окно ресурса
func (s *Service) DeleteAvailability(ctx context.Context, staffID, branchID, resourceID int64) error {
	s.logger.Info("DeleteAvailability: staff=%d deleting resource id=%d for branch=%d", staffID, resourceID, branchID)

	existing, err := s.getBranchAvailability(ctx, branchID, resourceID)
	if err != nil {
		return err
	}

	if err := s.resourceRepo.DeleteAvailability(ctx, resourceID); err != nil {
		if errors.Is(err, resourceRepo.ErrAvailabilityNotFound) {
			return ErrResourceNotFound
		}
		s.logger.Error("DeleteAvailability: repository error for resource id=%d: %v", resourceID, err)
		return fmt.Errorf("%w: DeleteAvailability - repository error: %v", ErrInternal, err)
	}

	s.auditLog.Log(ctx, staffID, audit.ActionDeleteResourceAvailability, map[string]interface{}{
		"branchId": branchID,
		"resource": models.FromDomainAvailability(existing),
	})

	s.logger.Info("DeleteAvailability: resource id=%d deleted by staff=%d", resourceID, staffID)
	return nil
}

// CreateUnavailability создает блокировку ресурса
func (s *Service) CreateUnavailability(ctx context.Context, staffID, branchID int64, req *models.CreateUnavailabilityRequest) (*models.UnavailabilityResponse, error) {
	s.logger.Info("CreateUnavailability: staff=%d creating block for resource id=%d, branch=%d", staffID, req.ResourceAvailabilityID, branchID)

	// Блокировка привязана к конкретному окну ресурса этого филиала
	if _, err := s.getBranchAvailability(ctx, branchID, req.ResourceAvailabilityID); err != nil {
		return nil, err
	}

	unavailability, err := buildUnavailability(branchID, req)
	if err != nil {
		s.logger.Warn("CreateUnavailability: validation failed for branch=%d: %v", branchID, err)
		return nil, err
	}

	created, err := s.resourceRepo.CreateUnavailability(ctx, unavailability)
	if err != nil {
		s.logger.Error("CreateUnavailability: repository error for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: CreateUnavailability - repository error: %v", ErrInternal, err)
	}

	s.auditLog.Log(ctx, staffID, audit.ActionCreateResourceUnavailability, map[string]interface{}{
		"branchId": branchID,
		"block":    models.FromDomainUnavailability(created),
	})

	s.logger.Info("CreateUnavailability: block id=%d created by staff=%d", created.ID, staffID)
	return models.FromDomainUnavailability(created), nil
}

// DeleteUnavailability удаляет блокировку ресурса
func (s *Service) DeleteUnavailability(ctx context.Context, staffID, branchID, unavailabilityID int64) error {
	s.logger.Info("DeleteUnavailability: staff=%d deleting block id=%d for branch=%d", staffID, unavailabilityID, branchID)

	existing, err := s.resourceRepo.GetUnavailabilityByID(ctx, unavailabilityID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrUnavailabilityNotFound) {
			s.logger.Warn("DeleteUnavailability: block id=%d not found", unavailabilityID)
			return ErrUnavailabilityNotFound
		}
		s.logger.Error("DeleteUnavailability: repository error for block id=%d: %v", unavailabilityID, err)
		return fmt.Errorf("%w: DeleteUnavailability - repository error: %v", ErrInternal, err)
	}
	if existing.BranchID != branchID {
		s.logger.Warn("DeleteUnavailability: block id=%d belongs to branch=%d, not branch=%d", unavailabilityID, existing.BranchID, branchID)
		return ErrUnavailabilityNotFound
	}

	if err := s.resourceRepo.DeleteUnavailability(ctx, unavailabilityID); err != nil {
		if errors.Is(err, resourceRepo.ErrUnavailabilityNotFound) {
			return ErrUnavailabilityNotFound
		}
		s.logger.Error("DeleteUnavailability: repository error for block id=%d: %v", unavailabilityID, err)
		return fmt.Errorf("%w: DeleteUnavailability - repository error: %v", ErrInternal, err)
	}

	s.auditLog.Log(ctx, staffID, audit.ActionDeleteResourceUnavailability, map[string]interface{}{
		"branchId": branchID,
		"block":    models.FromDomainUnavailability(existing),
	})

	s.logger.Info("DeleteUnavailability: block id=%d deleted by staff=%d", unavailabilityID, staffID)
	return nil
}

// checkBranch проверяет существование филиала
func (s *Service) checkBranch(ctx context.Context, branchID int64) error {
	if branchID <= 0 {
		return fmt.Errorf("%w: branch_id must be positive", ErrInvalidInput)
	}
	if _, err := s.branchRepo.GetByID(ctx, branchID); err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			s.logger.Warn("branch=%d not found", branchID)
			return ErrBranchNotFound
		}
		s.logger.Error("failed to check branch=%d: %v", branchID, err)
		return fmt.Errorf("%w: failed to check branch: %v", ErrInternal, err)
	}
	return nil
}

// getBranchAvailability возвращает окно ресурса, убеждаясь, что оно
// принадлежит указанному филиалу
func (s *Service) getBranchAvailability(ctx context.Context, branchID, resourceID int64) (*domain.ResourceAvailability, error) {
	availability, err := s.resourceRepo.GetAvailabilityByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrAvailabilityNotFound) {
			s.logger.Warn("resource id=%d not found", resourceID)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("repository error for resource id=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	if availability.BranchID != branchID {
		s.logger.Warn("resource id=%d belongs to branch=%d, not branch=%d", resourceID, availability.BranchID, branchID)
		return nil, ErrResourceNotFound
	}
	return availability, nil
}

// buildAvailability валидирует запрос и собирает domain модель окна ресурса
func buildAvailability(branchID int64, req *models.SaveAvailabilityRequest) (*domain.ResourceAvailability, error) {
	if req.DayOfWeek < domain.MinDayOfWeek || req.DayOfWeek > domain.MaxDayOfWeek {
		return nil, fmt.Errorf("%w: dayOfWeek must be between %d and %d", ErrInvalidInput, domain.MinDayOfWeek, domain.MaxDayOfWeek)
	}
	if len(req.Name) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	endTime, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	if !endTime.IsAfter(startTime) {
		return nil, fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}

	startDate, err := parseDatePtr(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startDate: %v", ErrInvalidInput, err)
	}
	endDate, err := parseDatePtr(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endDate: %v", ErrInvalidInput, err)
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	return &domain.ResourceAvailability{
		BranchID:  branchID,
		DayOfWeek: req.DayOfWeek,
		StartTime: startTime,
		EndTime:   endTime,
		StartDate: startDate,
		EndDate:   endDate,
		Name:      req.Name,
	}, nil
}

// buildUnavailability валидирует запрос и собирает domain модель блокировки
// Оба времени должны быть либо заданы вместе, либо отсутствовать вместе
func buildUnavailability(branchID int64, req *models.CreateUnavailabilityRequest) (*domain.ResourceUnavailability, error) {
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date: %v", ErrInvalidInput, err)
	}
	if len(req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	if (req.StartTime == nil) != (req.EndTime == nil) {
		return nil, fmt.Errorf("%w: startTime and endTime must be both set or both omitted", ErrInvalidInput)
	}

	unavailability := &domain.ResourceUnavailability{
		AvailableResourceID: req.ResourceAvailabilityID,
		BranchID:            branchID,
		Date:                date,
		Reason:              req.Reason,
	}

	if req.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*req.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
		}
		endTime, err := types.NewTimeStringFromString(*req.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
		}
		if !endTime.IsAfter(startTime) {
			return nil, fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
		}
		unavailability.StartTime = &startTime
		unavailability.EndTime = &endTime
	}

	return unavailability, nil
}

// parseDatePtr парсит опциональную дату
func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(domain.DateFormat, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
