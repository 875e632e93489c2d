package audit

import (
	"context"
	"encoding/json"
	"time"

	auditRepo "github.com/branchmaster/BM-BookingService/internal/infra/storage/audit"
)

// ActionType тип административного действия в журнале
type ActionType string

const (
	ActionOperatingHoursUpdated        ActionType = "OPERATING_HOURS_UPDATED"
	ActionCreateResourceAvailability   ActionType = "CREATE_RESOURCE_AVAILABILITY"
	ActionUpdateResourceAvailability   ActionType = "UPDATE_RESOURCE_AVAILABILITY"
	ActionDeleteResourceAvailability   ActionType = "DELETE_RESOURCE_AVAILABILITY"
	ActionCreateResourceUnavailability ActionType = "CREATE_RESOURCE_UNAVAILABILITY"
	ActionDeleteResourceUnavailability ActionType = "DELETE_RESOURCE_UNAVAILABILITY"
)

// AuditRepository интерфейс репозитория журнала
type AuditRepository interface {
	Create(ctx context.Context, entry *auditRepo.Entry) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Service журнал административных действий
// Запись ведётся best-effort: ошибка журнала логируется, но никогда
// не проваливает само административное действие
type Service struct {
	repo   AuditRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса журнала
func NewService(repo AuditRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Log записывает административное действие с произвольными параметрами
// (снимки до/после, идентификаторы) в виде JSON
func (s *Service) Log(ctx context.Context, staffID int64, actionType ActionType, params interface{}) {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		s.logger.Error("audit: failed to marshal params for action=%s: %v", actionType, err)
		return
	}

	entry := &auditRepo.Entry{
		StaffID:    staffID,
		ActionType: string(actionType),
		Params:     paramsJSON,
		CreatedAt:  time.Now(),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error("audit: failed to write audit entry for action=%s: %v", actionType, err)
	}
}
