package resources

import (
	"context"

	"github.com/branchmaster/BM-BookingService/internal/audit"
	"github.com/branchmaster/BM-BookingService/internal/domain"
)

// BranchRepository интерфейс репозитория филиалов
type BranchRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Branch, error)
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	GetAvailabilitiesByBranchID(ctx context.Context, branchID int64) ([]*domain.ResourceAvailability, error)
	GetAvailabilityByID(ctx context.Context, id int64) (*domain.ResourceAvailability, error)
	CreateAvailability(ctx context.Context, availability *domain.ResourceAvailability) (*domain.ResourceAvailability, error)
	UpdateAvailability(ctx context.Context, availability *domain.ResourceAvailability) error
	DeleteAvailability(ctx context.Context, id int64) error

	GetUnavailabilityByBranchID(ctx context.Context, branchID int64) ([]*domain.ResourceUnavailability, error)
	GetUnavailabilityByID(ctx context.Context, id int64) (*domain.ResourceUnavailability, error)
	CreateUnavailability(ctx context.Context, unavailability *domain.ResourceUnavailability) (*domain.ResourceUnavailability, error)
	DeleteUnavailability(ctx context.Context, id int64) error
}

// AuditLog журнал административных действий
type AuditLog interface {
	Log(ctx context.Context, staffID int64, actionType audit.ActionType, params interface{})
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
