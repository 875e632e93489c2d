package branches

import (
	"context"

	"github.com/branchmaster/BM-BookingService/internal/audit"
	"github.com/branchmaster/BM-BookingService/internal/domain"
)

// BranchRepository интерфейс репозитория филиалов
type BranchRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Branch, error)
	GetAllActive(ctx context.Context) ([]*domain.Branch, error)
	GetOperatingHours(ctx context.Context, branchID int64) ([]*domain.OperatingHours, error)
	GetOperatingHoursByID(ctx context.Context, id int64) (*domain.OperatingHours, error)
	UpdateOperatingHours(ctx context.Context, hours *domain.OperatingHours) error
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
