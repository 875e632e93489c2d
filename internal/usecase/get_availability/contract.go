package get_availability

import (
	"context"
	"time"

	"github.com/branchmaster/BM-BookingService/internal/domain"
)

// BranchRepository интерфейс репозитория филиалов
type BranchRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Branch, error)
	// GetOpenOperatingHours возвращает часы работы на неделю, только открытые дни
	GetOpenOperatingHours(ctx context.Context, branchID int64) ([]*domain.OperatingHours, error)
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	GetAvailabilitiesForRange(ctx context.Context, branchID int64, startDate, endDate time.Time) ([]*domain.ResourceAvailability, error)
	GetUnavailabilityForRange(ctx context.Context, branchID int64, startDate, endDate time.Time) ([]*domain.ResourceUnavailability, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	FindBookedForRange(ctx context.Context, branchID int64, startDate, endDate time.Time) ([]*domain.Appointment, error)
}

// TransactionManager выполняет колбэк в read-only транзакции, чтобы
// все выборки расчета видели один снимок данных
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
