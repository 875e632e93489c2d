package create_appointment

import (
	"context"
	"time"

	"github.com/branchmaster/BM-BookingService/internal/domain"
	"github.com/branchmaster/BM-BookingService/pkg/types"
)

// BranchRepository интерфейс репозитория филиалов
type BranchRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Branch, error)
	GetOpenOperatingHours(ctx context.Context, branchID int64) ([]*domain.OperatingHours, error)
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	// FindCandidatesForSlot возвращает окна ресурсов, полностью покрывающие
	// запрошенный интервал, по возрастанию id. Внутри транзакции строки
	// блокируются (FOR UPDATE)
	FindCandidatesForSlot(ctx context.Context, branchID int64, dayOfWeek int, date time.Time, startTime, endTime types.TimeString) ([]*domain.ResourceAvailability, error)
	// FindBlockedResourceIDs возвращает id ресурсов, заблокированных на дату
	// пересекающейся или суточной блокировкой
	FindBlockedResourceIDs(ctx context.Context, branchID int64, date time.Time, startTime, endTime types.TimeString) ([]int64, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	// FindBookedResourceIDs возвращает id ресурсов, уже занятых BOOKED-записью,
	// пересекающейся с интервалом на дату
	FindBookedResourceIDs(ctx context.Context, branchID int64, date time.Time, startTime, endTime types.TimeString) ([]int64, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
