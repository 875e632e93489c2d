package get_operating_hours

import (
	"context"

	"github.com/branchmaster/BM-BookingService/internal/service/branches/models"
)

type BranchService interface {
	GetOperatingHours(ctx context.Context, branchID int64) (*models.OperatingHoursListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
