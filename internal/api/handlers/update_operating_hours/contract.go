package update_operating_hours

import (
	"context"

	"github.com/branchmaster/BM-BookingService/internal/service/branches/models"
)

type BranchService interface {
	UpdateOperatingHours(ctx context.Context, staffID, branchID, operatingHoursID int64, req *models.UpdateOperatingHoursRequest) (*models.OperatingHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
