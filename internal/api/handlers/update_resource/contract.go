package update_resource

import (
	"context"

	"github.com/branchmaster/BM-BookingService/internal/service/resources/models"
)

type ResourceService interface {
	UpdateAvailability(ctx context.Context, staffID, branchID, resourceID int64, req *models.SaveAvailabilityRequest) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
