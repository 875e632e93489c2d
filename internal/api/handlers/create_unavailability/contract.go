package create_unavailability

import (
	"context"

	"github.com/branchmaster/BM-BookingService/internal/service/resources/models"
)

type ResourceService interface {
	CreateUnavailability(ctx context.Context, staffID, branchID int64, req *models.CreateUnavailabilityRequest) (*models.UnavailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
