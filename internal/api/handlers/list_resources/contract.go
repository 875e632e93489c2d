package list_resources

import (
	"context"

	"github.com/branchmaster/BM-BookingService/internal/service/resources/models"
)

type ResourceService interface {
	List(ctx context.Context, branchID int64) (*models.ResourceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
