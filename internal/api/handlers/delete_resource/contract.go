package delete_resource

import (
	"context"
)

type ResourceService interface {
	DeleteAvailability(ctx context.Context, staffID, branchID, resourceID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
