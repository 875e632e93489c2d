package delete_unavailability

import (
	"context"
)

type ResourceService interface {
	DeleteUnavailability(ctx context.Context, staffID, branchID, unavailabilityID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
