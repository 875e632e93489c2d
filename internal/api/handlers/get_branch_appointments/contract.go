package get_branch_appointments

import (
	"context"
	"time"

	"github.com/branchmaster/BM-BookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetForBranchDay(ctx context.Context, branchID int64, date time.Time) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
