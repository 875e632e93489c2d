package list_branches

import (
	"context"

	"github.com/branchmaster/BM-BookingService/internal/service/branches/models"
)

type BranchService interface {
	ListActive(ctx context.Context) (*models.BranchListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
