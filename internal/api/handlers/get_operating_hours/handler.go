package get_operating_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/branchmaster/BM-BookingService/internal/api/handlers"
	"github.com/branchmaster/BM-BookingService/internal/service/branches"
)

const (
	msgInvalidBranchID = "некорректный ID филиала"
	msgBranchNotFound  = "филиал не найден"
)

type Handler struct {
	service BranchService
	logger  Logger
}

func NewHandler(service BranchService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/branches/{branchId}/operating-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	branchID, err := strconv.ParseInt(vars["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /branches/{id}/operating-hours - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	result, err := h.service.GetOperatingHours(r.Context(), branchID)
	if err != nil {
		switch {
		case errors.Is(err, branches.ErrBranchNotFound):
			h.logger.Warn("GET /branches/{id}/operating-hours - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, branches.ErrInvalidInput):
			h.logger.Warn("GET /branches/{id}/operating-hours - Invalid input: branch_id=%d", branchID)
			handlers.RespondBadRequest(w, msgInvalidBranchID)

		default:
			h.logger.Error("GET /branches/{id}/operating-hours - Failed to get hours: branch_id=%d, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /branches/{id}/operating-hours - Hours retrieved: branch_id=%d", branchID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
