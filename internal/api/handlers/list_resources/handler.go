package list_resources

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/branchmaster/BM-BookingService/internal/api/handlers"
	"github.com/branchmaster/BM-BookingService/internal/service/resources"
)

const (
	msgInvalidBranchID = "некорректный ID филиала"
	msgBranchNotFound  = "филиал не найден"
)

type Handler struct {
	service ResourceService
	logger  Logger
}

func NewHandler(service ResourceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/branches/{branchId}/resources
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	branchID, err := strconv.ParseInt(vars["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /branches/{id}/resources - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	result, err := h.service.List(r.Context(), branchID)
	if err != nil {
		switch {
		case errors.Is(err, resources.ErrBranchNotFound):
			h.logger.Warn("GET /branches/{id}/resources - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, resources.ErrInvalidInput):
			h.logger.Warn("GET /branches/{id}/resources - Invalid input: branch_id=%d", branchID)
			handlers.RespondBadRequest(w, msgInvalidBranchID)

		default:
			h.logger.Error("GET /branches/{id}/resources - Failed to list resources: branch_id=%d, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /branches/{id}/resources - Resources retrieved: branch_id=%d, count=%d",
		branchID, len(result.Resources))
	handlers.RespondJSON(w, http.StatusOK, result)
}
