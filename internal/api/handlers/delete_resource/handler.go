package delete_resource

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/branchmaster/BM-BookingService/internal/api/handlers"
	"github.com/branchmaster/BM-BookingService/internal/api/middleware"
	"github.com/branchmaster/BM-BookingService/internal/service/resources"
)

const (
	msgInvalidBranchID   = "некорректный ID филиала"
	msgInvalidResourceID = "некорректный ID ресурса"
	msgResourceNotFound  = "окно ресурса не найдено"
	msgMissingStaffID    = "идентификатор сотрудника отсутствует"
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

// Handle DELETE /api/v1/branches/{branchId}/resources/{resourceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, ok := middleware.GetStaffID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /branches/{id}/resources/{id} - Missing staff ID in context")
		handlers.RespondUnauthorized(w, msgMissingStaffID)
		return
	}

	vars := mux.Vars(r)

	branchID, err := strconv.ParseInt(vars["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /branches/{id}/resources/{id} - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /branches/{id}/resources/{id} - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	if err := h.service.DeleteAvailability(r.Context(), staffID, branchID, resourceID); err != nil {
		switch {
		case errors.Is(err, resources.ErrResourceNotFound):
			h.logger.Warn("DELETE /branches/{id}/resources/{id} - Resource not found: branch_id=%d, resource_id=%d", branchID, resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, resources.ErrInvalidInput):
			h.logger.Warn("DELETE /branches/{id}/resources/{id} - Invalid input: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidResourceID)

		default:
			h.logger.Error("DELETE /branches/{id}/resources/{id} - Failed to delete resource: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /branches/{id}/resources/{id} - Resource deleted: resource_id=%d, staff_id=%d", resourceID, staffID)
	handlers.RespondNoContent(w)
}
