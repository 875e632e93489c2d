package delete_unavailability

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
	msgInvalidBranchID = "некорректный ID филиала"
	msgInvalidBlockID  = "некорректный ID блокировки"
	msgBlockNotFound   = "блокировка не найдена"
	msgMissingStaffID  = "идентификатор сотрудника отсутствует"
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

// Handle DELETE /api/v1/branches/{branchId}/unavailability/{unavailabilityId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, ok := middleware.GetStaffID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /branches/{id}/unavailability/{id} - Missing staff ID in context")
		handlers.RespondUnauthorized(w, msgMissingStaffID)
		return
	}

	vars := mux.Vars(r)

	branchID, err := strconv.ParseInt(vars["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /branches/{id}/unavailability/{id} - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	unavailabilityID, err := strconv.ParseInt(vars["unavailabilityId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /branches/{id}/unavailability/{id} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	if err := h.service.DeleteUnavailability(r.Context(), staffID, branchID, unavailabilityID); err != nil {
		switch {
		case errors.Is(err, resources.ErrUnavailabilityNotFound):
			h.logger.Warn("DELETE /branches/{id}/unavailability/{id} - Block not found: branch_id=%d, block_id=%d",
				branchID, unavailabilityID)
			handlers.RespondNotFound(w, msgBlockNotFound)

		case errors.Is(err, resources.ErrInvalidInput):
			h.logger.Warn("DELETE /branches/{id}/unavailability/{id} - Invalid input: block_id=%d, error=%v", unavailabilityID, err)
			handlers.RespondBadRequest(w, msgInvalidBlockID)

		default:
			h.logger.Error("DELETE /branches/{id}/unavailability/{id} - Failed to delete block: block_id=%d, error=%v",
				unavailabilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /branches/{id}/unavailability/{id} - Block deleted: block_id=%d, staff_id=%d",
		unavailabilityID, staffID)
	handlers.RespondNoContent(w)
}
