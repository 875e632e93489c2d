package create_unavailability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/branchmaster/BM-BookingService/internal/api/handlers"
	"github.com/branchmaster/BM-BookingService/internal/api/middleware"
	"github.com/branchmaster/BM-BookingService/internal/service/resources"
	"github.com/branchmaster/BM-BookingService/internal/service/resources/models"
)

const (
	msgInvalidBranchID    = "некорректный ID филиала"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgResourceNotFound   = "окно ресурса не найдено"
	msgInvalidBlock       = "некорректные параметры блокировки"
	msgMissingStaffID     = "идентификатор сотрудника отсутствует"
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

// Handle POST /api/v1/branches/{branchId}/unavailability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, ok := middleware.GetStaffID(r.Context())
	if !ok {
		h.logger.Warn("POST /branches/{id}/unavailability - Missing staff ID in context")
		handlers.RespondUnauthorized(w, msgMissingStaffID)
		return
	}

	vars := mux.Vars(r)

	branchID, err := strconv.ParseInt(vars["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /branches/{id}/unavailability - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	var req models.CreateUnavailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /branches/{id}/unavailability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateUnavailability(r.Context(), staffID, branchID, &req)
	if err != nil {
		switch {
		case errors.Is(err, resources.ErrResourceNotFound):
			h.logger.Warn("POST /branches/{id}/unavailability - Resource not found: branch_id=%d, resource_id=%d",
				branchID, req.ResourceAvailabilityID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, resources.ErrInvalidInput):
			h.logger.Warn("POST /branches/{id}/unavailability - Invalid input: branch_id=%d, error=%v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidBlock)

		default:
			h.logger.Error("POST /branches/{id}/unavailability - Failed to create block: branch_id=%d, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /branches/{id}/unavailability - Block created: block_id=%d, branch_id=%d, staff_id=%d",
		result.ID, branchID, staffID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
