package create_resource

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
	msgBranchNotFound     = "филиал не найден"
	msgInvalidResource    = "некорректные параметры окна ресурса"
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

// Handle POST /api/v1/branches/{branchId}/resources
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, ok := middleware.GetStaffID(r.Context())
	if !ok {
		h.logger.Warn("POST /branches/{id}/resources - Missing staff ID in context")
		handlers.RespondUnauthorized(w, msgMissingStaffID)
		return
	}

	vars := mux.Vars(r)

	branchID, err := strconv.ParseInt(vars["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /branches/{id}/resources - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	var req models.SaveAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /branches/{id}/resources - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateAvailability(r.Context(), staffID, branchID, &req)
	if err != nil {
		switch {
		case errors.Is(err, resources.ErrBranchNotFound):
			h.logger.Warn("POST /branches/{id}/resources - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, resources.ErrInvalidInput):
			h.logger.Warn("POST /branches/{id}/resources - Invalid input: branch_id=%d, error=%v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidResource)

		default:
			h.logger.Error("POST /branches/{id}/resources - Failed to create resource: branch_id=%d, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /branches/{id}/resources - Resource created: resource_id=%d, branch_id=%d, staff_id=%d",
		result.ID, branchID, staffID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
