package update_operating_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/branchmaster/BM-BookingService/internal/api/handlers"
	"github.com/branchmaster/BM-BookingService/internal/api/middleware"
	"github.com/branchmaster/BM-BookingService/internal/service/branches"
	"github.com/branchmaster/BM-BookingService/internal/service/branches/models"
)

const (
	msgInvalidBranchID      = "некорректный ID филиала"
	msgInvalidHoursID       = "некорректный ID часов работы"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgHoursNotFound        = "часы работы не найдены"
	msgInvalidOperatingTime = "некорректное время работы"
	msgMissingStaffID       = "идентификатор сотрудника отсутствует"
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

// Handle PUT /api/v1/branches/{branchId}/operating-hours/{hoursId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, ok := middleware.GetStaffID(r.Context())
	if !ok {
		h.logger.Warn("PUT /branches/{id}/operating-hours/{id} - Missing staff ID in context")
		handlers.RespondUnauthorized(w, msgMissingStaffID)
		return
	}

	vars := mux.Vars(r)

	branchID, err := strconv.ParseInt(vars["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /branches/{id}/operating-hours/{id} - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	hoursID, err := strconv.ParseInt(vars["hoursId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /branches/{id}/operating-hours/{id} - Invalid hours ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHoursID)
		return
	}

	var req models.UpdateOperatingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /branches/{id}/operating-hours/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateOperatingHours(r.Context(), staffID, branchID, hoursID, &req)
	if err != nil {
		switch {
		case errors.Is(err, branches.ErrOperatingHoursNotFound):
			h.logger.Warn("PUT /branches/{id}/operating-hours/{id} - Hours not found: branch_id=%d, hours_id=%d", branchID, hoursID)
			handlers.RespondNotFound(w, msgHoursNotFound)

		case errors.Is(err, branches.ErrInvalidInput):
			h.logger.Warn("PUT /branches/{id}/operating-hours/{id} - Invalid input: branch_id=%d, error=%v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidOperatingTime)

		default:
			h.logger.Error("PUT /branches/{id}/operating-hours/{id} - Failed to update hours: branch_id=%d, hours_id=%d, error=%v",
				branchID, hoursID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /branches/{id}/operating-hours/{id} - Hours updated: branch_id=%d, hours_id=%d, staff_id=%d",
		branchID, hoursID, staffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
