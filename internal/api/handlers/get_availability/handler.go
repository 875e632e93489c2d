package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/branchmaster/BM-BookingService/internal/api/handlers"
	getAvailability "github.com/branchmaster/BM-BookingService/internal/usecase/get_availability"
)

const (
	msgInvalidBranchID  = "некорректный ID филиала"
	msgMissingStartDate = "параметр startDate обязателен"
	msgMissingEndDate   = "параметр endDate обязателен"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDateRange = "endDate не может быть раньше startDate"
	msgBranchNotFound   = "филиал не найден"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/branches/{branchId}/availability
// Query params: startDate (required), endDate (required), YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	branchID, err := strconv.ParseInt(vars["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /branches/{id}/availability - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	startDateStr := r.URL.Query().Get("startDate")
	if startDateStr == "" {
		h.logger.Warn("GET /branches/{id}/availability - Missing startDate")
		handlers.RespondBadRequest(w, msgMissingStartDate)
		return
	}

	endDateStr := r.URL.Query().Get("endDate")
	if endDateStr == "" {
		h.logger.Warn("GET /branches/{id}/availability - Missing endDate")
		handlers.RespondBadRequest(w, msgMissingEndDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(branchID, startDateStr, endDateStr)
	if err != nil {
		h.logger.Warn("GET /branches/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrBranchNotFound):
			h.logger.Warn("GET /branches/{id}/availability - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, getAvailability.ErrInvalidDateRange):
			h.logger.Warn("GET /branches/{id}/availability - Invalid date range: branch_id=%d", branchID)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /branches/{id}/availability - Invalid input: branch_id=%d, error=%v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /branches/{id}/availability - Failed to get availability: branch_id=%d, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /branches/{id}/availability - Availability retrieved: branch_id=%d, days_count=%d",
		branchID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
