package create_appointment

import (
	"errors"
	"net/http"

	"github.com/branchmaster/BM-BookingService/internal/api/handlers"
	createAppointment "github.com/branchmaster/BM-BookingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgBranchNotFound      = "филиал не найден"
	msgBranchClosed        = "филиал не работает в выбранное время"
	msgNoAvailableResource = "нет свободных ресурсов на выбранный слот"
	msgInvalidInput        = "некорректные данные записи"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrNoAvailableResource):
			h.logger.Warn("POST /appointments - No available resource: branch_id=%d, date=%s, start_time=%s",
				req.BranchID, req.AppointmentDate, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgNoAvailableResource)

		case errors.Is(err, createAppointment.ErrBranchNotFound):
			h.logger.Warn("POST /appointments - Branch not found: branch_id=%d", req.BranchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, createAppointment.ErrBranchClosed):
			h.logger.Warn("POST /appointments - Branch closed: branch_id=%d, date=%s", req.BranchID, req.AppointmentDate)
			handlers.RespondBadRequest(w, msgBranchClosed)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: branch_id=%d, error=%v", req.BranchID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: branch_id=%d, error=%v", req.BranchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, branch_id=%d",
		result.Appointment.ID, req.BranchID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
