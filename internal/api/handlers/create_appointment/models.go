package create_appointment

import (
	"time"

	"github.com/branchmaster/BM-BookingService/internal/domain"
	createAppointment "github.com/branchmaster/BM-BookingService/internal/usecase/create_appointment"
	"github.com/branchmaster/BM-BookingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	BranchID        int64  `json:"branchId"`
	AppointmentDate string `json:"appointmentDate"` // "2025-10-15"
	StartTime       string `json:"startTime"`       // "10:00"
	// Пустой endTime означает один слот стандартной длины филиала
	EndTime string `json:"endTime,omitempty"` // "11:00"
	Name    string `json:"name"`
	Email           string `json:"email,omitempty"`
	PhoneNumber     string `json:"phoneNumber,omitempty"`
	Reason          string `json:"reason,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID                     int64  `json:"id"`
	BranchID               int64  `json:"branchId"`
	AppointmentDate        string `json:"appointmentDate"`
	StartTime              string `json:"startTime"`
	EndTime                string `json:"endTime"`
	Status                 string `json:"status"`
	ResourceAvailabilityID int64  `json:"resourceAvailabilityId"`
	Name                   string `json:"name"`
	Email                  string `json:"email,omitempty"`
	PhoneNumber            string `json:"phoneNumber,omitempty"`
	Reason                 string `json:"reason,omitempty"`
	CreatedAt              string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.AppointmentDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	var endTime types.TimeString
	if r.EndTime != "" {
		endTime, err = types.NewTimeStringFromString(r.EndTime)
		if err != nil {
			return nil, err
		}
	}

	return &createAppointment.Request{
		BranchID:    r.BranchID,
		Date:        date,
		StartTime:   startTime,
		EndTime:     endTime,
		Name:        r.Name,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		Reason:      r.Reason,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	a := resp.Appointment
	return &AppointmentResponse{
		ID:                     a.ID,
		BranchID:               a.BranchID,
		AppointmentDate:        a.AppointmentDate.Format(domain.DateFormat),
		StartTime:              a.StartTime.String(),
		EndTime:                a.EndTime.String(),
		Status:                 string(a.Status),
		ResourceAvailabilityID: a.ResourceAvailabilityID,
		Name:                   a.Name,
		Email:                  a.Email,
		PhoneNumber:            a.PhoneNumber,
		Reason:                 a.Reason,
		CreatedAt:              a.CreatedAt.Format(time.RFC3339),
	}
}
