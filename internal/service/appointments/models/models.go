package models

import (
	"github.com/branchmaster/BM-BookingService/internal/domain"
)

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID                     int64  `json:"id"`
	BranchID               int64  `json:"branchId"`
	AppointmentDate        string `json:"appointmentDate"` // "2025-10-15"
	StartTime              string `json:"startTime"`       // "10:00"
	EndTime                string `json:"endTime"`         // "10:30"
	Status                 string `json:"status"`
	ResourceAvailabilityID int64  `json:"resourceAvailabilityId"`
	Name                   string `json:"name"`
	Email                  string `json:"email,omitempty"`
	PhoneNumber            string `json:"phoneNumber,omitempty"`
	Reason                 string `json:"reason,omitempty"`
	CreatedAt              string `json:"createdAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// FromDomainAppointment конвертирует domain модель в response
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
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
		CreatedAt:              a.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в response
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	result := make([]AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		result = append(result, *FromDomainAppointment(a))
	}
	return &AppointmentListResponse{Appointments: result}
}
