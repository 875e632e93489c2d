package domain

import (
	"time"

	"github.com/branchmaster/BM-BookingService/pkg/types"
)

// BookingStatus represents the lifecycle state of an appointment
type BookingStatus string

const (
	StatusBooked        BookingStatus = "BOOKED"
	StatusUserCancelled BookingStatus = "USER_CANCELLED"
)

// Valid returns true for a known status value
func (s BookingStatus) Valid() bool {
	return s == StatusBooked || s == StatusUserCancelled
}

// Appointment represents one booked visit. The contact fields are carried
// opaquely; the engine never interprets them.
type Appointment struct {
	ID                     int64
	BranchID               int64
	AppointmentDate        time.Time
	StartTime              types.TimeString
	EndTime                types.TimeString
	Status                 BookingStatus
	ResourceAvailabilityID int64 // the resource committed at creation

	Name        string
	Email       string
	PhoneNumber string
	Reason      string

	CreatedAt time.Time
}

// Window returns the booked time range
func (a *Appointment) Window() TimeRange {
	return TimeRange{Start: a.StartTime, End: a.EndTime}
}

// IsBooked returns true while the appointment holds its resource
func (a *Appointment) IsBooked() bool {
	return a.Status == StatusBooked
}

// CanBeCancelled returns true if the appointment may transition to USER_CANCELLED.
// Cancellation is terminal; a cancelled appointment is never re-activated.
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusBooked
}
