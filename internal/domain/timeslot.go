package domain

import "github.com/branchmaster/BM-BookingService/pkg/types"

// AvailabilityStatus is the rendered state of a timeslot
type AvailabilityStatus string

const (
	SlotAvailable   AvailabilityStatus = "AVAILABLE"
	SlotFullyBooked AvailabilityStatus = "FULLY_BOOKED"
)

// Timeslot is a derived, never persisted bookable interval. A slot that exists
// but has no free capacity is still reported as FULLY_BOOKED - distinct from a
// slot that never existed because no resource covered it.
type Timeslot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    AvailabilityStatus
}
