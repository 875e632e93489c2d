package domain

import (
	"time"

	"github.com/branchmaster/BM-BookingService/pkg/types"
)

// Branch represents a physical location with its own resources and slot granularity
type Branch struct {
	ID             int64
	Name           string
	TimeslotLength int // fixed slot length in minutes, granularity of all slots for the branch
	Active         bool
	Address        string
	City           string
	CreatedAt      time.Time
}

// OperatingHours is the open/closed schedule of a branch for one weekday.
// At most one record per (branch, weekday).
type OperatingHours struct {
	ID          int64
	BranchID    int64
	DayOfWeek   int // 0=Sunday .. 6=Saturday
	OpeningTime types.TimeString
	ClosingTime types.TimeString
	Closed      bool
}

// Window returns the open window of the day
func (oh *OperatingHours) Window() TimeRange {
	return TimeRange{Start: oh.OpeningTime, End: oh.ClosingTime}
}
