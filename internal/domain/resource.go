package domain

import (
	"time"

	"github.com/branchmaster/BM-BookingService/pkg/types"
)

// ResourceAvailability is a recurring weekly availability window of one
// interchangeable resource (staff member, room). Every record is one unit of
// concurrent capacity for its window; two records with identical timing mean
// two resources.
type ResourceAvailability struct {
	ID        int64
	BranchID  int64
	DayOfWeek int // 0=Sunday .. 6=Saturday
	StartTime types.TimeString
	EndTime   types.TimeString
	StartDate *time.Time // nil = recurrence unbounded in the past
	EndDate   *time.Time // nil = recurrence unbounded in the future
	Name      string     // label only, carries no allocation semantics
}

// Window returns the recurring availability window
func (ra *ResourceAvailability) Window() TimeRange {
	return TimeRange{Start: ra.StartTime, End: ra.EndTime}
}

// CoversDate returns true if the recurrence applies on the given calendar date.
// Each bound is checked independently; a nil bound is unbounded on that side.
func (ra *ResourceAvailability) CoversDate(date time.Time) bool {
	day := dateOnly(date)
	if ra.StartDate != nil && day.Before(dateOnly(*ra.StartDate)) {
		return false
	}
	if ra.EndDate != nil && day.After(dateOnly(*ra.EndDate)) {
		return false
	}
	return true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ResourceUnavailability is an ad-hoc exception blocking one resource on one
// date. StartTime/EndTime both nil means the whole day is blocked; otherwise
// both are set and EndTime is strictly after StartTime.
type ResourceUnavailability struct {
	ID                  int64
	AvailableResourceID int64
	BranchID            int64
	Date                time.Time
	StartTime           *types.TimeString
	EndTime             *types.TimeString
	Reason              string
}

// IsWholeDay returns true if the block covers the entire day
func (ru *ResourceUnavailability) IsWholeDay() bool {
	return ru.StartTime == nil && ru.EndTime == nil
}
