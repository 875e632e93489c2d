package domain

import "github.com/branchmaster/BM-BookingService/pkg/types"

// TimeRange is a half-open [Start, End) time-of-day range.
// Callers are responsible for Start < End; the predicates below assume it.
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// Overlaps returns true if the two ranges actually intersect.
// Touching boundaries do not count: [09:00,10:00) and [10:00,11:00) are disjoint.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.IsBefore(other.End) && other.Start.IsBefore(r.End)
}

// Covers returns true if r fully contains inner, boundaries included.
func (r TimeRange) Covers(inner TimeRange) bool {
	return !r.Start.IsAfter(inner.Start) && !r.End.IsBefore(inner.End)
}
