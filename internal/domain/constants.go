package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Weekday numbering used across the system: 0=Sunday .. 6=Saturday
const (
	MinDayOfWeek = 0
	MaxDayOfWeek = 6
)

// Business validation constants
const (
	MinTimeslotLengthMinutes = 5
	MaxTimeslotLengthMinutes = 480 // 8 hours
	MaxReasonLength          = 200
	MaxNameLength            = 100
)
