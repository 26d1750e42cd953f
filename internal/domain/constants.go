package domain

// Default configuration values
const (
	DefaultSlotIntervalMinutes     = 60
	DefaultMinBookingNoticeMinutes = 60
	DefaultAdvanceBookingDays      = 0 // 0 = unlimited
)

// Business validation constants
const (
	MinSlotIntervalMinutes      = 5
	MaxSlotIntervalMinutes      = 480 // 8 hours
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365
	MinBookingNoticeMinutes     = 0
	MaxBookingNoticeMinutes     = 10080 // 1 week
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxUnavailableReasonLength  = 255
	MaxRangesPerWeekday         = 12

	MinRecurringOccurrences = 1
	MaxRecurringOccurrences = 52
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
