package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// TimeRange is a half-open wall-clock interval [Start, End) within one day
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// Validate checks formats and that Start < End
func (r TimeRange) Validate() error {
	if err := r.Start.Validate(); err != nil {
		return ErrInvalidTimeRange
	}
	if err := r.End.Validate(); err != nil {
		return ErrInvalidTimeRange
	}
	if r.Start.IsEndOfDay() || !r.Start.IsBefore(r.End) {
		return ErrInvalidTimeRange
	}
	return nil
}

// Overlaps reports whether two ranges share any minute
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.IsBefore(other.End) && other.Start.IsBefore(r.End)
}

// Contains reports whether [start, end) lies fully inside the range
func (r TimeRange) Contains(start, end types.TimeString) bool {
	return !start.IsBefore(r.Start) && !end.IsAfter(r.End)
}

// AvailabilityRule is one recurring weekly working range of a provider.
// A provider may have several rules for the same weekday.
type AvailabilityRule struct {
	ID         int64
	ProviderID int64
	Weekday    time.Weekday // 0 = Sunday .. 6 = Saturday
	StartTime  types.TimeString
	EndTime    types.TimeString
	CreatedAt  time.Time
}

// Range returns the rule as a TimeRange
func (r *AvailabilityRule) Range() TimeRange {
	return TimeRange{Start: r.StartTime, End: r.EndTime}
}

// UnavailableDate is a whole-day blackout for a provider, unique per (provider, date)
type UnavailableDate struct {
	ID         int64
	ProviderID int64
	Date       time.Time
	Reason     *string
	CreatedAt  time.Time
}

// ValidateWeekday checks the weekday is in 0..6
func ValidateWeekday(weekday int) error {
	if weekday < int(time.Sunday) || weekday > int(time.Saturday) {
		return ErrInvalidWeekday
	}
	return nil
}
