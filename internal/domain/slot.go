package domain

import "github.com/m04kA/SMC-SchedulingService/pkg/types"

// TimeSlot is a generated candidate window on a given date. Not persisted.
type TimeSlot struct {
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
}

// DurationMinutes returns the slot length
func (s TimeSlot) DurationMinutes() int {
	return s.EndTime.Minutes() - s.StartTime.Minutes()
}
