package domain

import "time"

// RecurrenceType is the repetition pattern of a recurring series
type RecurrenceType string

const (
	RecurrenceWeekly   RecurrenceType = "weekly"
	RecurrenceBiweekly RecurrenceType = "biweekly"
	RecurrenceMonthly  RecurrenceType = "monthly"
)

// ParseRecurrenceType validates a raw recurrence type
func ParseRecurrenceType(s string) (RecurrenceType, error) {
	switch RecurrenceType(s) {
	case RecurrenceWeekly, RecurrenceBiweekly, RecurrenceMonthly:
		return RecurrenceType(s), nil
	default:
		return "", ErrInvalidRecurrenceType
	}
}

// OccurrenceDate returns the date of the k-th occurrence (k starts at 0) of a series.
// Every date is derived from the template date, never from the previous occurrence,
// so a monthly series starting on the 31st returns to the 31st whenever the month allows.
// Monthly dates are clamped to the last day of the target month.
func (t RecurrenceType) OccurrenceDate(template time.Time, k int) time.Time {
	switch t {
	case RecurrenceWeekly:
		return template.AddDate(0, 0, 7*k)
	case RecurrenceBiweekly:
		return template.AddDate(0, 0, 14*k)
	case RecurrenceMonthly:
		return addMonthsClamped(template, k)
	default:
		return template
	}
}

// OccurrenceDates returns the dates of the first n occurrences
func (t RecurrenceType) OccurrenceDates(template time.Time, n int) []time.Time {
	dates := make([]time.Time, 0, n)
	for k := 0; k < n; k++ {
		dates = append(dates, t.OccurrenceDate(template, k))
	}
	return dates
}

func addMonthsClamped(date time.Time, months int) time.Time {
	y, m, d := date.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, date.Location())
	lastDay := daysIn(firstOfTarget.Year(), firstOfTarget.Month(), date.Location())
	if d > lastDay {
		d = lastDay
	}
	hh, mm, ss := date.Clock()
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, hh, mm, ss, date.Nanosecond(), date.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
