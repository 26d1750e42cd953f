package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOccurrenceDates_Weekly(t *testing.T) {
	got := RecurrenceWeekly.OccurrenceDates(date(2025, 3, 3), 4)

	assert.Equal(t, []time.Time{
		date(2025, 3, 3),
		date(2025, 3, 10),
		date(2025, 3, 17),
		date(2025, 3, 24),
	}, got)
}

func TestOccurrenceDates_Biweekly(t *testing.T) {
	got := RecurrenceBiweekly.OccurrenceDates(date(2025, 12, 22), 3)

	assert.Equal(t, []time.Time{
		date(2025, 12, 22),
		date(2026, 1, 5),
		date(2026, 1, 19),
	}, got)
}

func TestOccurrenceDates_MonthlyClampsToMonthEnd(t *testing.T) {
	tests := []struct {
		name     string
		template time.Time
		want     []time.Time
	}{
		{
			name:     "non-leap year",
			template: date(2025, 1, 31),
			want:     []time.Time{date(2025, 1, 31), date(2025, 2, 28), date(2025, 3, 31), date(2025, 4, 30)},
		},
		{
			name:     "leap year",
			template: date(2024, 1, 31),
			want:     []time.Time{date(2024, 1, 31), date(2024, 2, 29), date(2024, 3, 31), date(2024, 4, 30)},
		},
		{
			name:     "crosses year",
			template: date(2025, 11, 15),
			want:     []time.Time{date(2025, 11, 15), date(2025, 12, 15), date(2026, 1, 15), date(2026, 2, 15)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecurrenceMonthly.OccurrenceDates(tt.template, 4))
		})
	}
}

func TestParseRecurrenceType(t *testing.T) {
	got, err := ParseRecurrenceType("biweekly")
	require.NoError(t, err)
	assert.Equal(t, RecurrenceBiweekly, got)

	_, err = ParseRecurrenceType("daily")
	assert.ErrorIs(t, err, ErrValidation)
}
