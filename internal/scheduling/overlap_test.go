package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		startA, endA, startB, endB string
		want                       bool
	}{
		{name: "touching end to start", startA: "10:00", endA: "11:00", startB: "11:00", endB: "12:00", want: false},
		{name: "touching start to end", startA: "11:00", endA: "12:00", startB: "10:00", endB: "11:00", want: false},
		{name: "partial", startA: "11:30", endA: "12:00", startB: "11:20", endB: "11:40", want: true},
		{name: "contained", startA: "09:00", endA: "12:00", startB: "10:00", endB: "10:30", want: true},
		{name: "identical", startA: "10:00", endA: "11:00", startB: "10:00", endB: "11:00", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(
				types.TimeString(tt.startA), types.TimeString(tt.endA),
				types.TimeString(tt.startB), types.TimeString(tt.endB),
			)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckWindow(t *testing.T) {
	rules := []*domain.AvailabilityRule{rule(time.Monday, "09:00", "12:00")}
	bookings := []*domain.Booking{booking(5, "10:00", 60, domain.StatusPending)}

	t.Run("free window", func(t *testing.T) {
		assert.NoError(t, CheckWindow(rules, false, bookings, "11:00", 60, 0))
	})

	t.Run("overlap", func(t *testing.T) {
		err := CheckWindow(rules, false, bookings, "10:30", 60, 0)
		assert.ErrorIs(t, err, ErrOverlap)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("overlap with itself is ignored on reschedule", func(t *testing.T) {
		assert.NoError(t, CheckWindow(rules, false, bookings, "10:30", 60, 5))
	})

	t.Run("outside availability", func(t *testing.T) {
		assert.ErrorIs(t, CheckWindow(rules, false, bookings, "11:30", 60, 0), ErrOutsideAvailability)
	})

	t.Run("blackout", func(t *testing.T) {
		assert.ErrorIs(t, CheckWindow(rules, true, nil, "09:00", 60, 0), ErrBlackoutDate)
	})

	t.Run("past end of day", func(t *testing.T) {
		assert.ErrorIs(t, CheckWindow(rules, false, nil, "23:30", 60, 0), domain.ErrValidation)
	})
}

func TestFindConflict_ReturnsConflictingBooking(t *testing.T) {
	bookings := []*domain.Booking{
		booking(1, "09:00", 60, domain.StatusCancelled),
		booking(2, "09:30", 30, domain.StatusConfirmed),
	}

	conflict, err := FindConflict(bookings, "09:00", 60, 0)
	require.NoError(t, err)
	require.NotNil(t, conflict)
	assert.Equal(t, int64(2), conflict.ID)
}
