package scheduling

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Overlaps проверяет пересечение полуоткрытых интервалов [startA, endA) и [startB, endB)
// Интервалы, которые только касаются границами, НЕ пересекаются:
// - 10:00-11:00 и 11:00-12:00 → нет пересечения
// - 10:00-11:00 и 10:30-11:30 → есть пересечение
func Overlaps(startA, endA, startB, endB types.TimeString) bool {
	return startA.IsBefore(endB) && startB.IsBefore(endA)
}

// FindConflict возвращает первое активное бронирование, пересекающееся с окном
// Бронирование с ID == excludeID пропускается (перенос бронирования)
func FindConflict(bookings []*domain.Booking, start types.TimeString, durationMinutes int, excludeID int64) (*domain.Booking, error) {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}

	for _, booking := range bookings {
		if !booking.IsActive() || (excludeID != 0 && booking.ID == excludeID) {
			continue
		}

		bookingEnd, err := booking.EndTime()
		if err != nil {
			continue
		}

		if Overlaps(start, end, booking.ScheduledTime, bookingEnd) {
			return booking, nil
		}
	}

	return nil, nil
}

// FitsAvailability проверяет, что окно целиком лежит внутри одного из рабочих интервалов
func FitsAvailability(rules []*domain.AvailabilityRule, start types.TimeString, durationMinutes int) bool {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return false
	}

	for _, rule := range rules {
		if rule.Range().Contains(start, end) {
			return true
		}
	}
	return false
}

// CheckWindow полная проверка окна бронирования на дату:
// дата не заблокирована, окно внутри рабочего интервала, нет пересечений с активными бронированиями
// rules - правила на день недели даты, bookings - бронирования провайдера на эту дату
func CheckWindow(
	rules []*domain.AvailabilityRule,
	blackout bool,
	bookings []*domain.Booking,
	start types.TimeString,
	durationMinutes int,
	excludeID int64,
) error {
	if durationMinutes <= 0 {
		return ErrInvalidWindow
	}
	if _, err := start.AddMinutes(durationMinutes); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}
	if blackout {
		return ErrBlackoutDate
	}
	if !FitsAvailability(rules, start, durationMinutes) {
		return ErrOutsideAvailability
	}

	conflict, err := FindConflict(bookings, start, durationMinutes, excludeID)
	if err != nil {
		return err
	}
	if conflict != nil {
		return fmt.Errorf("%w: booking id=%d at %s", ErrOverlap, conflict.ID, conflict.ScheduledTime)
	}

	return nil
}
