package create_recurring_bookings

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// validateRequest проверяет параметры серии. Поля отдельного бронирования проверяет create_booking
func validateRequest(req *Request) error {
	if _, err := domain.ParseRecurrenceType(string(req.RecurrenceType)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.Occurrences < domain.MinRecurringOccurrences || req.Occurrences > domain.MaxRecurringOccurrences {
		return fmt.Errorf("%w: occurrences must be between %d and %d",
			ErrInvalidInput, domain.MinRecurringOccurrences, domain.MaxRecurringOccurrences)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
