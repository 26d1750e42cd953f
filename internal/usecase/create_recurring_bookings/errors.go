package create_recurring_bookings

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_recurring_bookings: invalid input data: %w", domain.ErrValidation)

	// ErrNoOccurrencesCreated возвращается, когда все даты серии оказались заняты
	ErrNoOccurrencesCreated = fmt.Errorf("create_recurring_bookings: every occurrence conflicts: %w", domain.ErrConflict)
)
