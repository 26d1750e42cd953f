package scheduling

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrOverlap окно пересекается с активным бронированием
	ErrOverlap = fmt.Errorf("scheduling: window overlaps an active booking: %w", domain.ErrConflict)

	// ErrOutsideAvailability окно не попадает ни в один рабочий интервал
	ErrOutsideAvailability = fmt.Errorf("scheduling: window is outside provider availability: %w", domain.ErrConflict)

	// ErrBlackoutDate провайдер недоступен в эту дату
	ErrBlackoutDate = fmt.Errorf("scheduling: provider is unavailable on this date: %w", domain.ErrConflict)

	// ErrInvalidInterval некорректный шаг слотов
	ErrInvalidInterval = fmt.Errorf("scheduling: slot interval must be positive: %w", domain.ErrValidation)

	// ErrInvalidWindow некорректное окно бронирования (выходит за сутки)
	ErrInvalidWindow = fmt.Errorf("scheduling: invalid booking window: %w", domain.ErrValidation)
)
