package availability

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrUnavailableDateNotFound возвращается, когда нерабочий день не найден
	ErrUnavailableDateNotFound = fmt.Errorf("unavailable date not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь не является провайдером
	ErrAccessDenied = fmt.Errorf("availability: %w", domain.ErrAccessDenied)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("availability: invalid input: %w", domain.ErrValidation)

	// ErrOverlappingRanges возвращается, когда интервалы одного дня пересекаются
	ErrOverlappingRanges = fmt.Errorf("availability: ranges overlap: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("availability: internal error: %w", domain.ErrPersistence)
)
