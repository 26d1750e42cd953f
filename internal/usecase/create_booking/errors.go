package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена у провайдера
	ErrServiceNotFound = fmt.Errorf("create_booking: service not found: %w", domain.ErrNotFound)

	// ErrInvalidDate возвращается при бронировании на прошедшую дату
	ErrInvalidDate = fmt.Errorf("create_booking: date is in the past: %w", domain.ErrValidation)

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = fmt.Errorf("create_booking: date is too far in the future: %w", domain.ErrValidation)

	// ErrTooLateToBook возвращается, когда попытка забронировать нарушает minBookingNoticeMinutes
	ErrTooLateToBook = fmt.Errorf("create_booking: too late to book this window: %w", domain.ErrValidation)

	// ErrProviderUnavailable возвращается, когда у провайдера нерабочий день
	ErrProviderUnavailable = fmt.Errorf("create_booking: provider is unavailable on this date: %w", domain.ErrConflict)

	// ErrOutsideWorkingHours возвращается, когда окно не помещается в рабочий интервал
	ErrOutsideWorkingHours = fmt.Errorf("create_booking: window is outside working hours: %w", domain.ErrConflict)

	// ErrSlotNotAvailable возвращается, когда окно пересекается с другим бронированием
	ErrSlotNotAvailable = fmt.Errorf("create_booking: slot is not available: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_booking: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("create_booking: internal error: %w", domain.ErrPersistence)
)
