package reschedule_booking

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("reschedule_booking: booking not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь не участник бронирования
	ErrAccessDenied = fmt.Errorf("reschedule_booking: %w", domain.ErrAccessDenied)

	// ErrCannotReschedule возвращается для завершенных и отмененных бронирований
	ErrCannotReschedule = fmt.Errorf("reschedule_booking: booking cannot be rescheduled: %w", domain.ErrInvalidTransition)

	// ErrInvalidDate возвращается при переносе на прошедшую дату
	ErrInvalidDate = fmt.Errorf("reschedule_booking: date is in the past: %w", domain.ErrValidation)

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = fmt.Errorf("reschedule_booking: date is too far in the future: %w", domain.ErrValidation)

	// ErrTooLateToBook возвращается, когда перенос нарушает minBookingNoticeMinutes
	ErrTooLateToBook = fmt.Errorf("reschedule_booking: too late to book this window: %w", domain.ErrValidation)

	// ErrProviderUnavailable возвращается, когда у провайдера нерабочий день
	ErrProviderUnavailable = fmt.Errorf("reschedule_booking: provider is unavailable on this date: %w", domain.ErrConflict)

	// ErrOutsideWorkingHours возвращается, когда окно не помещается в рабочий интервал
	ErrOutsideWorkingHours = fmt.Errorf("reschedule_booking: window is outside working hours: %w", domain.ErrConflict)

	// ErrSlotNotAvailable возвращается, когда окно пересекается с другим бронированием
	ErrSlotNotAvailable = fmt.Errorf("reschedule_booking: slot is not available: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("reschedule_booking: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("reschedule_booking: internal error: %w", domain.ErrPersistence)
)
