package reschedule_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/scheduling"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil || req.StartTime.IsEndOfDay() {
		return fmt.Errorf("%w: invalid startTime %q", ErrInvalidInput, req.StartTime)
	}

	return nil
}

// validateDate проверяет, что на дату можно перенести бронирование
func validateDate(date time.Time, now time.Time, advanceBookingDays int) error {
	if domain.IsDateInPast(date, now) {
		return fmt.Errorf("%w: %s", ErrInvalidDate, date.Format(domain.DateFormat))
	}

	if advanceBookingDays > 0 && domain.DaysBetween(now, date) > advanceBookingDays {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateBookingTime проверяет minBookingNoticeMinutes для переноса на сегодня
func validateBookingTime(date time.Time, startTime types.TimeString, now time.Time, minBookingNoticeMinutes int) error {
	if !domain.IsSameDay(date, now) {
		return nil
	}

	if startTime.Minutes() < now.Hour()*60+now.Minute()+minBookingNoticeMinutes {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minBookingNoticeMinutes)
	}

	return nil
}

// mapWindowError переводит ошибки проверки окна в ошибки usecase
func mapWindowError(err error) error {
	switch {
	case errors.Is(err, scheduling.ErrOverlap):
		return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
	case errors.Is(err, scheduling.ErrBlackoutDate):
		return ErrProviderUnavailable
	case errors.Is(err, scheduling.ErrOutsideAvailability):
		return ErrOutsideWorkingHours
	case errors.Is(err, scheduling.ErrInvalidWindow):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: check window: %v", ErrInternal, err)
	}
}
