package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Package-level sentinels across the service wrap one of these,
// so callers can classify any error with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrValidation        = errors.New("validation failed")
	ErrAccessDenied      = errors.New("access denied")
	ErrPaymentGateway    = errors.New("payment gateway error")
	ErrPersistence       = errors.New("persistence error")
)

var (
	// ErrInvalidBookingStatus unknown booking status value
	ErrInvalidBookingStatus = fmt.Errorf("invalid booking status: %w", ErrValidation)

	// ErrInvalidRecurrenceType unknown recurrence type value
	ErrInvalidRecurrenceType = fmt.Errorf("invalid recurrence type: %w", ErrValidation)

	// ErrInvalidWeekday weekday outside 0..6
	ErrInvalidWeekday = fmt.Errorf("weekday must be between 0 and 6: %w", ErrValidation)

	// ErrInvalidTimeRange start is not before end
	ErrInvalidTimeRange = fmt.Errorf("invalid time range: %w", ErrValidation)
)

// ErrorKind returns the kind an error belongs to, or nil if it is unclassified
func ErrorKind(err error) error {
	for _, kind := range []error{
		ErrNotFound,
		ErrConflict,
		ErrInvalidTransition,
		ErrValidation,
		ErrAccessDenied,
		ErrPaymentGateway,
		ErrPersistence,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// ResultLabel short label of an operation outcome, used as a metrics label
func ResultLabel(err error) string {
	if err == nil {
		return "success"
	}
	switch ErrorKind(err) {
	case ErrNotFound:
		return "not_found"
	case ErrConflict:
		return "conflict"
	case ErrInvalidTransition:
		return "invalid_transition"
	case ErrValidation:
		return "validation_error"
	case ErrAccessDenied:
		return "access_denied"
	case ErrPaymentGateway:
		return "payment_error"
	default:
		return "error"
	}
}
