package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKind(t *testing.T) {
	wrapped := fmt.Errorf("create: %w", fmt.Errorf("slot taken: %w", ErrConflict))

	assert.Equal(t, ErrConflict, ErrorKind(wrapped))
	assert.Equal(t, ErrValidation, ErrorKind(ErrInvalidWeekday))
	assert.Nil(t, ErrorKind(errors.New("plain")))
}

func TestResultLabel(t *testing.T) {
	assert.Equal(t, "success", ResultLabel(nil))
	assert.Equal(t, "not_found", ResultLabel(fmt.Errorf("x: %w", ErrNotFound)))
	assert.Equal(t, "invalid_transition", ResultLabel(ErrInvalidTransition))
	assert.Equal(t, "payment_error", ResultLabel(fmt.Errorf("refund: %w", ErrPaymentGateway)))
	assert.Equal(t, "error", ResultLabel(errors.New("boom")))
}
