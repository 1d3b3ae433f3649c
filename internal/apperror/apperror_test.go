package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("create booking: %w", SlotUnavailable("s1"))

	assert.Equal(t, CodeSlotUnavailable, CodeOf(wrapped))
	assert.True(t, Is(wrapped, CodeSlotUnavailable))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	assert.False(t, Is(nil, CodeInternal))
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New(`pq: relation "bookings" does not exist`)
	err := Internal(cause)

	assert.Equal(t, "internal server error", err.Message)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "relation")
}

func TestRetryable(t *testing.T) {
	assert.True(t, SlotUnavailable("s1").Retryable())
	assert.True(t, TimeSlotUnavailable("2026-03-10", "10:00").Retryable())
	assert.True(t, DependencyFailure("geocoder", errors.New("timeout")).Retryable())
	assert.False(t, ValidationField("email", "required").Retryable())
	assert.False(t, InvalidTransition("no").Retryable())
}
