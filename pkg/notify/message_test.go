package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRender(t *testing.T) {
	title, body, err := Render(Message{
		Kind: KindBookingCreated,
		Name: "Dana",
		Data: map[string]string{
			"reference": "BK-20260310-101500-0042",
			"service":   "Full Detail",
			"date":      "2026-03-10",
			"time":      "14:00",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Booking received", title)
	assert.Equal(t, "Hi Dana, we received booking BK-20260310-101500-0042 for Full Detail on 2026-03-10 at 14:00.", body)
}

func TestRender_MissingVariableIsBlank(t *testing.T) {
	_, body, err := Render(Message{Kind: KindBookingStatusChanged, Data: map[string]string{"reference": "BK-1"}})
	require.NoError(t, err)
	assert.Equal(t, "Booking BK-1 is now .", body)
}

func TestRender_UnknownKind(t *testing.T) {
	_, _, err := Render(Message{Kind: "booking_exploded"})
	assert.Error(t, err)
}

func TestFill_UnterminatedPlaceholder(t *testing.T) {
	assert.Equal(t, "total {amount", fill("total {amount", map[string]string{"amount": "5"}))
}

func TestFCMSender_NoDeviceToken(t *testing.T) {
	s := &FCMSender{log: zap.NewNop()}
	err := s.Send(context.Background(), Message{Kind: KindBookingCancelled, CustomerID: "c-1"})
	assert.True(t, errors.Is(err, ErrNoRecipient))
}

func TestLogSender(t *testing.T) {
	s := NewLogSender(zap.NewNop())
	assert.NoError(t, s.Send(context.Background(), Message{Kind: KindBookingRescheduled}))
	assert.Error(t, s.Send(context.Background(), Message{Kind: "nope"}))
}
