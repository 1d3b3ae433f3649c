package domain

import (
	"testing"
	"time"

	"mobile-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
)

func TestValidateTransition_MatchesTable(t *testing.T) {
	for _, from := range entity.AllBookingStatuses {
		for _, to := range entity.AllBookingStatuses {
			result := ValidateTransition(from, to, TransitionContext{})
			assert.Equal(t, CanTransition(from, to), result.Allowed, "%s -> %s", from, to)
			if !result.Allowed {
				assert.NotEmpty(t, result.Reason, "%s -> %s should explain the rejection", from, to)
			}
		}
	}
}

func TestValidateTransition_RepresentativeRules(t *testing.T) {
	allowed := [][2]entity.BookingStatus{
		{entity.BookingStatusPending, entity.BookingStatusProcessing},
		{entity.BookingStatusPending, entity.BookingStatusConfirmed},
		{entity.BookingStatusPending, entity.BookingStatusDeclined},
		{entity.BookingStatusPending, entity.BookingStatusCancelledByCustomer},
		{entity.BookingStatusProcessing, entity.BookingStatusPaymentFailed},
		{entity.BookingStatusConfirmed, entity.BookingStatusRescheduled},
		{entity.BookingStatusConfirmed, entity.BookingStatusNoShow},
		{entity.BookingStatusInProgress, entity.BookingStatusCompleted},
		{entity.BookingStatusInProgress, entity.BookingStatusCancelledByAdmin},
	}
	for _, pair := range allowed {
		assert.True(t, ValidateTransition(pair[0], pair[1], TransitionContext{}).Allowed, "%s -> %s", pair[0], pair[1])
	}

	rejected := [][2]entity.BookingStatus{
		{entity.BookingStatusPending, entity.BookingStatusCompleted},
		{entity.BookingStatusProcessing, entity.BookingStatusInProgress},
		{entity.BookingStatusConfirmed, entity.BookingStatusPending},
		{entity.BookingStatusInProgress, entity.BookingStatusRescheduled},
	}
	for _, pair := range rejected {
		assert.False(t, ValidateTransition(pair[0], pair[1], TransitionContext{}).Allowed, "%s -> %s", pair[0], pair[1])
	}
}

func TestValidateTransition_TerminalStatesHaveNoExits(t *testing.T) {
	for _, from := range entity.AllBookingStatuses {
		if !from.IsTerminal() {
			continue
		}
		assert.Empty(t, AllowedTransitions(from), "terminal %s", from)
		result := ValidateTransition(from, entity.BookingStatusConfirmed, TransitionContext{})
		assert.False(t, result.Allowed)
		assert.Contains(t, result.Reason, "can no longer change status")
	}
}

func TestValidateTransition_UnknownStatus(t *testing.T) {
	result := ValidateTransition("archived", entity.BookingStatusConfirmed, TransitionContext{})
	assert.False(t, result.Allowed)
	assert.Contains(t, result.Reason, "unknown current status")

	result = ValidateTransition(entity.BookingStatusPending, "archived", TransitionContext{})
	assert.False(t, result.Allowed)
	assert.Contains(t, result.Reason, "unknown target status")
}

func TestValidateTransition_ContextOnlyWarns(t *testing.T) {
	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	noShow := ValidateTransition(entity.BookingStatusConfirmed, entity.BookingStatusNoShow, TransitionContext{
		Now:            start.Add(-30 * time.Minute),
		ScheduledStart: start,
	})
	assert.True(t, noShow.Allowed)
	assert.NotEmpty(t, noShow.Warning)

	early := ValidateTransition(entity.BookingStatusConfirmed, entity.BookingStatusInProgress, TransitionContext{
		Now:            start.Add(-3 * time.Hour),
		ScheduledStart: start,
	})
	assert.True(t, early.Allowed)
	assert.Contains(t, early.Warning, "more than an hour")

	onTime := ValidateTransition(entity.BookingStatusConfirmed, entity.BookingStatusInProgress, TransitionContext{
		Now:            start.Add(-10 * time.Minute),
		ScheduledStart: start,
	})
	assert.True(t, onTime.Allowed)
	assert.Empty(t, onTime.Warning)

	unpaid := ValidateTransition(entity.BookingStatusInProgress, entity.BookingStatusCompleted, TransitionContext{
		PaymentStatus: entity.PaymentStatusUnpaid,
	})
	assert.True(t, unpaid.Allowed)
	assert.Equal(t, "completed while payment is unpaid", unpaid.Warning)
}

func TestValidateTransition_RejectionListsAllowedTargets(t *testing.T) {
	result := ValidateTransition(entity.BookingStatusInProgress, entity.BookingStatusConfirmed, TransitionContext{})

	assert.False(t, result.Allowed)
	assert.Contains(t, result.Reason, "cannot move booking from in_progress to confirmed")
	for _, next := range AllowedTransitions(entity.BookingStatusInProgress) {
		assert.Contains(t, result.Reason, string(next))
	}
}

func TestAllowedTransitions_ReturnsCopy(t *testing.T) {
	next := AllowedTransitions(entity.BookingStatusPending)
	next[0] = entity.BookingStatusCompleted
	assert.False(t, CanTransition(entity.BookingStatusPending, entity.BookingStatusCompleted))
}
