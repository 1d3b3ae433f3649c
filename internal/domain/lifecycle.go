package domain

import (
	"fmt"
	"strings"
	"time"

	"mobile-booking/internal/data/entity"
)

var cancellations = []entity.BookingStatus{
	entity.BookingStatusCancelledByCustomer,
	entity.BookingStatusCancelledByAdmin,
}

// transitions is the only place that decides which status changes are legal.
var transitions = map[entity.BookingStatus][]entity.BookingStatus{
	entity.BookingStatusPending: append([]entity.BookingStatus{
		entity.BookingStatusProcessing,
		entity.BookingStatusConfirmed,
		entity.BookingStatusRescheduled,
		entity.BookingStatusDeclined,
		entity.BookingStatusExpired,
	}, cancellations...),
	entity.BookingStatusProcessing: append([]entity.BookingStatus{
		entity.BookingStatusConfirmed,
		entity.BookingStatusPaymentFailed,
	}, cancellations...),
	entity.BookingStatusPaymentFailed: append([]entity.BookingStatus{
		entity.BookingStatusProcessing,
		entity.BookingStatusExpired,
	}, cancellations...),
	entity.BookingStatusConfirmed: append([]entity.BookingStatus{
		entity.BookingStatusRescheduled,
		entity.BookingStatusInProgress,
		entity.BookingStatusNoShow,
	}, cancellations...),
	entity.BookingStatusRescheduled: append([]entity.BookingStatus{
		entity.BookingStatusRescheduled,
		entity.BookingStatusConfirmed,
		entity.BookingStatusInProgress,
		entity.BookingStatusNoShow,
	}, cancellations...),
	entity.BookingStatusInProgress: append([]entity.BookingStatus{
		entity.BookingStatusCompleted,
	}, cancellations...),
}

const earlyStartTolerance = time.Hour

// TransitionContext carries facts that may produce warnings. It never changes
// whether a transition is legal; zero values are ignored.
type TransitionContext struct {
	Now            time.Time
	ScheduledStart time.Time
	PaymentStatus  entity.PaymentStatus
}

type TransitionResult struct {
	Allowed bool   `json:"allowed"`
	Warning string `json:"warning,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

func CanTransition(from, to entity.BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns a copy of the outgoing edges of from.
func AllowedTransitions(from entity.BookingStatus) []entity.BookingStatus {
	next := transitions[from]
	out := make([]entity.BookingStatus, len(next))
	copy(out, next)
	return out
}

func ValidateTransition(from, to entity.BookingStatus, tc TransitionContext) TransitionResult {
	if !from.IsValid() {
		return TransitionResult{Reason: fmt.Sprintf("unknown current status %q", from)}
	}
	if !to.IsValid() {
		return TransitionResult{Reason: fmt.Sprintf("unknown target status %q", to)}
	}
	if from.IsTerminal() {
		return TransitionResult{Reason: fmt.Sprintf("booking is %s and can no longer change status", from)}
	}
	if !CanTransition(from, to) {
		return TransitionResult{Reason: fmt.Sprintf("cannot move booking from %s to %s, allowed: %s",
			from, to, joinStatuses(AllowedTransitions(from)))}
	}

	return TransitionResult{Allowed: true, Warning: transitionWarning(to, tc)}
}

func joinStatuses(statuses []entity.BookingStatus) string {
	names := make([]string, len(statuses))
	for i, st := range statuses {
		names[i] = string(st)
	}
	return strings.Join(names, ", ")
}

func transitionWarning(to entity.BookingStatus, tc TransitionContext) string {
	if tc.Now.IsZero() || tc.ScheduledStart.IsZero() {
		return paymentWarning(to, tc.PaymentStatus)
	}

	switch to {
	case entity.BookingStatusNoShow:
		if tc.Now.Before(tc.ScheduledStart) {
			return "marked as no-show before the scheduled start"
		}
	case entity.BookingStatusInProgress:
		if tc.ScheduledStart.Sub(tc.Now) > earlyStartTolerance {
			return "service started more than an hour before the scheduled start"
		}
	}
	return paymentWarning(to, tc.PaymentStatus)
}

func paymentWarning(to entity.BookingStatus, payment entity.PaymentStatus) string {
	if to == entity.BookingStatusCompleted && payment != "" && payment != entity.PaymentStatusPaid {
		return fmt.Sprintf("completed while payment is %s", payment)
	}
	return ""
}
