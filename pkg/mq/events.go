package mq

import "time"

const RoutingKeyStatusChanged = "booking.status_changed"

type StatusChangedEvent struct {
	BookingID  string    `json:"booking_id"`
	Reference  string    `json:"reference"`
	CustomerID string    `json:"customer_id"`
	FromStatus *string   `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ActorID    *string   `json:"actor_id"`
	Reason     *string   `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
