package entity

import "github.com/google/uuid"

type StatusHistoryEntry struct {
	BaseSimple
	BookingID  uuid.UUID      `db:"booking_id"`
	FromStatus *BookingStatus `db:"from_status"`
	ToStatus   BookingStatus  `db:"to_status"`
	ActorID    *uuid.UUID     `db:"actor_id"`
	Reason     *string        `db:"reason"`
	Notes      *string        `db:"notes"`
}
