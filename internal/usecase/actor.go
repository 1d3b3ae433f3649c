package usecase

import (
	"mobile-booking/internal/data/entity"

	"github.com/google/uuid"
)

// Actor is the caller identity resolved by the auth middleware.
type Actor struct {
	ID   uuid.UUID
	Role entity.ActorRole
}

func SystemActor() Actor {
	return Actor{Role: entity.RoleSystem}
}

// IsBusiness reports whether the actor acts for the business rather than the customer.
func (a Actor) IsBusiness() bool {
	return a.Role == entity.RoleAdmin || a.Role == entity.RoleStaff || a.Role == entity.RoleSystem
}

// HistoryID is nil for system actors so history shows the change as automatic.
func (a Actor) HistoryID() *uuid.UUID {
	if a.Role == entity.RoleSystem || a.ID == uuid.Nil {
		return nil
	}
	id := a.ID
	return &id
}

func (a Actor) canAccess(b *entity.Booking) bool {
	return a.IsBusiness() || b.CustomerID == a.ID
}
