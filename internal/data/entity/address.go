package entity

import "github.com/google/uuid"

type Address struct {
	Base
	CustomerID uuid.UUID `db:"customer_id"`
	Street     string    `db:"street"`
	City       string    `db:"city"`
	State      string    `db:"state"`
	PostalCode string    `db:"postal_code"`
}
