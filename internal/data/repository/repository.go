package repository

import (
	"mobile-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Customer      CustomerRepository
	Vehicle       VehicleRepository
	Address       AddressRepository
	Service       ServiceRepository
	Slot          SlotRepository
	Booking       BookingRepository
	StatusHistory StatusHistoryRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Customer:      NewCustomerRepository(db, log),
		Vehicle:       NewVehicleRepository(db, log),
		Address:       NewAddressRepository(db, log),
		Service:       NewServiceRepository(db, log),
		Slot:          NewSlotRepository(db, log),
		Booking:       NewBookingRepository(db, log),
		StatusHistory: NewStatusHistoryRepository(db, log),
	}
}
