package entity

import "github.com/google/uuid"

type VehicleSize string

const (
	VehicleSizeSmall      VehicleSize = "small"
	VehicleSizeMedium     VehicleSize = "medium"
	VehicleSizeLarge      VehicleSize = "large"
	VehicleSizeExtraLarge VehicleSize = "extra_large"
)

type Vehicle struct {
	Base
	CustomerID   uuid.UUID   `db:"customer_id"`
	Make         string      `db:"make"`
	Model        string      `db:"model"`
	Year         int         `db:"year"`
	Size         VehicleSize `db:"size"`
	Color        *string     `db:"color"`
	LicensePlate string      `db:"license_plate"`
}
