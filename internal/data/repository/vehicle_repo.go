package repository

import (
	"context"
	"fmt"

	"mobile-booking/internal/data/entity"
	"mobile-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	FindByPlate(ctx context.Context, customerID uuid.UUID, licensePlate string) (*entity.Vehicle, error)
}

type vehicleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVehicleRepository(db database.PgxIface, log *zap.Logger) VehicleRepository {
	return &vehicleRepository{
		db:  db,
		log: log.With(zap.String("repository", "vehicle")),
	}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, customer_id, make, model, year, size, color, license_plate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		vehicle.ID,
		vehicle.CustomerID,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.Size,
		vehicle.Color,
		vehicle.LicensePlate,
		vehicle.CreatedAt,
		vehicle.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create vehicle",
			zap.Error(err),
			zap.String("customer_id", vehicle.CustomerID.String()),
			zap.String("license_plate", vehicle.LicensePlate),
		)
		return fmt.Errorf("create vehicle %s: %w", vehicle.LicensePlate, err)
	}

	return nil
}

func (r *vehicleRepository) FindByPlate(ctx context.Context, customerID uuid.UUID, licensePlate string) (*entity.Vehicle, error) {
	query := `
		SELECT id, customer_id, make, model, year, size, color, license_plate, created_at, updated_at
		FROM vehicles
		WHERE customer_id = $1 AND UPPER(license_plate) = UPPER($2)
	`

	var vehicle entity.Vehicle
	err := r.db.QueryRow(ctx, query, customerID, licensePlate).Scan(
		&vehicle.ID,
		&vehicle.CustomerID,
		&vehicle.Make,
		&vehicle.Model,
		&vehicle.Year,
		&vehicle.Size,
		&vehicle.Color,
		&vehicle.LicensePlate,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vehicle by plate",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
			zap.String("license_plate", licensePlate),
		)
		return nil, fmt.Errorf("find vehicle %s: %w", licensePlate, err)
	}

	return &vehicle, nil
}
