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

type AddressRepository interface {
	Create(ctx context.Context, address *entity.Address) error
	Find(ctx context.Context, customerID uuid.UUID, street, postalCode string) (*entity.Address, error)
}

type addressRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAddressRepository(db database.PgxIface, log *zap.Logger) AddressRepository {
	return &addressRepository{
		db:  db,
		log: log.With(zap.String("repository", "address")),
	}
}

func (r *addressRepository) Create(ctx context.Context, address *entity.Address) error {
	query := `
		INSERT INTO addresses (id, customer_id, street, city, state, postal_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		address.ID,
		address.CustomerID,
		address.Street,
		address.City,
		address.State,
		address.PostalCode,
		address.CreatedAt,
		address.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create address",
			zap.Error(err),
			zap.String("customer_id", address.CustomerID.String()),
			zap.String("postal_code", address.PostalCode),
		)
		return fmt.Errorf("create address for customer %s: %w", address.CustomerID.String(), err)
	}

	return nil
}

func (r *addressRepository) Find(ctx context.Context, customerID uuid.UUID, street, postalCode string) (*entity.Address, error) {
	query := `
		SELECT id, customer_id, street, city, state, postal_code, created_at, updated_at
		FROM addresses
		WHERE customer_id = $1 AND LOWER(street) = LOWER($2) AND postal_code = $3
	`

	var address entity.Address
	err := r.db.QueryRow(ctx, query, customerID, street, postalCode).Scan(
		&address.ID,
		&address.CustomerID,
		&address.Street,
		&address.City,
		&address.State,
		&address.PostalCode,
		&address.CreatedAt,
		&address.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find address",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
			zap.String("postal_code", postalCode),
		)
		return nil, fmt.Errorf("find address for customer %s: %w", customerID.String(), err)
	}

	return &address, nil
}
