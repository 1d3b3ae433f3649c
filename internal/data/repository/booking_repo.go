package repository

import (
	"context"
	"errors"
	"fmt"

	"mobile-booking/internal/data/entity"
	"mobile-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var (
	// ErrBookingChanged means the row no longer matches the state the caller read.
	ErrBookingChanged = errors.New("booking changed concurrently")
	// ErrDuplicateReference means another booking already uses the reference.
	ErrDuplicateReference = errors.New("booking reference already in use")
)

const referenceConstraint = "bookings_reference_key"

// BookingState is what a guarded update expects to find in the stored row.
type BookingState struct {
	Status        entity.BookingStatus
	SlotID        *uuid.UUID
	PaymentStatus entity.PaymentStatus
}

func StateOf(b *entity.Booking) BookingState {
	return BookingState{
		Status:        b.Status,
		SlotID:        b.SlotID,
		PaymentStatus: b.PaymentStatus,
	}
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByReference(ctx context.Context, reference string) (*entity.Booking, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error)
	// Update writes booking only if the stored row still matches expect;
	// otherwise it returns ErrBookingChanged.
	Update(ctx context.Context, booking *entity.Booking, expect BookingState) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `
	id, reference, customer_id, service_id, vehicle_id, address_id, slot_id,
	base_price, size_multiplier, distance_surcharge, total_price, status, special_instructions,
	scheduled_date, scheduled_start, scheduled_end,
	payment_status, payment_reference, cancellation_fee, refund_amount, cancellation_reason, cancelled_at,
	service_name, service_duration_minutes,
	vehicle_make, vehicle_model, vehicle_year, vehicle_size, vehicle_license_plate,
	address_street, address_city, address_state, address_postal_code,
	created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.Reference,
		&b.CustomerID,
		&b.ServiceID,
		&b.VehicleID,
		&b.AddressID,
		&b.SlotID,
		&b.BasePrice,
		&b.SizeMultiplier,
		&b.DistanceSurcharge,
		&b.TotalPrice,
		&b.Status,
		&b.SpecialInstructions,
		&b.ScheduledDate,
		&b.ScheduledStart,
		&b.ScheduledEnd,
		&b.PaymentStatus,
		&b.PaymentReference,
		&b.CancellationFee,
		&b.RefundAmount,
		&b.CancellationReason,
		&b.CancelledAt,
		&b.ServiceName,
		&b.ServiceDurationMinutes,
		&b.VehicleMake,
		&b.VehicleModel,
		&b.VehicleYear,
		&b.VehicleSize,
		&b.VehicleLicensePlate,
		&b.AddressStreet,
		&b.AddressCity,
		&b.AddressState,
		&b.AddressPostalCode,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *entity.Booking) error {
	query := `INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
		        $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33, $34, $35)
	`

	_, err := r.db.Exec(ctx, query,
		b.ID,
		b.Reference,
		b.CustomerID,
		b.ServiceID,
		b.VehicleID,
		b.AddressID,
		b.SlotID,
		b.BasePrice,
		b.SizeMultiplier,
		b.DistanceSurcharge,
		b.TotalPrice,
		b.Status,
		b.SpecialInstructions,
		b.ScheduledDate,
		b.ScheduledStart,
		b.ScheduledEnd,
		b.PaymentStatus,
		b.PaymentReference,
		b.CancellationFee,
		b.RefundAmount,
		b.CancellationReason,
		b.CancelledAt,
		b.ServiceName,
		b.ServiceDurationMinutes,
		b.VehicleMake,
		b.VehicleModel,
		b.VehicleYear,
		b.VehicleSize,
		b.VehicleLicensePlate,
		b.AddressStreet,
		b.AddressCity,
		b.AddressState,
		b.AddressPostalCode,
		b.CreatedAt,
		b.UpdatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == referenceConstraint {
		return fmt.Errorf("create booking %s: %w", b.Reference, ErrDuplicateReference)
	}
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("reference", b.Reference),
			zap.String("customer_id", b.CustomerID.String()),
		)
		return fmt.Errorf("create booking %s: %w", b.Reference, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE reference = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, reference))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by reference",
			zap.Error(err),
			zap.String("reference", reference),
		)
		return nil, fmt.Errorf("find booking by reference %s: %w", reference, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE customer_id = $1
		ORDER BY scheduled_start DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by customer ID",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by customer ID %s: %w", customerID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE customer_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, customerID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by customer ID",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return 0, fmt.Errorf("count bookings by customer ID %s: %w", customerID.String(), err)
	}

	return count, nil
}

// Update rewrites the mutable part of a booking. The price and the snapshot
// are fixed at creation and are not touched here.
func (r *bookingRepository) Update(ctx context.Context, b *entity.Booking, expect BookingState) error {
	query := `
		UPDATE bookings
		SET slot_id = $2, status = $3, scheduled_date = $4, scheduled_start = $5, scheduled_end = $6,
		    payment_status = $7, payment_reference = $8, cancellation_fee = $9, refund_amount = $10,
		    cancellation_reason = $11, cancelled_at = $12, special_instructions = $13, updated_at = $14
		WHERE id = $1
		  AND status = $15
		  AND slot_id IS NOT DISTINCT FROM $16
		  AND payment_status = $17
	`

	result, err := r.db.Exec(ctx, query,
		b.ID,
		b.SlotID,
		b.Status,
		b.ScheduledDate,
		b.ScheduledStart,
		b.ScheduledEnd,
		b.PaymentStatus,
		b.PaymentReference,
		b.CancellationFee,
		b.RefundAmount,
		b.CancellationReason,
		b.CancelledAt,
		b.SpecialInstructions,
		b.UpdatedAt,
		expect.Status,
		expect.SlotID,
		expect.PaymentStatus,
	)

	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", b.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", b.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		r.log.Info("Booking update lost to a concurrent change",
			zap.String("booking_id", b.ID.String()),
			zap.String("expected_status", string(expect.Status)),
		)
		return fmt.Errorf("update booking %s: %w", b.ID.String(), ErrBookingChanged)
	}

	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bookings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}
