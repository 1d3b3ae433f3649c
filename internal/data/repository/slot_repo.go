package repository

import (
	"context"
	"fmt"
	"time"

	"mobile-booking/internal/data/entity"
	"mobile-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SlotRepository interface {
	Create(ctx context.Context, slot *entity.TimeSlot) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TimeSlot, error)
	FindBySchedule(ctx context.Context, date time.Time, startTime string) (*entity.TimeSlot, error)
	FindAvailableByDate(ctx context.Context, date time.Time) ([]*entity.TimeSlot, error)

	// Claim flips the slot to unavailable only if it is currently available.
	// It reports false when no row matched.
	Claim(ctx context.Context, id uuid.UUID) (bool, error)
	Release(ctx context.Context, id uuid.UUID) error
}

type slotRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSlotRepository(db database.PgxIface, log *zap.Logger) SlotRepository {
	return &slotRepository{
		db:  db,
		log: log.With(zap.String("repository", "time_slot")),
	}
}

func (r *slotRepository) Create(ctx context.Context, slot *entity.TimeSlot) error {
	query := `
		INSERT INTO time_slots (id, slot_date, start_time, is_available, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		slot.ID,
		slot.SlotDate,
		slot.StartTime,
		slot.IsAvailable,
		slot.Notes,
		slot.CreatedAt,
		slot.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create time slot",
			zap.Error(err),
			zap.String("slot_date", slot.SlotDate.Format("2006-01-02")),
			zap.String("start_time", slot.StartTime),
		)
		return fmt.Errorf("create time slot %s %s: %w", slot.SlotDate.Format("2006-01-02"), slot.StartTime, err)
	}

	return nil
}

func (r *slotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TimeSlot, error) {
	query := `
		SELECT id, slot_date, start_time, is_available, notes, created_at, updated_at
		FROM time_slots
		WHERE id = $1
	`

	var slot entity.TimeSlot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&slot.ID,
		&slot.SlotDate,
		&slot.StartTime,
		&slot.IsAvailable,
		&slot.Notes,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find time slot by ID",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return nil, fmt.Errorf("find time slot by ID %s: %w", id.String(), err)
	}

	return &slot, nil
}

func (r *slotRepository) FindBySchedule(ctx context.Context, date time.Time, startTime string) (*entity.TimeSlot, error) {
	query := `
		SELECT id, slot_date, start_time, is_available, notes, created_at, updated_at
		FROM time_slots
		WHERE slot_date = $1 AND start_time = $2
	`

	var slot entity.TimeSlot
	err := r.db.QueryRow(ctx, query, date, startTime).Scan(
		&slot.ID,
		&slot.SlotDate,
		&slot.StartTime,
		&slot.IsAvailable,
		&slot.Notes,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find time slot by schedule",
			zap.Error(err),
			zap.String("slot_date", date.Format("2006-01-02")),
			zap.String("start_time", startTime),
		)
		return nil, fmt.Errorf("find time slot %s %s: %w", date.Format("2006-01-02"), startTime, err)
	}

	return &slot, nil
}

func (r *slotRepository) FindAvailableByDate(ctx context.Context, date time.Time) ([]*entity.TimeSlot, error) {
	query := `
		SELECT id, slot_date, start_time, is_available, notes, created_at, updated_at
		FROM time_slots
		WHERE slot_date = $1 AND is_available = true
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		r.log.Error("Failed to find available time slots",
			zap.Error(err),
			zap.String("slot_date", date.Format("2006-01-02")),
		)
		return nil, fmt.Errorf("find available time slots on %s: %w", date.Format("2006-01-02"), err)
	}
	defer rows.Close()

	var slots []*entity.TimeSlot
	for rows.Next() {
		var slot entity.TimeSlot
		err := rows.Scan(
			&slot.ID,
			&slot.SlotDate,
			&slot.StartTime,
			&slot.IsAvailable,
			&slot.Notes,
			&slot.CreatedAt,
			&slot.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan time slot row", zap.Error(err))
			return nil, fmt.Errorf("scan time slot row: %w", err)
		}
		slots = append(slots, &slot)
	}

	return slots, rows.Err()
}

func (r *slotRepository) Claim(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `UPDATE time_slots SET is_available = false, updated_at = NOW() WHERE id = $1 AND is_available = true`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to claim time slot",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return false, fmt.Errorf("claim time slot %s: %w", id.String(), err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *slotRepository) Release(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE time_slots SET is_available = true, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to release time slot",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return fmt.Errorf("release time slot %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("time slot %s not found", id.String())
	}

	return nil
}
