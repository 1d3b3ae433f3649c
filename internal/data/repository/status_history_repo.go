package repository

import (
	"context"
	"fmt"

	"mobile-booking/internal/data/entity"
	"mobile-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StatusHistoryRepository is append-only: rows are never updated or deleted.
type StatusHistoryRepository interface {
	Append(ctx context.Context, entry *entity.StatusHistoryEntry) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.StatusHistoryEntry, error)
}

type statusHistoryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewStatusHistoryRepository(db database.PgxIface, log *zap.Logger) StatusHistoryRepository {
	return &statusHistoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "status_history")),
	}
}

func (r *statusHistoryRepository) Append(ctx context.Context, entry *entity.StatusHistoryEntry) error {
	query := `
		INSERT INTO booking_status_history (id, booking_id, from_status, to_status, actor_id, reason, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.BookingID,
		entry.FromStatus,
		entry.ToStatus,
		entry.ActorID,
		entry.Reason,
		entry.Notes,
		entry.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to append status history",
			zap.Error(err),
			zap.String("booking_id", entry.BookingID.String()),
			zap.String("to_status", string(entry.ToStatus)),
		)
		return fmt.Errorf("append status history for booking %s: %w", entry.BookingID.String(), err)
	}

	return nil
}

func (r *statusHistoryRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.StatusHistoryEntry, error) {
	query := `
		SELECT id, booking_id, from_status, to_status, actor_id, reason, notes, created_at
		FROM booking_status_history
		WHERE booking_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find status history",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find status history for booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var entries []*entity.StatusHistoryEntry
	for rows.Next() {
		var entry entity.StatusHistoryEntry
		err := rows.Scan(
			&entry.ID,
			&entry.BookingID,
			&entry.FromStatus,
			&entry.ToStatus,
			&entry.ActorID,
			&entry.Reason,
			&entry.Notes,
			&entry.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan status history row", zap.Error(err))
			return nil, fmt.Errorf("scan status history row: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
