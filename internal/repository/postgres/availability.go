package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/repository"
)

// slotKeyPredicate resolves a slot from a (doctor, date, time) key:
// same doctor and date, start_time <= time < end_time. Booking and
// cancellation both go through this predicate so the two paths can
// never diverge.
const slotKeyPredicate = `doctor_id = $1 AND date = $2 AND start_time <= $3 AND end_time > $3`

func (r *availabilityRepository) AddSlots(ctx context.Context, doctorID uuid.UUID, slots []model.NewSlot) ([]*model.AvailabilitySlot, error) {
	query := `
		INSERT INTO availability_slots (
			id, doctor_id, date, start_time, end_time, is_booked,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, FALSE, $6, $6)
	`

	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		now := time.Now()
		for _, s := range slots {
			if _, err := tx.ExecContext(ctx, query,
				uuid.New(), doctorID, s.Date, s.StartTime, s.EndTime, now,
			); err != nil {
				return fmt.Errorf("failed to insert slot: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.ListSlots(ctx, doctorID, false)
}

func (r *availabilityRepository) ListSlots(ctx context.Context, doctorID uuid.UUID, freeOnly bool) ([]*model.AvailabilitySlot, error) {
	query := `
		SELECT id, doctor_id, date, start_time, end_time, is_booked,
			   created_at, updated_at
		FROM availability_slots
		WHERE doctor_id = $1
	`
	if freeOnly {
		query += " AND NOT is_booked"
	}
	query += " ORDER BY date, start_time"

	var slots []*model.AvailabilitySlot
	if err := r.db.SelectContext(ctx, &slots, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return slots, nil
}

func (r *availabilityRepository) FindMatchingSlot(ctx context.Context, key model.SlotKey) (*model.AvailabilitySlot, error) {
	query := `
		SELECT id, doctor_id, date, start_time, end_time, is_booked,
			   created_at, updated_at
		FROM availability_slots
		WHERE ` + slotKeyPredicate + ` AND NOT is_booked
		ORDER BY start_time, id
		LIMIT 1
	`
	var slot model.AvailabilitySlot
	err := r.db.GetContext(ctx, &slot, query, key.DoctorID, key.Date, key.Time)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find matching slot: %w", err)
	}
	return &slot, nil
}

func (r *availabilityRepository) RemoveSlot(ctx context.Context, doctorID, slotID uuid.UUID) error {
	// Deletes unconditionally, booked or not. Removing an already
	// absent slot is not an error.
	query := `
		DELETE FROM availability_slots
		WHERE doctor_id = $1 AND id = $2
	`
	if _, err := r.db.ExecContext(ctx, query, doctorID, slotID); err != nil {
		return fmt.Errorf("failed to remove slot: %w", err)
	}
	return nil
}
