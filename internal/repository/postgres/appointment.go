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

const appointmentColumns = `
	id, patient_id, doctor_id, date, "time", status, reason, notes,
	created_at, updated_at
`

func (r *appointmentRepository) Book(ctx context.Context, appointment *model.Appointment) error {
	// The slot claim is a conditional update: the subquery picks the
	// free covering slot, the UPDATE flips is_booked only if it is
	// still false. Under concurrent bookings exactly one transaction
	// claims the row; the others see zero rows and roll back. The
	// appointment insert rides in the same transaction, so a claimed
	// slot without an appointment (or the reverse) cannot be
	// committed.
	claim := `
		UPDATE availability_slots
		SET is_booked = TRUE, updated_at = now()
		WHERE id = (
			SELECT id FROM availability_slots
			WHERE ` + slotKeyPredicate + ` AND NOT is_booked
			ORDER BY start_time, id
			FOR UPDATE SKIP LOCKED
			LIMIT 1
		)
		RETURNING id
	`
	insert := `
		INSERT INTO appointments (` + appointmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	appointment.ID = uuid.New()
	appointment.Status = model.AppointmentStatusScheduled
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = appointment.CreatedAt

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		key := appointment.SlotKey()

		var slotID uuid.UUID
		err := tx.GetContext(ctx, &slotID, claim, key.DoctorID, key.Date, key.Time)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return repository.ErrSlotUnavailable
			}
			return fmt.Errorf("failed to claim slot: %w", err)
		}

		_, err = tx.ExecContext(ctx, insert,
			appointment.ID,
			appointment.PatientID,
			appointment.DoctorID,
			appointment.Date,
			appointment.Time,
			appointment.Status,
			appointment.Reason,
			appointment.Notes,
			appointment.CreatedAt,
			appointment.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return repository.ErrDuplicate
			}
			return fmt.Errorf("failed to create appointment: %w", err)
		}
		return nil
	})
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE id = $1
	`
	var appointment model.Appointment
	err := r.db.GetContext(ctx, &appointment, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if filters.PatientID != uuid.Nil {
		query += fmt.Sprintf(" AND patient_id = $%d", argCount)
		args = append(args, filters.PatientID)
		argCount++
	}

	if filters.DoctorID != uuid.Nil {
		query += fmt.Sprintf(" AND doctor_id = $%d", argCount)
		args = append(args, filters.DoctorID)
		argCount++
	}

	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}

	query += ` ORDER BY date, "time"`

	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) HasScheduledAt(ctx context.Context, patientID uuid.UUID, date, timeOfDay string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE patient_id = $1 AND date = $2 AND "time" = $3
			AND status = 'scheduled'
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, patientID, date, timeOfDay)
	if err != nil {
		return false, fmt.Errorf("failed to check patient bookings: %w", err)
	}
	return exists, nil
}

func (r *appointmentRepository) Transition(ctx context.Context, id uuid.UUID, target model.AppointmentStatus, notes *string) (*model.Appointment, error) {
	// Conditional on the source status, so two concurrent transitions
	// on the same appointment serialize: the second matches no row.
	update := `
		UPDATE appointments
		SET status = $2, notes = COALESCE($3, notes), updated_at = now()
		WHERE id = $1 AND status = 'scheduled'
		RETURNING ` + appointmentColumns + `
	`
	release := `
		UPDATE availability_slots
		SET is_booked = FALSE, updated_at = now()
		WHERE id = (
			SELECT id FROM availability_slots
			WHERE ` + slotKeyPredicate + ` AND is_booked
			ORDER BY start_time, id
			FOR UPDATE SKIP LOCKED
			LIMIT 1
		)
	`

	var appointment model.Appointment
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &appointment, update, id, target, notes)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return repository.ErrNotFound
			}
			return fmt.Errorf("failed to update appointment status: %w", err)
		}

		// Cancellation frees exactly one slot, located by the same
		// ordered one-row selection the claim uses. Overlapping slots
		// may all cover the key; flipping more than one would free
		// capacity still held by other appointments. The slot may have
		// been removed meanwhile; releasing nothing is fine.
		if target == model.AppointmentStatusCancelled {
			key := appointment.SlotKey()
			if _, err := tx.ExecContext(ctx, release, key.DoctorID, key.Date, key.Time); err != nil {
				return fmt.Errorf("failed to release slot: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}
