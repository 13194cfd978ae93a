package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/repository"
)

func (r *prescriptionRepository) Create(ctx context.Context, p *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (
			id, appointment_id, doctor_id, patient_id, text, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	p.ID = uuid.New()
	p.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.AppointmentID, p.DoctorID, p.PatientID, p.Text, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error) {
	query := `
		SELECT id, appointment_id, doctor_id, patient_id, text, created_at
		FROM prescriptions
		WHERE id = $1
	`
	var p model.Prescription
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	return &p, nil
}

func (r *prescriptionRepository) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*model.Prescription, error) {
	query := `
		SELECT id, appointment_id, doctor_id, patient_id, text, created_at
		FROM prescriptions
		WHERE appointment_id = $1
	`
	var p model.Prescription
	err := r.db.GetContext(ctx, &p, query, appointmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	return &p, nil
}
