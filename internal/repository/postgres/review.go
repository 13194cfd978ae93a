package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/repository"
)

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (
			id, appointment_id, patient_id, doctor_id, rating, comment,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	review.ID = uuid.New()
	review.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		review.ID,
		review.AppointmentID,
		review.PatientID,
		review.DoctorID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *reviewRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Review, error) {
	query := `
		SELECT id, appointment_id, patient_id, doctor_id, rating,
			   comment, created_at
		FROM reviews
		WHERE doctor_id = $1
		ORDER BY created_at DESC
	`
	var reviews []*model.Review
	if err := r.db.SelectContext(ctx, &reviews, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (r *reviewRepository) GetDoctorRating(ctx context.Context, doctorID uuid.UUID) (*model.DoctorRating, error) {
	query := `
		SELECT $1::uuid AS doctor_id,
			   COUNT(*) AS review_count,
			   COALESCE(AVG(rating), 0) AS average_rating
		FROM reviews
		WHERE doctor_id = $1
	`
	var rating model.DoctorRating
	if err := r.db.GetContext(ctx, &rating, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to get doctor rating: %w", err)
	}
	return &rating, nil
}
