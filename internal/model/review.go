package model

import (
	"time"

	"github.com/google/uuid"
)

// Review optionally references an appointment. A review tied to an
// appointment is gated on that appointment's state; a review with no
// appointment bypasses the gate entirely.
type Review struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	AppointmentID *uuid.UUID `db:"appointment_id" json:"appointment_id,omitempty"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID      uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	Rating        int        `db:"rating" json:"rating"`
	Comment       string     `db:"comment" json:"comment,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

type CreateReviewRequest struct {
	AppointmentID *string `json:"appointment_id" validate:"omitempty,uuid"`
	DoctorID      string  `json:"doctor_id" validate:"required,uuid"`
	Rating        int     `json:"rating" validate:"required,min=1,max=5"`
	Comment       string  `json:"comment" validate:"max=2000"`
}

// DoctorRating is the aggregate exposed on a doctor's review listing.
type DoctorRating struct {
	DoctorID      uuid.UUID `db:"doctor_id" json:"doctor_id"`
	ReviewCount   int       `db:"review_count" json:"review_count"`
	AverageRating float64   `db:"average_rating" json:"average_rating"`
}
