package model

import (
	"time"

	"github.com/google/uuid"
)

// Prescription references exactly one appointment; at most one
// prescription exists per appointment.
type Prescription struct {
	ID            uuid.UUID `db:"id" json:"id"`
	AppointmentID uuid.UUID `db:"appointment_id" json:"appointment_id"`
	DoctorID      uuid.UUID `db:"doctor_id" json:"doctor_id"`
	PatientID     uuid.UUID `db:"patient_id" json:"patient_id"`
	Text          string    `db:"text" json:"text"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type CreatePrescriptionRequest struct {
	AppointmentID string `json:"appointment_id" validate:"required,uuid"`
	Text          string `json:"text" validate:"required,max=4000"`
}
