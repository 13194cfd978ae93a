package model

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilitySlot is a doctor-published interval of availability,
// bookable at most once while is_booked is false.
type AvailabilitySlot struct {
	ID        uuid.UUID `db:"id" json:"id"`
	DoctorID  uuid.UUID `db:"doctor_id" json:"doctor_id"`
	Date      string    `db:"date" json:"date"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	IsBooked  bool      `db:"is_booked" json:"is_booked"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SlotKey is the (doctor, date, time) key used to resolve a slot.
// Booking and cancellation both resolve slots through this key so
// the two paths can never diverge.
type SlotKey struct {
	DoctorID uuid.UUID
	Date     string
	Time     string
}

// Covers reports whether the slot matches the key: same doctor and
// date, and start_time <= time < end_time.
func (k SlotKey) Covers(s *AvailabilitySlot) bool {
	return s.DoctorID == k.DoctorID &&
		s.Date == k.Date &&
		s.StartTime <= k.Time &&
		k.Time < s.EndTime
}

// NewSlot is a single slot in an availability-add request.
type NewSlot struct {
	Date      string `json:"date" validate:"required,date"`
	StartTime string `json:"start_time" validate:"required,timeofday"`
	EndTime   string `json:"end_time" validate:"required,timeofday"`
}

type AddAvailabilityRequest struct {
	Slots []NewSlot `json:"slots" validate:"required,min=1,dive"`
}
