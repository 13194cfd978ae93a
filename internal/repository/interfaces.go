package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/medbook/booking-api/internal/model"
)

// All repository interfaces in one file
type (
	// UserDirectory is the read-only view of the user store this
	// service consumes. Account lifecycle lives elsewhere.
	UserDirectory interface {
		GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	}

	// AvailabilityRepository owns a doctor's published slots.
	AvailabilityRepository interface {
		// AddSlots appends the given slots verbatim. Overlap with
		// existing slots is not validated.
		AddSlots(ctx context.Context, doctorID uuid.UUID, slots []model.NewSlot) ([]*model.AvailabilitySlot, error)
		ListSlots(ctx context.Context, doctorID uuid.UUID, freeOnly bool) ([]*model.AvailabilitySlot, error)
		// FindMatchingSlot returns the free slot covering the key, or
		// ErrNotFound.
		FindMatchingSlot(ctx context.Context, key model.SlotKey) (*model.AvailabilitySlot, error)
		// RemoveSlot deletes the slot unconditionally, booked or not.
		RemoveSlot(ctx context.Context, doctorID, slotID uuid.UUID) error
	}

	// AppointmentRepository owns the appointment ledger. Appointments
	// are never deleted.
	AppointmentRepository interface {
		// Book atomically claims the free slot covering the
		// appointment's (doctor, date, time) and inserts the
		// appointment as scheduled. Exactly one of any set of
		// concurrent bookings for a slot succeeds; losers get
		// ErrSlotUnavailable. A second scheduled appointment for the
		// same patient at the same (date, time) gets ErrDuplicate.
		Book(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		HasScheduledAt(ctx context.Context, patientID uuid.UUID, date, timeOfDay string) (bool, error)
		// Transition moves the appointment from scheduled to the
		// target status, updating notes if non-nil. The update is
		// conditional on the current status still being scheduled;
		// ErrNotFound means the row is missing or a concurrent
		// transition won. A transition to cancelled releases the slot
		// resolved by the appointment's SlotKey in the same
		// transaction.
		Transition(ctx context.Context, id uuid.UUID, target model.AppointmentStatus, notes *string) (*model.Appointment, error)
	}

	PrescriptionRepository interface {
		// Create inserts the prescription; ErrDuplicate if one already
		// exists for the appointment.
		Create(ctx context.Context, p *model.Prescription) error
		Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error)
		GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*model.Prescription, error)
	}

	ReviewRepository interface {
		// Create inserts the review; ErrDuplicate if the review is
		// tied to an appointment that already has one.
		Create(ctx context.Context, r *model.Review) error
		ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Review, error)
		GetDoctorRating(ctx context.Context, doctorID uuid.UUID) (*model.DoctorRating, error)
	}
)
