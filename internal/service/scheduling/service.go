package scheduling

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/repository"
	apperrors "github.com/medbook/booking-api/pkg/errors"
	"github.com/medbook/booking-api/pkg/metrics"
)

// Service orchestrates booking: doctor resolution, slot matching,
// double-booking rejection, and the atomic claim+create.
type Service struct {
	appointments repository.AppointmentRepository
	availability repository.AvailabilityRepository
	directory    repository.UserDirectory
	metrics      *metrics.Metrics
}

func NewService(
	appointments repository.AppointmentRepository,
	availability repository.AvailabilityRepository,
	directory repository.UserDirectory,
	m *metrics.Metrics,
) *Service {
	return &Service{
		appointments: appointments,
		availability: availability,
		directory:    directory,
		metrics:      m,
	}
}

// BookAppointment books the patient with the doctor at the requested
// (date, time). The slot claim and the appointment insert commit as
// one unit; under concurrent bookings of the same slot exactly one
// caller succeeds.
func (s *Service) BookAppointment(ctx context.Context, patientID uuid.UUID, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	start := time.Now()
	appointment, err := s.book(ctx, patientID, req)
	s.metrics.BookingLatency.Observe(time.Since(start).Seconds())
	s.metrics.BookingsTotal.WithLabelValues(bookingOutcome(err)).Inc()
	return appointment, err
}

func (s *Service) book(ctx context.Context, patientID uuid.UUID, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, apperrors.NewValidation("invalid doctor ID", err)
	}

	doctor, err := s.directory.GetUser(ctx, doctorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("doctor", err)
		}
		return nil, apperrors.NewInternal(err)
	}
	if doctor.Role != model.RoleDoctor || !doctor.IsVerified {
		return nil, apperrors.NewNotFound("doctor", nil)
	}

	key := model.SlotKey{DoctorID: doctorID, Date: req.Date, Time: req.Time}

	// Pre-checks give precise failures; the booking transaction below
	// re-verifies both conditions, so a stale read here cannot corrupt
	// state, only change which error the loser sees.
	if _, err := s.availability.FindMatchingSlot(ctx, key); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewValidation("no matching availability slot for the requested time", nil)
		}
		return nil, apperrors.NewInternal(err)
	}

	booked, err := s.appointments.HasScheduledAt(ctx, patientID, req.Date, req.Time)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	if booked {
		return nil, apperrors.NewValidation("patient already has a scheduled appointment at this time", nil)
	}

	appointment := &model.Appointment{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      req.Date,
		Time:      req.Time,
		Reason:    req.Reason,
		Notes:     req.Notes,
	}

	if err := s.appointments.Book(ctx, appointment); err != nil {
		switch {
		case errors.Is(err, repository.ErrSlotUnavailable):
			return nil, apperrors.NewConflict("slot is no longer available", err)
		case errors.Is(err, repository.ErrDuplicate):
			return nil, apperrors.NewConflict("patient already has a scheduled appointment at this time", err)
		default:
			return nil, apperrors.NewInternal(err)
		}
	}

	log.Info().
		Str("appointment_id", appointment.ID.String()).
		Str("doctor_id", doctorID.String()).
		Str("patient_id", patientID.String()).
		Str("date", req.Date).
		Str("time", req.Time).
		Msg("appointment booked")

	return appointment, nil
}

func bookingOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case apperrors.IsCode(err, apperrors.ErrNotFound):
		return "doctor_not_found"
	case apperrors.IsCode(err, apperrors.ErrConflict):
		return "conflict"
	case apperrors.IsCode(err, apperrors.ErrValidation):
		return "rejected"
	default:
		return "error"
	}
}
