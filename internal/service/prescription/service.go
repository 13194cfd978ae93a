package prescription

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/repository"
	appointmentService "github.com/medbook/booking-api/internal/service/appointment"
	apperrors "github.com/medbook/booking-api/pkg/errors"
)

// Service creates and reads prescriptions. Creation is gated on the
// referenced appointment: it must be completed, the actor must be its
// doctor, and no prescription may already exist for it.
type Service struct {
	repo         repository.PrescriptionRepository
	appointments *appointmentService.Service
}

func NewService(repo repository.PrescriptionRepository, appointments *appointmentService.Service) *Service {
	return &Service{repo: repo, appointments: appointments}
}

func (s *Service) CreatePrescription(ctx context.Context, actor model.Actor, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	appointmentID, err := uuid.Parse(req.AppointmentID)
	if err != nil {
		return nil, apperrors.NewValidation("invalid appointment ID", err)
	}

	appointment, err := s.appointments.Resolve(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if actor.Role != model.RoleDoctor || actor.ID != appointment.DoctorID {
		return nil, apperrors.NewAuthorization("only the appointment's doctor may prescribe")
	}
	if appointment.Status != model.AppointmentStatusCompleted {
		return nil, apperrors.NewConflict("appointment is not completed", nil)
	}

	prescription := &model.Prescription{
		AppointmentID: appointment.ID,
		DoctorID:      appointment.DoctorID,
		PatientID:     appointment.PatientID,
		Text:          req.Text,
	}

	if err := s.repo.Create(ctx, prescription); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("a prescription already exists for this appointment", err)
		}
		return nil, apperrors.NewInternal(err)
	}
	return prescription, nil
}

// GetForAppointment returns the appointment's prescription, if any,
// under the appointment's ownership guard.
func (s *Service) GetForAppointment(ctx context.Context, actor model.Actor, appointmentID uuid.UUID) (*model.Prescription, error) {
	appointment, err := s.appointments.Resolve(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := appointmentService.Authorize(actor, appointment); err != nil {
		return nil, err
	}

	prescription, err := s.repo.GetByAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("prescription", err)
		}
		return nil, apperrors.NewInternal(err)
	}
	return prescription, nil
}

// GetPrescription applies the appointment's ownership guard: the
// admin, the patient, or the doctor of the underlying appointment.
func (s *Service) GetPrescription(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Prescription, error) {
	prescription, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("prescription", err)
		}
		return nil, apperrors.NewInternal(err)
	}

	appointment, err := s.appointments.Resolve(ctx, prescription.AppointmentID)
	if err != nil {
		return nil, err
	}
	if err := appointmentService.Authorize(actor, appointment); err != nil {
		return nil, err
	}
	return prescription, nil
}
