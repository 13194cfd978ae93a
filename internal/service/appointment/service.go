package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/repository"
	apperrors "github.com/medbook/booking-api/pkg/errors"
	"github.com/medbook/booking-api/pkg/metrics"
)

// Service owns appointment reads and the status state machine.
type Service struct {
	repo    repository.AppointmentRepository
	metrics *metrics.Metrics
}

func NewService(repo repository.AppointmentRepository, m *metrics.Metrics) *Service {
	return &Service{repo: repo, metrics: m}
}

func (s *Service) GetAppointment(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actor, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// ListAppointments returns the actor's view, sorted by (date, time)
// ascending: patients and doctors see their own appointments, admins
// see everything.
func (s *Service) ListAppointments(ctx context.Context, actor model.Actor, status model.AppointmentStatus) ([]*model.Appointment, error) {
	if status != "" && !status.Valid() {
		return nil, apperrors.NewValidation("invalid status filter", nil)
	}

	filters := &model.AppointmentFilters{Status: status}
	switch actor.Role {
	case model.RoleAdmin:
	case model.RoleDoctor:
		filters.DoctorID = actor.ID
	default:
		filters.PatientID = actor.ID
	}

	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	return appointments, nil
}

// UpdateStatus applies a status transition. The repository update is
// conditional on the appointment still being scheduled, so concurrent
// transitions on the same appointment serialize; the loser gets an
// invalid-transition error. A transition to cancelled releases the
// slot in the same transaction; completion never touches slots.
func (s *Service) UpdateStatus(ctx context.Context, actor model.Actor, id uuid.UUID, req *model.UpdateAppointmentStatusRequest) (*model.Appointment, error) {
	appointment, err := s.updateStatus(ctx, actor, id, req)
	s.metrics.TransitionsTotal.WithLabelValues(string(req.Status), transitionOutcome(err)).Inc()
	return appointment, err
}

func (s *Service) updateStatus(ctx context.Context, actor model.Actor, id uuid.UUID, req *model.UpdateAppointmentStatusRequest) (*model.Appointment, error) {
	appointment, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := checkTransition(actor, appointment, req.Status); err != nil {
		return nil, err
	}

	updated, err := s.repo.Transition(ctx, id, req.Status, req.Notes)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// The guard above saw a scheduled appointment; someone
			// else transitioned it in between.
			return nil, apperrors.NewInvalidTransition("appointment is no longer scheduled")
		}
		return nil, apperrors.NewInternal(err)
	}

	log.Info().
		Str("appointment_id", id.String()).
		Str("status", string(req.Status)).
		Str("actor_id", actor.ID.String()).
		Str("actor_role", string(actor.Role)).
		Msg("appointment status updated")

	return updated, nil
}

// Resolve fetches an appointment without an ownership check, for
// services that apply their own gating rules against it.
func (s *Service) Resolve(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.get(ctx, id)
}

func (s *Service) get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("appointment", err)
		}
		return nil, apperrors.NewInternal(err)
	}
	return appointment, nil
}

func transitionOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case apperrors.IsCode(err, apperrors.ErrAuthorization):
		return "forbidden"
	case apperrors.IsCode(err, apperrors.ErrInvalidTransition):
		return "invalid"
	case apperrors.IsCode(err, apperrors.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
