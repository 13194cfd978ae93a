package review

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/repository"
	appointmentService "github.com/medbook/booking-api/internal/service/appointment"
	apperrors "github.com/medbook/booking-api/pkg/errors"
)

// Service creates and lists doctor reviews. A review tied to an
// appointment is gated on it: completed, reviewer is its patient,
// reviewed doctor is its doctor, and no review exists for it yet. A
// review with no appointment bypasses the gate.
type Service struct {
	repo         repository.ReviewRepository
	directory    repository.UserDirectory
	appointments *appointmentService.Service
}

func NewService(repo repository.ReviewRepository, directory repository.UserDirectory, appointments *appointmentService.Service) *Service {
	return &Service{repo: repo, directory: directory, appointments: appointments}
}

func (s *Service) CreateReview(ctx context.Context, actor model.Actor, req *model.CreateReviewRequest) (*model.Review, error) {
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
	if doctor.Role != model.RoleDoctor {
		return nil, apperrors.NewNotFound("doctor", nil)
	}

	review := &model.Review{
		PatientID: actor.ID,
		DoctorID:  doctorID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if req.AppointmentID != nil {
		appointmentID, err := uuid.Parse(*req.AppointmentID)
		if err != nil {
			return nil, apperrors.NewValidation("invalid appointment ID", err)
		}

		appointment, err := s.appointments.Resolve(ctx, appointmentID)
		if err != nil {
			return nil, err
		}
		if actor.ID != appointment.PatientID {
			return nil, apperrors.NewAuthorization("only the appointment's patient may review it")
		}
		if doctorID != appointment.DoctorID {
			return nil, apperrors.NewValidation("reviewed doctor does not match the appointment", nil)
		}
		if appointment.Status != model.AppointmentStatusCompleted {
			return nil, apperrors.NewConflict("appointment is not completed", nil)
		}
		review.AppointmentID = &appointment.ID
	}

	if err := s.repo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("a review already exists for this appointment", err)
		}
		return nil, apperrors.NewInternal(err)
	}
	return review, nil
}

func (s *Service) ListDoctorReviews(ctx context.Context, doctorID uuid.UUID) ([]*model.Review, *model.DoctorRating, error) {
	reviews, err := s.repo.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, nil, apperrors.NewInternal(err)
	}

	rating, err := s.repo.GetDoctorRating(ctx, doctorID)
	if err != nil {
		return nil, nil, apperrors.NewInternal(err)
	}
	return reviews, rating, nil
}
