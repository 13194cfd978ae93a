package availability

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/repository"
	apperrors "github.com/medbook/booking-api/pkg/errors"
	"github.com/medbook/booking-api/pkg/metrics"
)

// Service owns a doctor's published availability slots.
type Service struct {
	repo    repository.AvailabilityRepository
	metrics *metrics.Metrics
}

func NewService(repo repository.AvailabilityRepository, m *metrics.Metrics) *Service {
	return &Service{repo: repo, metrics: m}
}

// AddSlots appends the given slots to the doctor's availability.
// Slots are stored verbatim; overlap with existing slots is not
// validated. Only the doctor themselves or an admin may publish.
func (s *Service) AddSlots(ctx context.Context, actor model.Actor, doctorID uuid.UUID, req *model.AddAvailabilityRequest) ([]*model.AvailabilitySlot, error) {
	if err := authorizeSlotWrite(actor, doctorID); err != nil {
		return nil, err
	}

	for i, slot := range req.Slots {
		if slot.StartTime >= slot.EndTime {
			return nil, apperrors.NewValidation(
				fmt.Sprintf("slot %d: start_time must be before end_time", i), nil)
		}
	}

	slots, err := s.repo.AddSlots(ctx, doctorID, req.Slots)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}

	s.metrics.SlotsPublished.Add(float64(len(req.Slots)))
	return slots, nil
}

func (s *Service) ListSlots(ctx context.Context, doctorID uuid.UUID, freeOnly bool) ([]*model.AvailabilitySlot, error) {
	slots, err := s.repo.ListSlots(ctx, doctorID, freeOnly)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	return slots, nil
}

// RemoveSlot deletes a slot regardless of its booked state. A booked
// slot's appointment survives the removal; cancellation of that
// appointment then releases nothing.
func (s *Service) RemoveSlot(ctx context.Context, actor model.Actor, doctorID, slotID uuid.UUID) ([]*model.AvailabilitySlot, error) {
	if err := authorizeSlotWrite(actor, doctorID); err != nil {
		return nil, err
	}

	if err := s.repo.RemoveSlot(ctx, doctorID, slotID); err != nil {
		return nil, apperrors.NewInternal(err)
	}
	s.metrics.SlotsRemoved.Inc()

	slots, err := s.repo.ListSlots(ctx, doctorID, false)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	return slots, nil
}

func authorizeSlotWrite(actor model.Actor, doctorID uuid.UUID) error {
	if actor.Role == model.RoleAdmin {
		return nil
	}
	if actor.Role == model.RoleDoctor && actor.ID == doctorID {
		return nil
	}
	return apperrors.NewAuthorization("only the doctor or an admin may manage availability")
}
