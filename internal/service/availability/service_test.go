package availability

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/medbook/booking-api/internal/model"
	apperrors "github.com/medbook/booking-api/pkg/errors"
	"github.com/medbook/booking-api/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("test", "availability")

// MockAvailabilityRepository is a mock implementation of
// repository.AvailabilityRepository
type MockAvailabilityRepository struct {
	mock.Mock
}

func (m *MockAvailabilityRepository) AddSlots(ctx context.Context, doctorID uuid.UUID, slots []model.NewSlot) ([]*model.AvailabilitySlot, error) {
	args := m.Called(ctx, doctorID, slots)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.AvailabilitySlot), args.Error(1)
}

func (m *MockAvailabilityRepository) ListSlots(ctx context.Context, doctorID uuid.UUID, freeOnly bool) ([]*model.AvailabilitySlot, error) {
	args := m.Called(ctx, doctorID, freeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.AvailabilitySlot), args.Error(1)
}

func (m *MockAvailabilityRepository) FindMatchingSlot(ctx context.Context, key model.SlotKey) (*model.AvailabilitySlot, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AvailabilitySlot), args.Error(1)
}

func (m *MockAvailabilityRepository) RemoveSlot(ctx context.Context, doctorID, slotID uuid.UUID) error {
	args := m.Called(ctx, doctorID, slotID)
	return args.Error(0)
}

func validRequest() *model.AddAvailabilityRequest {
	return &model.AddAvailabilityRequest{
		Slots: []model.NewSlot{
			{Date: "2024-01-10", StartTime: "09:00", EndTime: "09:30"},
			{Date: "2024-01-10", StartTime: "09:30", EndTime: "10:00"},
		},
	}
}

func TestAddSlots(t *testing.T) {
	repo := &MockAvailabilityRepository{}
	svc := NewService(repo, testMetrics)
	doctorID := uuid.New()
	req := validRequest()

	repo.On("AddSlots", mock.Anything, doctorID, req.Slots).
		Return([]*model.AvailabilitySlot{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	actor := model.Actor{ID: doctorID, Role: model.RoleDoctor}
	slots, err := svc.AddSlots(context.Background(), actor, doctorID, req)
	require.NoError(t, err)
	assert.Len(t, slots, 2)
	repo.AssertExpectations(t)
}

func TestAddSlots_Authorization(t *testing.T) {
	doctorID := uuid.New()

	tests := []struct {
		name    string
		actor   model.Actor
		allowed bool
	}{
		{"doctor self", model.Actor{ID: doctorID, Role: model.RoleDoctor}, true},
		{"admin", model.Actor{ID: uuid.New(), Role: model.RoleAdmin}, true},
		{"other doctor", model.Actor{ID: uuid.New(), Role: model.RoleDoctor}, false},
		{"patient", model.Actor{ID: doctorID, Role: model.RolePatient}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockAvailabilityRepository{}
			svc := NewService(repo, testMetrics)
			if tt.allowed {
				repo.On("AddSlots", mock.Anything, doctorID, mock.Anything).
					Return([]*model.AvailabilitySlot{}, nil)
			}

			_, err := svc.AddSlots(context.Background(), tt.actor, doctorID, validRequest())
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperrors.IsCode(err, apperrors.ErrAuthorization))
			}
		})
	}
}

func TestAddSlots_RejectsInvertedInterval(t *testing.T) {
	repo := &MockAvailabilityRepository{}
	svc := NewService(repo, testMetrics)
	doctorID := uuid.New()

	req := &model.AddAvailabilityRequest{
		Slots: []model.NewSlot{{Date: "2024-01-10", StartTime: "10:00", EndTime: "09:00"}},
	}
	actor := model.Actor{ID: doctorID, Role: model.RoleDoctor}
	_, err := svc.AddSlots(context.Background(), actor, doctorID, req)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrValidation))
	repo.AssertNotCalled(t, "AddSlots", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveSlot(t *testing.T) {
	repo := &MockAvailabilityRepository{}
	svc := NewService(repo, testMetrics)
	doctorID := uuid.New()
	slotID := uuid.New()

	// removal is unconditional, booked slots included
	repo.On("RemoveSlot", mock.Anything, doctorID, slotID).Return(nil)
	repo.On("ListSlots", mock.Anything, doctorID, false).Return([]*model.AvailabilitySlot{}, nil)

	actor := model.Actor{ID: doctorID, Role: model.RoleDoctor}
	slots, err := svc.RemoveSlot(context.Background(), actor, doctorID, slotID)
	require.NoError(t, err)
	assert.Empty(t, slots)
	repo.AssertExpectations(t)
}

func TestRemoveSlot_PatientRejected(t *testing.T) {
	repo := &MockAvailabilityRepository{}
	svc := NewService(repo, testMetrics)

	actor := model.Actor{ID: uuid.New(), Role: model.RolePatient}
	_, err := svc.RemoveSlot(context.Background(), actor, uuid.New(), uuid.New())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrAuthorization))
}
