package review

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/repository"
	appointmentService "github.com/medbook/booking-api/internal/service/appointment"
	apperrors "github.com/medbook/booking-api/pkg/errors"
	"github.com/medbook/booking-api/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("test", "review")

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, r *model.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReviewRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Review, error) {
	args := m.Called(ctx, doctorID)
	return args.Get(0).([]*model.Review), args.Error(1)
}

func (m *MockReviewRepository) GetDoctorRating(ctx context.Context, doctorID uuid.UUID) (*model.DoctorRating, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DoctorRating), args.Error(1)
}

type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Book(ctx context.Context, appointment *model.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*model.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) HasScheduledAt(ctx context.Context, patientID uuid.UUID, date, timeOfDay string) (bool, error) {
	args := m.Called(ctx, patientID, date, timeOfDay)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentRepository) Transition(ctx context.Context, id uuid.UUID, target model.AppointmentStatus, notes *string) (*model.Appointment, error) {
	args := m.Called(ctx, id, target, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appointment), args.Error(1)
}

type fixture struct {
	svc             *Service
	reviews         *MockReviewRepository
	directory       *MockUserDirectory
	appointmentRepo *MockAppointmentRepository
	doctor          *model.User
	appointment     *model.Appointment
}

func newFixture() *fixture {
	reviews := &MockReviewRepository{}
	directory := &MockUserDirectory{}
	appointmentRepo := &MockAppointmentRepository{}
	appointments := appointmentService.NewService(appointmentRepo, testMetrics)

	doctor := &model.User{ID: uuid.New(), Role: model.RoleDoctor, IsVerified: true}
	appointment := &model.Appointment{
		ID:        uuid.New(),
		PatientID: uuid.New(),
		DoctorID:  doctor.ID,
		Date:      "2024-01-10",
		Time:      "09:00",
		Status:    model.AppointmentStatusCompleted,
	}
	return &fixture{
		svc:             NewService(reviews, directory, appointments),
		reviews:         reviews,
		directory:       directory,
		appointmentRepo: appointmentRepo,
		doctor:          doctor,
		appointment:     appointment,
	}
}

func TestCreateReview_TiedToAppointment(t *testing.T) {
	f := newFixture()
	f.directory.On("GetUser", mock.Anything, f.doctor.ID).Return(f.doctor, nil)
	f.appointmentRepo.On("Get", mock.Anything, f.appointment.ID).Return(f.appointment, nil)
	f.reviews.On("Create", mock.Anything, mock.MatchedBy(func(r *model.Review) bool {
		return r.AppointmentID != nil && *r.AppointmentID == f.appointment.ID
	})).Return(nil)

	appointmentID := f.appointment.ID.String()
	actor := model.Actor{ID: f.appointment.PatientID, Role: model.RolePatient}
	review, err := f.svc.CreateReview(context.Background(), actor, &model.CreateReviewRequest{
		DoctorID:      f.doctor.ID.String(),
		AppointmentID: &appointmentID,
		Rating:        5,
		Comment:       "thorough and on time",
	})
	require.NoError(t, err)
	assert.Equal(t, f.appointment.PatientID, review.PatientID)
	f.reviews.AssertExpectations(t)
}

func TestCreateReview_Untied(t *testing.T) {
	f := newFixture()
	f.directory.On("GetUser", mock.Anything, f.doctor.ID).Return(f.doctor, nil)
	f.reviews.On("Create", mock.Anything, mock.MatchedBy(func(r *model.Review) bool {
		return r.AppointmentID == nil
	})).Return(nil)

	actor := model.Actor{ID: uuid.New(), Role: model.RolePatient}
	_, err := f.svc.CreateReview(context.Background(), actor, &model.CreateReviewRequest{
		DoctorID: f.doctor.ID.String(),
		Rating:   3,
	})
	require.NoError(t, err)
	f.appointmentRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestCreateReview_DoctorNotFound(t *testing.T) {
	f := newFixture()
	unknown := uuid.New()
	f.directory.On("GetUser", mock.Anything, unknown).Return(nil, repository.ErrNotFound)

	actor := model.Actor{ID: uuid.New(), Role: model.RolePatient}
	_, err := f.svc.CreateReview(context.Background(), actor, &model.CreateReviewRequest{
		DoctorID: unknown.String(),
		Rating:   4,
	})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestCreateReview_TargetNotADoctor(t *testing.T) {
	f := newFixture()
	patient := &model.User{ID: uuid.New(), Role: model.RolePatient}
	f.directory.On("GetUser", mock.Anything, patient.ID).Return(patient, nil)

	actor := model.Actor{ID: uuid.New(), Role: model.RolePatient}
	_, err := f.svc.CreateReview(context.Background(), actor, &model.CreateReviewRequest{
		DoctorID: patient.ID.String(),
		Rating:   4,
	})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestCreateReview_TiedGates(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(f *fixture) (actor model.Actor, doctorID string)
		wantCode apperrors.ErrorCode
	}{
		{
			name: "reviewer is not the appointment's patient",
			mutate: func(f *fixture) (model.Actor, string) {
				return model.Actor{ID: uuid.New(), Role: model.RolePatient}, f.doctor.ID.String()
			},
			wantCode: apperrors.ErrAuthorization,
		},
		{
			name: "doctor does not match the appointment",
			mutate: func(f *fixture) (model.Actor, string) {
				other := &model.User{ID: uuid.New(), Role: model.RoleDoctor, IsVerified: true}
				f.directory.On("GetUser", mock.Anything, other.ID).Return(other, nil)
				return model.Actor{ID: f.appointment.PatientID, Role: model.RolePatient}, other.ID.String()
			},
			wantCode: apperrors.ErrValidation,
		},
		{
			name: "appointment is not completed",
			mutate: func(f *fixture) (model.Actor, string) {
				f.appointment.Status = model.AppointmentStatusScheduled
				return model.Actor{ID: f.appointment.PatientID, Role: model.RolePatient}, f.doctor.ID.String()
			},
			wantCode: apperrors.ErrConflict,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.directory.On("GetUser", mock.Anything, f.doctor.ID).Return(f.doctor, nil)
			f.appointmentRepo.On("Get", mock.Anything, f.appointment.ID).Return(f.appointment, nil)

			actor, doctorID := tt.mutate(f)
			appointmentID := f.appointment.ID.String()
			_, err := f.svc.CreateReview(context.Background(), actor, &model.CreateReviewRequest{
				DoctorID:      doctorID,
				AppointmentID: &appointmentID,
				Rating:        5,
			})
			assert.True(t, apperrors.IsCode(err, tt.wantCode), "got %v", err)
			f.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateReview_DuplicateForAppointment(t *testing.T) {
	f := newFixture()
	f.directory.On("GetUser", mock.Anything, f.doctor.ID).Return(f.doctor, nil)
	f.appointmentRepo.On("Get", mock.Anything, f.appointment.ID).Return(f.appointment, nil)
	f.reviews.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	appointmentID := f.appointment.ID.String()
	actor := model.Actor{ID: f.appointment.PatientID, Role: model.RolePatient}
	_, err := f.svc.CreateReview(context.Background(), actor, &model.CreateReviewRequest{
		DoctorID:      f.doctor.ID.String(),
		AppointmentID: &appointmentID,
		Rating:        5,
	})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))
}

func TestListDoctorReviews(t *testing.T) {
	f := newFixture()
	list := []*model.Review{
		{ID: uuid.New(), DoctorID: f.doctor.ID, Rating: 5},
		{ID: uuid.New(), DoctorID: f.doctor.ID, Rating: 4},
	}
	f.reviews.On("ListByDoctor", mock.Anything, f.doctor.ID).Return(list, nil)
	f.reviews.On("GetDoctorRating", mock.Anything, f.doctor.ID).Return(&model.DoctorRating{
		DoctorID: f.doctor.ID, AverageRating: 4.5, ReviewCount: 2,
	}, nil)

	reviews, rating, err := f.svc.ListDoctorReviews(context.Background(), f.doctor.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
	assert.InDelta(t, 4.5, rating.AverageRating, 0.001)
	assert.Equal(t, 2, rating.ReviewCount)
}
