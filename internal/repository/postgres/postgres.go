package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/medbook/booking-api/internal/repository"
)

type userDirectory struct {
	BaseRepository
}

type availabilityRepository struct {
	BaseRepository
}

type appointmentRepository struct {
	BaseRepository
}

type prescriptionRepository struct {
	BaseRepository
}

type reviewRepository struct {
	BaseRepository
}

func NewUserDirectory(db *sqlx.DB) repository.UserDirectory {
	return &userDirectory{NewBaseRepository(db)}
}

func NewAvailabilityRepository(db *sqlx.DB) repository.AvailabilityRepository {
	return &availabilityRepository{NewBaseRepository(db)}
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{NewBaseRepository(db)}
}

func NewPrescriptionRepository(db *sqlx.DB) repository.PrescriptionRepository {
	return &prescriptionRepository{NewBaseRepository(db)}
}

func NewReviewRepository(db *sqlx.DB) repository.ReviewRepository {
	return &reviewRepository{NewBaseRepository(db)}
}
