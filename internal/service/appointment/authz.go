package appointment

import (
	"github.com/medbook/booking-api/internal/model"
	apperrors "github.com/medbook/booking-api/pkg/errors"
)

// Authorize permits an admin, the appointment's patient, or the
// appointment's doctor; everyone else is rejected. Every appointment
// read and status update goes through this check, as do reads of
// records keyed to an appointment.
func Authorize(actor model.Actor, appointment *model.Appointment) error {
	if actor.Role == model.RoleAdmin {
		return nil
	}
	if actor.ID == appointment.PatientID || actor.ID == appointment.DoctorID {
		return nil
	}
	return apperrors.NewAuthorization("not authorized to access this appointment")
}
