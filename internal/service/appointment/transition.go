package appointment

import (
	"fmt"

	"github.com/medbook/booking-api/internal/model"
	apperrors "github.com/medbook/booking-api/pkg/errors"
)

// relation is the actor's relationship to a given appointment.
type relation int

const (
	relNone relation = iota
	relAdmin
	relOwningDoctor
	relOwningPatient
)

func relate(actor model.Actor, appointment *model.Appointment) relation {
	switch {
	case actor.Role == model.RoleAdmin:
		return relAdmin
	case actor.Role == model.RoleDoctor && actor.ID == appointment.DoctorID:
		return relOwningDoctor
	case actor.Role == model.RolePatient && actor.ID == appointment.PatientID:
		return relOwningPatient
	default:
		return relNone
	}
}

// allowedTransitions is the full state machine: current status ×
// relation → permitted targets. Completed and cancelled are terminal;
// only scheduled has outgoing edges. Patients may only cancel.
var allowedTransitions = map[model.AppointmentStatus]map[relation][]model.AppointmentStatus{
	model.AppointmentStatusScheduled: {
		relAdmin:         {model.AppointmentStatusCompleted, model.AppointmentStatusCancelled},
		relOwningDoctor:  {model.AppointmentStatusCompleted, model.AppointmentStatusCancelled},
		relOwningPatient: {model.AppointmentStatusCancelled},
	},
}

// checkTransition validates the requested transition. The relation
// check runs before the state lookup: an unrelated actor gets an
// authorization error regardless of the appointment's status. For
// owners a terminal source state is an invalid transition; a target
// their role does not permit is an authorization error.
func checkTransition(actor model.Actor, appointment *model.Appointment, target model.AppointmentStatus) error {
	if !target.Valid() || target == model.AppointmentStatusScheduled {
		return apperrors.NewInvalidTransition(fmt.Sprintf("invalid target status %q", target))
	}

	rel := relate(actor, appointment)
	if rel == relNone {
		return apperrors.NewAuthorization("not authorized to update this appointment")
	}

	byRelation, ok := allowedTransitions[appointment.Status]
	if !ok {
		return apperrors.NewInvalidTransition(
			fmt.Sprintf("appointment is %s; no further transitions are allowed", appointment.Status))
	}

	for _, allowed := range byRelation[rel] {
		if allowed == target {
			return nil
		}
	}
	return apperrors.NewAuthorization(
		fmt.Sprintf("role %s may not set status %q on this appointment", actor.Role, target))
}
