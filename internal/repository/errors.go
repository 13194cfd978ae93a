package repository

import "errors"

// Sentinel errors returned by repository implementations. Services
// translate these into the domain error taxonomy.
var (
	// ErrNotFound is returned when the requested row does not exist,
	// or when a conditional update matched no row.
	ErrNotFound = errors.New("record not found")

	// ErrSlotUnavailable is returned when the slot claim lost: no free
	// slot covered the requested time at commit, either because none
	// exists or because a concurrent booking claimed it first.
	ErrSlotUnavailable = errors.New("no free slot available")

	// ErrDuplicate is returned on uniqueness violations: a second
	// scheduled appointment on the same patient (date, time), or a
	// second prescription/review for an appointment.
	ErrDuplicate = errors.New("duplicate record")
)
