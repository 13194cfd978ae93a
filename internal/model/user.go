package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// User is the directory record consumed by the scheduling engine.
// Account lifecycle (registration, credentials) is owned elsewhere;
// this service only reads role and verification state.
type User struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Email      string    `db:"email" json:"email"`
	Role       Role      `db:"role" json:"role"`
	IsVerified bool      `db:"is_verified" json:"is_verified"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Actor identifies the authenticated caller of an operation.
type Actor struct {
	ID   uuid.UUID
	Role Role
}
