package domain

import (
	"time"

	"github.com/google/uuid"
)

// Assignment records that one user currently occupies one role slot on
// one project. Records are never updated in place: replacing a slot's
// occupant is always a delete followed by a create.
type Assignment struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`

	// Denormalized user fields populated on project listings for
	// display; empty on freshly created records.
	UserName  string `json:"user_name,omitempty"`
	UserEmail string `json:"user_email,omitempty"`
}

// RoleState is a full snapshot of a project's role slots: one entry per
// catalog role, nil meaning the slot is unassigned.
type RoleState map[string]*uuid.UUID
