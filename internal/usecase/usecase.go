package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/user/project-roster/internal/domain"
)

// RosterUseCase defines the contract for project role-slot management.
type RosterUseCase interface {
	// GetState returns the project's full role snapshot: exactly one
	// entry per catalog role, nil for unassigned slots.
	GetState(ctx context.Context, projectID uuid.UUID) (domain.RoleState, error)

	// SetState reconciles persisted assignments against a desired
	// snapshot, atomically. Keys outside the catalog are ignored;
	// catalog roles missing from desired are unassigned.
	SetState(ctx context.Context, projectID uuid.UUID, desired domain.RoleState) error

	// Assign places userID into one role slot, replacing any current
	// occupant of that slot.
	Assign(ctx context.Context, projectID, userID uuid.UUID, role string) (*domain.Assignment, error)

	// Remove deletes one assignment record by id.
	Remove(ctx context.Context, id uuid.UUID) error

	// ListAssignments returns the project's assignment records newest
	// first with denormalized user info.
	ListAssignments(ctx context.Context, projectID uuid.UUID) ([]domain.Assignment, error)
}

// DirectoryUseCase defines the contract for the user directory search
// behind admin pickers.
type DirectoryUseCase interface {
	SearchUsers(ctx context.Context, q string) ([]domain.User, error)
}
