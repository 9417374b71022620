package domain

import (
	"context"

	"github.com/google/uuid"
)

// MembershipStore defines the storage operations over assignment
// records. The store enforces no uniqueness over (project, role); the
// reconciliation engine is solely responsible for that invariant.
type MembershipStore interface {
	// Create persists a new assignment record. Fails with a
	// foreign-key error when projectID or userID does not resolve.
	Create(ctx context.Context, projectID, userID uuid.UUID, role string) (*Assignment, error)

	// ListByProject returns the project's assignment records newest
	// first, each carrying the denormalized user name and email.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]Assignment, error)

	// DeleteByID removes one record. Fails with a not-found error
	// when no such record exists.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// MembershipRepository is the storage boundary for assignments.
// InTx runs fn against a transaction-scoped store: all mutations fn
// issues commit together when fn returns nil, and are rolled back in
// full when fn returns an error. Reads inside fn observe the
// transaction's own writes.
type MembershipRepository interface {
	MembershipStore

	InTx(ctx context.Context, fn func(MembershipStore) error) error
}

// DirectoryRepository exposes the externally owned project and user
// records: existence probes for foreign-key validation and the
// free-text user search behind admin pickers.
type DirectoryRepository interface {
	ProjectExists(ctx context.Context, id uuid.UUID) (bool, error)
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)

	// SearchUsers matches q case-insensitively as a substring of
	// name, email, code, role, or phone, newest accounts first,
	// returning at most limit results.
	SearchUsers(ctx context.Context, q string, limit int) ([]User, error)
}

// AdminGate answers the one authorization question the service asks:
// may this caller administer project rosters. How identity and
// privilege are established is not the core's concern.
type AdminGate interface {
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}
