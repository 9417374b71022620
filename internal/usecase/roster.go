package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/user/project-roster/internal/adapter/metrics"
	"github.com/user/project-roster/internal/domain"
)

type rosterService struct {
	memberships domain.MembershipRepository
	directory   domain.DirectoryRepository
	catalog     *domain.Catalog
	metrics     *metrics.RosterMetrics
	logger      *slog.Logger
}

// NewRosterService creates the reconciliation engine over the given
// stores and role catalog.
func NewRosterService(
	memberships domain.MembershipRepository,
	directory domain.DirectoryRepository,
	catalog *domain.Catalog,
	m *metrics.RosterMetrics,
	logger *slog.Logger,
) RosterUseCase {
	return &rosterService{
		memberships: memberships,
		directory:   directory,
		catalog:     catalog,
		metrics:     m,
		logger:      logger,
	}
}

// GetState reads the project's assignments and projects them onto the
// catalog. Duplicate records for one role — possible only if storage
// was corrupted outside the engine — are tolerated on read: the
// most-recently-created record wins, nothing is mutated.
func (s *rosterService) GetState(ctx context.Context, projectID uuid.UUID) (domain.RoleState, error) {
	if projectID == uuid.Nil {
		return nil, domain.NewValidationError("projectId is required")
	}

	records, err := s.memberships.ListByProject(ctx, projectID)
	if err != nil {
		return nil, coerceStorage(err, "list assignments")
	}

	byRole := indexByRole(records)
	state := make(domain.RoleState, s.catalog.Len())
	for _, role := range s.catalog.Roles() {
		if recs := byRole[role]; len(recs) > 0 {
			id := recs[0].UserID
			state[role] = &id
		} else {
			state[role] = nil
		}
	}
	return state, nil
}

// SetState reconciles the project's assignments to the desired
// snapshot inside a single transaction. Per role: equal occupant is a
// no-op; otherwise every existing record for the role is deleted
// before any new one is created, so a slot never holds two occupants,
// including across a replacement of user A by user B.
func (s *rosterService) SetState(ctx context.Context, projectID uuid.UUID, desired domain.RoleState) error {
	if projectID == uuid.Nil {
		return domain.NewValidationError("projectId is required")
	}

	ok, err := s.directory.ProjectExists(ctx, projectID)
	if err != nil {
		return coerceStorage(err, "check project")
	}
	if !ok {
		return domain.NewForeignKeyError("project %s does not exist", projectID)
	}

	var created, deleted int
	err = s.memberships.InTx(ctx, func(store domain.MembershipStore) error {
		records, err := store.ListByProject(ctx, projectID)
		if err != nil {
			return err
		}
		byRole := indexByRole(records)

		for _, role := range s.catalog.Roles() {
			existing := byRole[role]
			var current *uuid.UUID
			if len(existing) > 0 {
				current = &existing[0].UserID
			}
			next := desired[role] // nil for absent keys: unassign

			if sameUser(current, next) {
				continue
			}

			for _, rec := range existing {
				if err := store.DeleteByID(ctx, rec.ID); err != nil {
					return err
				}
				deleted++
			}
			if next != nil {
				if _, err := store.Create(ctx, projectID, *next, role); err != nil {
					return err
				}
				created++
			}
		}
		return nil
	})
	if err != nil {
		s.countReconcile("error", 0, 0)
		return coerceStorage(err, "reconcile assignments")
	}

	if created == 0 && deleted == 0 {
		s.countReconcile("noop", 0, 0)
		return nil
	}
	s.countReconcile("applied", created, deleted)
	s.logger.Info("reconciled project roles",
		"project_id", projectID,
		"created", created,
		"deleted", deleted,
	)
	return nil
}

// Assign is one role's worth of SetState: it deletes any record(s)
// currently holding the slot before creating the new one, so repeated
// incremental assignment cannot stack occupants.
func (s *rosterService) Assign(ctx context.Context, projectID, userID uuid.UUID, role string) (*domain.Assignment, error) {
	if projectID == uuid.Nil {
		return nil, domain.NewValidationError("projectId is required")
	}
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("userId is required")
	}
	if role == "" {
		return nil, domain.NewValidationError("role is required")
	}
	if !s.catalog.IsValid(role) {
		return nil, domain.NewValidationError("unknown role %q", role)
	}

	if ok, err := s.directory.ProjectExists(ctx, projectID); err != nil {
		return nil, coerceStorage(err, "check project")
	} else if !ok {
		return nil, domain.NewForeignKeyError("project %s does not exist", projectID)
	}
	if ok, err := s.directory.UserExists(ctx, userID); err != nil {
		return nil, coerceStorage(err, "check user")
	} else if !ok {
		return nil, domain.NewForeignKeyError("user %s does not exist", userID)
	}

	var assignment *domain.Assignment
	var deleted int
	err := s.memberships.InTx(ctx, func(store domain.MembershipStore) error {
		records, err := store.ListByProject(ctx, projectID)
		if err != nil {
			return err
		}
		for _, rec := range records {
			if rec.Role != role {
				continue
			}
			if err := store.DeleteByID(ctx, rec.ID); err != nil {
				return err
			}
			deleted++
		}

		assignment, err = store.Create(ctx, projectID, userID, role)
		return err
	})
	if err != nil {
		return nil, coerceStorage(err, "assign role")
	}
	s.countMutation("create")
	for i := 0; i < deleted; i++ {
		s.countMutation("delete")
	}

	s.logger.Info("assigned project role",
		"project_id", projectID,
		"user_id", userID,
		"role", role,
	)
	return assignment, nil
}

func (s *rosterService) Remove(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.NewValidationError("id is required")
	}
	if err := s.memberships.DeleteByID(ctx, id); err != nil {
		return coerceStorage(err, "delete assignment")
	}
	s.countMutation("delete")
	return nil
}

func (s *rosterService) ListAssignments(ctx context.Context, projectID uuid.UUID) ([]domain.Assignment, error) {
	if projectID == uuid.Nil {
		return nil, domain.NewValidationError("projectId is required")
	}
	records, err := s.memberships.ListByProject(ctx, projectID)
	if err != nil {
		return nil, coerceStorage(err, "list assignments")
	}
	return records, nil
}

// indexByRole groups records by role preserving their newest-first
// input order, so the head of each group is the current occupant.
func indexByRole(records []domain.Assignment) map[string][]domain.Assignment {
	byRole := make(map[string][]domain.Assignment)
	for _, rec := range records {
		byRole[rec.Role] = append(byRole[rec.Role], rec)
	}
	return byRole
}

func sameUser(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// coerceStorage passes domain errors through untouched and wraps
// anything else as a storage failure.
func coerceStorage(err error, op string) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return domain.NewStorageError(err, "%s", op)
}

func (s *rosterService) countReconcile(outcome string, created, deleted int) {
	if s.metrics == nil {
		return
	}
	s.metrics.ReconciliationsTotal.WithLabelValues(outcome).Inc()
	if created > 0 {
		s.metrics.MutationsTotal.WithLabelValues("create").Add(float64(created))
	}
	if deleted > 0 {
		s.metrics.MutationsTotal.WithLabelValues("delete").Add(float64(deleted))
	}
}

func (s *rosterService) countMutation(op string) {
	if s.metrics == nil {
		return
	}
	s.metrics.MutationsTotal.WithLabelValues(op).Inc()
}
