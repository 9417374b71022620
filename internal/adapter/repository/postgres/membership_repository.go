package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/user/project-roster/internal/domain"
)

// pq error class 23 covers integrity constraint violations; 23503 is
// foreign_key_violation specifically.
const pqForeignKeyViolation = "23503"

// querier abstracts *sql.DB and *sql.Tx so the same statement code
// serves both direct calls and transaction-scoped stores.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// MembershipRepository implements domain.MembershipRepository over
// PostgreSQL. No uniqueness is assumed on (project_id, role); the
// reconciliation engine upholds that invariant.
type MembershipRepository struct {
	membershipStore
	db     *sql.DB
	logger *slog.Logger
}

// NewMembershipRepository creates a new PostgreSQL membership repository.
func NewMembershipRepository(db *sql.DB, logger *slog.Logger) *MembershipRepository {
	return &MembershipRepository{
		membershipStore: membershipStore{q: db},
		db:              db,
		logger:          logger,
	}
}

// InTx runs fn against a transaction-bound store. All mutations commit
// together on a nil return and roll back in full otherwise, so a
// failed reconciliation leaves the persisted state untouched.
func (r *MembershipRepository) InTx(ctx context.Context, fn func(domain.MembershipStore) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewStorageError(err, "begin transaction")
	}
	defer tx.Rollback() // Rollback is a no-op if Commit() is called

	if err := fn(&membershipStore{q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.NewStorageError(err, "commit transaction")
	}
	return nil
}

var _ domain.MembershipRepository = (*MembershipRepository)(nil)

type membershipStore struct {
	q querier
}

func (s *membershipStore) Create(ctx context.Context, projectID, userID uuid.UUID, role string) (*domain.Assignment, error) {
	a := domain.Assignment{
		ID:        uuid.New(),
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	query := `
		INSERT INTO role_assignments (id, project_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := s.q.ExecContext(ctx, query, a.ID, a.ProjectID, a.UserID, a.Role, a.CreatedAt); err != nil {
		return nil, mapPQError(err, "create assignment")
	}
	return &a, nil
}

func (s *membershipStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Assignment, error) {
	query := `
		SELECT a.id, a.project_id, a.user_id, a.role, a.created_at,
		       u.name, COALESCE(u.email, '')
		FROM role_assignments a
		JOIN users u ON u.id = a.user_id
		WHERE a.project_id = $1
		ORDER BY a.created_at DESC, a.id
	`
	rows, err := s.q.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, mapPQError(err, "list assignments")
	}
	defer rows.Close()

	var out []domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.UserID, &a.Role, &a.CreatedAt, &a.UserName, &a.UserEmail); err != nil {
			return nil, domain.NewStorageError(err, "scan assignment")
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError(err, "iterate assignments")
	}
	return out, nil
}

func (s *membershipStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM role_assignments WHERE id = $1`, id)
	if err != nil {
		return mapPQError(err, "delete assignment")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.NewStorageError(err, "delete assignment")
	}
	if affected == 0 {
		return domain.NewNotFoundError("assignment %s does not exist", id)
	}
	return nil
}

func mapPQError(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
		return &domain.Error{
			Kind:    domain.KindForeignKey,
			Message: fmt.Sprintf("%s: referenced record does not exist (%s)", op, pqErr.Constraint),
			Err:     err,
		}
	}
	return domain.NewStorageError(err, "%s", op)
}
