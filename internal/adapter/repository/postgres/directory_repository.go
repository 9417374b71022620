package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/user/project-roster/internal/domain"
)

// DirectoryRepository implements domain.DirectoryRepository over the
// externally owned projects and users tables. Reads only.
type DirectoryRepository struct {
	db *sql.DB
}

// NewDirectoryRepository creates a new PostgreSQL directory repository.
func NewDirectoryRepository(db *sql.DB) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

func (r *DirectoryRepository) ProjectExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM projects WHERE id = $1)`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, domain.NewStorageError(err, "check project existence")
	}
	return exists, nil
}

func (r *DirectoryRepository) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, domain.NewStorageError(err, "check user existence")
	}
	return exists, nil
}

// SearchUsers matches q as a case-insensitive substring of name,
// email, code, role, or phone, newest accounts first. A blank q
// matches everyone up to the limit.
func (r *DirectoryRepository) SearchUsers(ctx context.Context, q string, limit int) ([]domain.User, error) {
	pattern := "%" + q + "%"
	query := `
		SELECT id, code, name, COALESCE(email, ''), COALESCE(phone, ''),
		       COALESCE(role, ''), super_admin
		FROM users
		WHERE name ILIKE $1
		   OR email ILIKE $1
		   OR code ILIKE $1
		   OR role ILIKE $1
		   OR phone ILIKE $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, pattern, limit)
	if err != nil {
		return nil, domain.NewStorageError(err, "search users")
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Code, &u.Name, &u.Email, &u.Phone, &u.Role, &u.SuperAdmin); err != nil {
			return nil, domain.NewStorageError(err, "scan user")
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError(err, "iterate users")
	}
	return out, nil
}

var _ domain.DirectoryRepository = (*DirectoryRepository)(nil)
