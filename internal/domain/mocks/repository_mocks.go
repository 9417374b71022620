package mocks

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/user/project-roster/internal/domain"
)

// MockMembershipRepository is an in-memory implementation of
// domain.MembershipRepository for testing. InTx mirrors transactional
// semantics: mutations run against a shadow copy of the records and
// are discarded when fn fails.
type MockMembershipRepository struct {
	mu      sync.Mutex
	Records []domain.Assignment

	// KnownUsers, when non-nil, restricts Create to these user ids;
	// others fail with a foreign-key error.
	KnownUsers map[uuid.UUID]domain.User

	CreateErr error
	ListErr   error
	DeleteErr error

	// FailCreateForUser aborts Create for one specific user id,
	// simulating a store failure mid-transaction.
	FailCreateForUser uuid.UUID
	FailCreateWith    error

	CreateCalls int
	DeleteCalls int

	clock int64
}

func (m *MockMembershipRepository) Create(ctx context.Context, projectID, userID uuid.UUID, role string) (*domain.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.create(projectID, userID, role)
}

func (m *MockMembershipRepository) create(projectID, userID uuid.UUID, role string) (*domain.Assignment, error) {
	m.CreateCalls++
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	if m.FailCreateWith != nil && userID == m.FailCreateForUser {
		return nil, m.FailCreateWith
	}
	if m.KnownUsers != nil {
		if _, ok := m.KnownUsers[userID]; !ok {
			return nil, domain.NewForeignKeyError("user %s does not exist", userID)
		}
	}

	m.clock++
	a := domain.Assignment{
		ID:        uuid.New(),
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Unix(m.clock, 0).UTC(),
	}
	if u, ok := m.KnownUsers[userID]; ok {
		a.UserName = u.Name
		a.UserEmail = u.Email
	}
	m.Records = append(m.Records, a)
	return &a, nil
}

func (m *MockMembershipRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listByProject(projectID)
}

func (m *MockMembershipRepository) listByProject(projectID uuid.UUID) ([]domain.Assignment, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	// Newest first, matching the Postgres repository's ordering.
	var out []domain.Assignment
	for i := len(m.Records) - 1; i >= 0; i-- {
		if m.Records[i].ProjectID == projectID {
			out = append(out, m.Records[i])
		}
	}
	return out, nil
}

func (m *MockMembershipRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteByID(id)
}

func (m *MockMembershipRepository) deleteByID(id uuid.UUID) error {
	m.DeleteCalls++
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for i, r := range m.Records {
		if r.ID == id {
			m.Records = append(m.Records[:i], m.Records[i+1:]...)
			return nil
		}
	}
	return domain.NewNotFoundError("assignment %s does not exist", id)
}

func (m *MockMembershipRepository) InTx(ctx context.Context, fn func(domain.MembershipStore) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	saved := make([]domain.Assignment, len(m.Records))
	copy(saved, m.Records)
	if err := fn(&txStore{repo: m}); err != nil {
		m.Records = saved
		return err
	}
	return nil
}

var _ domain.MembershipRepository = (*MockMembershipRepository)(nil)

type txStore struct {
	repo *MockMembershipRepository
}

func (s *txStore) Create(ctx context.Context, projectID, userID uuid.UUID, role string) (*domain.Assignment, error) {
	return s.repo.create(projectID, userID, role)
}

func (s *txStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Assignment, error) {
	return s.repo.listByProject(projectID)
}

func (s *txStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return s.repo.deleteByID(id)
}

// MockDirectoryRepository is an in-memory domain.DirectoryRepository.
type MockDirectoryRepository struct {
	Projects map[uuid.UUID]domain.Project
	Users    map[uuid.UUID]domain.User

	ProjectExistsErr error
	UserExistsErr    error
	SearchErr        error
}

func (m *MockDirectoryRepository) ProjectExists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ProjectExistsErr != nil {
		return false, m.ProjectExistsErr
	}
	_, ok := m.Projects[id]
	return ok, nil
}

func (m *MockDirectoryRepository) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.UserExistsErr != nil {
		return false, m.UserExistsErr
	}
	_, ok := m.Users[id]
	return ok, nil
}

func (m *MockDirectoryRepository) SearchUsers(ctx context.Context, q string, limit int) ([]domain.User, error) {
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}

	q = strings.ToLower(q)
	var out []domain.User
	for _, u := range m.Users {
		hay := strings.ToLower(u.Name + " " + u.Email + " " + u.Code + " " + u.Role + " " + u.Phone)
		if q == "" || strings.Contains(hay, q) {
			out = append(out, u)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

var _ domain.DirectoryRepository = (*MockDirectoryRepository)(nil)

// MockAdminGate is a canned domain.AdminGate.
type MockAdminGate struct {
	Admins map[uuid.UUID]bool
	Err    error
}

func (m *MockAdminGate) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	return m.Admins[userID], nil
}

var _ domain.AdminGate = (*MockAdminGate)(nil)
