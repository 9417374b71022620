package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/user/project-roster/internal/domain"
)

// MockRosterUseCase is a mock implementation of usecase.RosterUseCase.
type MockRosterUseCase struct {
	GetStateFunc func(ctx context.Context, projectID uuid.UUID) (domain.RoleState, error)
	SetStateFunc func(ctx context.Context, projectID uuid.UUID, desired domain.RoleState) error
	AssignFunc   func(ctx context.Context, projectID, userID uuid.UUID, role string) (*domain.Assignment, error)
	RemoveFunc   func(ctx context.Context, id uuid.UUID) error
	ListFunc     func(ctx context.Context, projectID uuid.UUID) ([]domain.Assignment, error)
}

func (m *MockRosterUseCase) GetState(ctx context.Context, projectID uuid.UUID) (domain.RoleState, error) {
	return m.GetStateFunc(ctx, projectID)
}

func (m *MockRosterUseCase) SetState(ctx context.Context, projectID uuid.UUID, desired domain.RoleState) error {
	return m.SetStateFunc(ctx, projectID, desired)
}

func (m *MockRosterUseCase) Assign(ctx context.Context, projectID, userID uuid.UUID, role string) (*domain.Assignment, error) {
	return m.AssignFunc(ctx, projectID, userID, role)
}

func (m *MockRosterUseCase) Remove(ctx context.Context, id uuid.UUID) error {
	return m.RemoveFunc(ctx, id)
}

func (m *MockRosterUseCase) ListAssignments(ctx context.Context, projectID uuid.UUID) ([]domain.Assignment, error) {
	return m.ListFunc(ctx, projectID)
}

// MockDirectoryUseCase is a mock implementation of usecase.DirectoryUseCase.
type MockDirectoryUseCase struct {
	SearchFunc func(ctx context.Context, q string) ([]domain.User, error)
}

func (m *MockDirectoryUseCase) SearchUsers(ctx context.Context, q string) ([]domain.User, error) {
	return m.SearchFunc(ctx, q)
}

func newTestHandler(roster *MockRosterUseCase, directory *MockDirectoryUseCase) *RosterHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRosterHandler(roster, directory, logger)
}

func TestRosterHandler_GetProjectRoles(t *testing.T) {
	projectID := uuid.New()
	userID := uuid.New()

	tests := []struct {
		name           string
		path           string
		stateErr       error
		expectedStatus int
	}{
		{
			name:           "Snapshot Returned",
			path:           "/admin/projects/" + projectID.String() + "/roles",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Malformed Project ID",
			path:           "/admin/projects/not-a-uuid/roles",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Storage Failure",
			path:           "/admin/projects/" + projectID.String() + "/roles",
			stateErr:       domain.NewStorageError(io.ErrUnexpectedEOF, "list assignments"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roster := &MockRosterUseCase{
				GetStateFunc: func(ctx context.Context, id uuid.UUID) (domain.RoleState, error) {
					if tt.stateErr != nil {
						return nil, tt.stateErr
					}
					return domain.RoleState{"PMC": &userID, "Architect": nil}, nil
				},
			}
			h := newTestHandler(roster, nil)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.SetPathValue("id", strings.TrimSuffix(strings.TrimPrefix(tt.path, "/admin/projects/"), "/roles"))
			rr := httptest.NewRecorder()
			h.GetProjectRoles(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Fatalf("status: got %d, want %d", rr.Code, tt.expectedStatus)
			}
			if tt.expectedStatus != http.StatusOK {
				var body struct {
					OK    bool `json:"ok"`
					Error struct {
						Kind string `json:"kind"`
					} `json:"error"`
				}
				if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
					t.Fatalf("decode error body: %v", err)
				}
				if body.OK {
					t.Error("error response must carry ok=false")
				}
				if body.Error.Kind == "" {
					t.Error("error response must carry a kind")
				}
				return
			}

			var body struct {
				OK          bool                  `json:"ok"`
				Assignments map[string]*uuid.UUID `json:"assignments"`
			}
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if !body.OK {
				t.Error("expected ok=true")
			}
			if got := body.Assignments["PMC"]; got == nil || *got != userID {
				t.Errorf("PMC: got %v, want %s", got, userID)
			}
			if v, present := body.Assignments["Architect"]; !present || v != nil {
				t.Errorf("Architect should be present and null, got %v (present=%v)", v, present)
			}
		})
	}
}

func TestRosterHandler_AssignProjectRoles(t *testing.T) {
	projectID := uuid.New()
	userID := uuid.New()

	tests := []struct {
		name           string
		body           string
		setErr         error
		expectedStatus int
		wantDesired    bool
	}{
		{
			name:           "Snapshot Applied",
			body:           `{"assignments":{"PMC":"` + userID.String() + `","Architect":null}}`,
			expectedStatus: http.StatusOK,
			wantDesired:    true,
		},
		{
			name:           "Malformed Body",
			body:           `{"assignments":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Malformed User ID",
			body:           `{"assignments":{"PMC":"u1"}}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unknown Project",
			body:           `{"assignments":{}}`,
			setErr:         domain.NewForeignKeyError("project does not exist"),
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotDesired domain.RoleState
			roster := &MockRosterUseCase{
				SetStateFunc: func(ctx context.Context, id uuid.UUID, desired domain.RoleState) error {
					gotDesired = desired
					return tt.setErr
				},
			}
			h := newTestHandler(roster, nil)

			req := httptest.NewRequest(http.MethodPost, "/admin/projects/"+projectID.String()+"/assign-roles", strings.NewReader(tt.body))
			req.SetPathValue("id", projectID.String())
			rr := httptest.NewRecorder()
			h.AssignProjectRoles(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Fatalf("status: got %d, want %d, body %s", rr.Code, tt.expectedStatus, rr.Body.String())
			}
			if tt.wantDesired {
				if got := gotDesired["PMC"]; got == nil || *got != userID {
					t.Errorf("desired PMC: got %v, want %s", got, userID)
				}
				if v, present := gotDesired["Architect"]; !present || v != nil {
					t.Errorf("desired Architect should be an explicit null, got %v (present=%v)", v, present)
				}
			}
		})
	}
}

func TestRosterHandler_CreateAssignment(t *testing.T) {
	projectID := uuid.New()
	userID := uuid.New()

	t.Run("Created", func(t *testing.T) {
		roster := &MockRosterUseCase{
			AssignFunc: func(ctx context.Context, p, u uuid.UUID, role string) (*domain.Assignment, error) {
				return &domain.Assignment{ID: uuid.New(), ProjectID: p, UserID: u, Role: role}, nil
			},
		}
		h := newTestHandler(roster, nil)

		body := `{"projectId":"` + projectID.String() + `","userId":"` + userID.String() + `","role":"PMC"}`
		req := httptest.NewRequest(http.MethodPost, "/admin/assignments", strings.NewReader(body))
		rr := httptest.NewRecorder()
		h.CreateAssignment(rr, req)

		if rr.Code != http.StatusCreated {
			t.Fatalf("status: got %d, want %d", rr.Code, http.StatusCreated)
		}
		var got domain.Assignment
		if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if got.ProjectID != projectID || got.UserID != userID || got.Role != "PMC" {
			t.Errorf("unexpected record: %+v", got)
		}
	})

	t.Run("Validation Failure", func(t *testing.T) {
		roster := &MockRosterUseCase{
			AssignFunc: func(ctx context.Context, p, u uuid.UUID, role string) (*domain.Assignment, error) {
				return nil, domain.NewValidationError("role is required")
			},
		}
		h := newTestHandler(roster, nil)

		body := `{"projectId":"` + projectID.String() + `","userId":"` + userID.String() + `"}`
		req := httptest.NewRequest(http.MethodPost, "/admin/assignments", strings.NewReader(body))
		rr := httptest.NewRecorder()
		h.CreateAssignment(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
		}
	})
}

func TestRosterHandler_DeleteAssignment(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		removeErr      error
		expectedStatus int
	}{
		{"Deleted", "?id=" + uuid.NewString(), nil, http.StatusOK},
		{"Missing ID", "", nil, http.StatusBadRequest},
		{"Absent Target", "?id=" + uuid.NewString(), domain.NewNotFoundError("assignment does not exist"), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roster := &MockRosterUseCase{
				RemoveFunc: func(ctx context.Context, id uuid.UUID) error {
					return tt.removeErr
				},
			}
			h := newTestHandler(roster, nil)

			req := httptest.NewRequest(http.MethodDelete, "/admin/assignments"+tt.query, nil)
			rr := httptest.NewRecorder()
			h.DeleteAssignment(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Fatalf("status: got %d, want %d", rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestRosterHandler_SearchUsers(t *testing.T) {
	directory := &MockDirectoryUseCase{
		SearchFunc: func(ctx context.Context, q string) ([]domain.User, error) {
			if q == "asha" {
				return []domain.User{{ID: uuid.New(), Name: "Asha Rao"}}, nil
			}
			return []domain.User{}, nil
		},
	}
	h := newTestHandler(nil, directory)

	t.Run("Match", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/users?q=asha", nil)
		rr := httptest.NewRecorder()
		h.SearchUsers(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
		}
		var users []domain.User
		if err := json.NewDecoder(rr.Body).Decode(&users); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if len(users) != 1 || users[0].Name != "Asha Rao" {
			t.Errorf("unexpected users: %+v", users)
		}
	})

	t.Run("No Match Is Empty Array", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/users?q=zzz", nil)
		rr := httptest.NewRecorder()
		h.SearchUsers(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
		}
		if body := strings.TrimSpace(rr.Body.String()); body != "[]" {
			t.Errorf("expected empty JSON array, got %s", body)
		}
	})
}
