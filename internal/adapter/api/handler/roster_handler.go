package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/user/project-roster/internal/domain"
	"github.com/user/project-roster/internal/usecase"
)

// RosterHandler handles HTTP requests for project role administration.
type RosterHandler struct {
	roster    usecase.RosterUseCase
	directory usecase.DirectoryUseCase
	logger    *slog.Logger
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(roster usecase.RosterUseCase, directory usecase.DirectoryUseCase, logger *slog.Logger) *RosterHandler {
	return &RosterHandler{roster: roster, directory: directory, logger: logger}
}

// HealthCheck is a simple health check endpoint.
func (h *RosterHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetProjectRoles handles requests for a project's full role snapshot.
// GET /admin/projects/{id}/roles
func (h *RosterHandler) GetProjectRoles(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.respondWithError(w, domain.NewValidationError("invalid project id"))
		return
	}

	state, err := h.roster.GetState(r.Context(), projectID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]any{
		"ok":          true,
		"assignments": state,
	})
}

// AssignProjectRoles handles full-snapshot reconciliation requests.
// POST /admin/projects/{id}/assign-roles
func (h *RosterHandler) AssignProjectRoles(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.respondWithError(w, domain.NewValidationError("invalid project id"))
		return
	}

	var payload struct {
		Assignments domain.RoleState `json:"assignments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondWithError(w, domain.NewValidationError("invalid request body"))
		return
	}

	if err := h.roster.SetState(r.Context(), projectID, payload.Assignments); err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// CreateAssignment handles single-slot assignment requests.
// POST /admin/assignments
func (h *RosterHandler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ProjectID uuid.UUID `json:"projectId"`
		UserID    uuid.UUID `json:"userId"`
		Role      string    `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondWithError(w, domain.NewValidationError("invalid request body"))
		return
	}

	assignment, err := h.roster.Assign(r.Context(), payload.ProjectID, payload.UserID, payload.Role)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, assignment)
}

// ListAssignments handles listing a project's assignment records.
// GET /admin/assignments?projectId={id}
func (h *RosterHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(r.URL.Query().Get("projectId"))
	if err != nil {
		h.respondWithError(w, domain.NewValidationError("invalid or missing projectId parameter"))
		return
	}

	assignments, err := h.roster.ListAssignments(r.Context(), projectID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	if assignments == nil {
		assignments = []domain.Assignment{}
	}

	h.respondWithJSON(w, http.StatusOK, assignments)
}

// DeleteAssignment handles deleting one assignment record by id.
// DELETE /admin/assignments?id={id}
func (h *RosterHandler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		h.respondWithError(w, domain.NewValidationError("invalid or missing id parameter"))
		return
	}

	if err := h.roster.Remove(r.Context(), id); err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// SearchUsers handles directory search requests.
// GET /admin/users?q={query}
func (h *RosterHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.directory.SearchUsers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, users)
}

func (h *RosterHandler) respondWithError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)

	var status int
	switch kind {
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindForeignKey:
		status = http.StatusUnprocessableEntity
	default:
		status = http.StatusInternalServerError
	}

	message := domain.MessageOf(err)
	if kind == domain.KindStorage {
		// Driver details stay in the logs, not in responses.
		h.logger.Error("request failed", "error", err)
		message = "internal storage error"
	}

	h.respondWithJSON(w, status, map[string]any{
		"ok": false,
		"error": map[string]string{
			"kind":    string(kind),
			"message": message,
		},
	})
}

func (h *RosterHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
