package api

import (
	"log/slog"
	"net/http"

	"github.com/user/project-roster/internal/adapter/api/handler"
	"github.com/user/project-roster/internal/adapter/api/middleware"
	"github.com/user/project-roster/internal/domain"
	"github.com/user/project-roster/internal/pkg/config"
	"github.com/user/project-roster/internal/usecase"
)

// NewRouter creates and configures the HTTP router for the roster
// service. Every /admin route runs behind the admin gate; /health is
// open. Path patterns require Go 1.22+.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	gate domain.AdminGate,
	roster usecase.RosterUseCase,
	directory usecase.DirectoryUseCase,
) http.Handler {
	mux := http.NewServeMux()
	h := handler.NewRosterHandler(roster, directory, logger)

	adminOnly := middleware.AdminOnly(cfg.JWTSecret, gate, logger)
	admin := func(fn http.HandlerFunc) http.Handler {
		return adminOnly(fn)
	}

	mux.HandleFunc("GET /health", h.HealthCheck)

	// Snapshot surface
	mux.Handle("GET /admin/projects/{id}/roles", admin(h.GetProjectRoles))
	mux.Handle("POST /admin/projects/{id}/assign-roles", admin(h.AssignProjectRoles))

	// Record surface
	mux.Handle("POST /admin/assignments", admin(h.CreateAssignment))
	mux.Handle("GET /admin/assignments", admin(h.ListAssignments))
	mux.Handle("DELETE /admin/assignments", admin(h.DeleteAssignment))

	// Directory
	mux.Handle("GET /admin/users", admin(h.SearchUsers))

	return mux
}
