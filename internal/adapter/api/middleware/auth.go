package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/user/project-roster/internal/domain"
	"github.com/user/project-roster/internal/pkg/token"
)

// AdminOnly is a middleware factory that returns a new authorization
// middleware. It validates the bearer token and re-checks the
// caller's admin privilege against the gate before any handler runs;
// tokens issued before a privilege was revoked are therefore useless.
func AdminOnly(secret string, gate domain.AdminGate, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			raw, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || raw == "" {
				logger.Warn("bearer token missing from request", "remote_addr", r.RemoteAddr)
				http.Error(w, "Unauthorized: bearer token required", http.StatusUnauthorized)
				return
			}

			claims, err := token.Validate(raw, secret)
			if err != nil {
				logger.Warn("invalid bearer token", "remote_addr", r.RemoteAddr, "error", err)
				http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
				return
			}

			isAdmin, err := gate.IsAdmin(r.Context(), claims.UserID)
			if err != nil {
				logger.Error("failed to check admin privilege", "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			if !isAdmin {
				logger.Warn("non-admin caller rejected", "user_id", claims.UserID, "remote_addr", r.RemoteAddr)
				http.Error(w, "Forbidden: admin privilege required", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
