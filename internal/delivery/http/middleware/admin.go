package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	h "summitportal/internal/delivery/http/helpers"
	"summitportal/internal/domain"
)

const adminSessionKey contextKey = "adminSession"

// SetAdminSession returns a context carrying the resolved admin session.
func SetAdminSession(ctx context.Context, session *domain.AdminSession) context.Context {
	return context.WithValue(ctx, adminSessionKey, session)
}

// AdminFromContext returns the admin session stored by RequireAdmin.
func AdminFromContext(ctx context.Context) (*domain.AdminSession, bool) {
	s, ok := ctx.Value(adminSessionKey).(*domain.AdminSession)
	return s, ok && s != nil
}

// RequireAdmin resolves the authenticated profile through access and admits admins only.
// It must run after RequireAuth. A vanished profile is a 401, a non-admin a 403, and a
// failed lookup a 500.
func RequireAdmin(access domain.AccessService, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			profileID, ok := ProfileIDFromContext(r.Context())
			if !ok {
				unauthorized(w, "unauthorized")
				return
			}
			session, err := access.ResolveAdmin(r.Context(), profileID)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrUnauthorized):
					unauthorized(w, "session no longer valid")
				case errors.Is(err, domain.ErrNotAdmin):
					h.WriteJSONRedirectError(w, http.StatusForbidden, h.ErrCodeForbidden, "admin access required", h.RedirectDashboard)
				default:
					logger.ErrorContext(r.Context(), "admin lookup failed", "path", r.URL.Path, "profile_id", profileID, "err", err)
					h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "could not verify admin access")
				}
				return
			}
			next(w, r.WithContext(SetAdminSession(r.Context(), session)))
		}
	}
}

// RequireSuperAdmin admits only super admins. It must run after RequireAdmin.
func RequireSuperAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := AdminFromContext(r.Context())
		if !ok {
			unauthorized(w, "unauthorized")
			return
		}
		if !session.IsSuperAdmin {
			h.WriteJSONRedirectError(w, http.StatusForbidden, h.ErrCodeForbidden, "super admin access required", h.RedirectAdmin)
			return
		}
		next(w, r)
	}
}
