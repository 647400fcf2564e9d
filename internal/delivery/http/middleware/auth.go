package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "summitportal/internal/delivery/http/helpers"
	"summitportal/internal/domain"
)

type contextKey string

const profileIDKey contextKey = "profileID"

// SetProfileID returns a context with the profile ID set. Used by auth middleware.
func SetProfileID(ctx context.Context, profileID string) context.Context {
	return context.WithValue(ctx, profileIDKey, profileID)
}

// ProfileIDFromContext returns the authenticated profile ID from the context, if present.
func ProfileIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(profileIDKey).(string)
	return id, ok && id != ""
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the profile ID in the request context.
// If the token is missing or invalid, it responds with 401 and a login redirect hint and does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				unauthorized(w, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				unauthorized(w, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				unauthorized(w, "missing token")
				return
			}
			profileID, err := verifier.Verify(token)
			if err != nil {
				logger.DebugContext(r.Context(), "token rejected", "err", err)
				unauthorized(w, "invalid or expired token")
				return
			}
			r = r.WithContext(SetProfileID(r.Context(), profileID))
			next(w, r)
		}
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	h.WriteJSONRedirectError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, message, h.RedirectLogin)
}
