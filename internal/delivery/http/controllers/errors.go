package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"summitportal/internal/delivery/http/helpers"
	"summitportal/internal/delivery/http/middleware"
	"summitportal/internal/domain"
)

// writeServiceError maps a service error to a status code and writes the JSON error envelope.
// notFound is the message used for ErrNotFound and ErrUserNotFound.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, notFound)
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrDuplicateSlug),
		errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrLastSuperAdmin):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	case errors.Is(err, domain.ErrRegistrationClosed):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeRegistrationClosed, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal server error")
	}
}

// adminActor returns the admin session placed in the context by RequireAdmin.
// It writes a 401 and returns false when the route was mounted without the gate.
func adminActor(w http.ResponseWriter, r *http.Request) (*domain.AdminSession, bool) {
	session, ok := middleware.AdminFromContext(r.Context())
	if !ok {
		helpers.WriteJSONRedirectError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized", helpers.RedirectLogin)
		return nil, false
	}
	return session, true
}
