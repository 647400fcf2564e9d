package domain

import "errors"

// Sentinel errors shared by services and repositories. Controllers map them to HTTP status codes.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotAdmin           = errors.New("admin access required")
	ErrLastSuperAdmin     = errors.New("cannot remove the last super admin")
	ErrDuplicateSlug      = errors.New("slug already in use")
	ErrRegistrationClosed = errors.New("registration is closed for this event")
	ErrAlreadyRegistered  = errors.New("email already registered for this event")
)
