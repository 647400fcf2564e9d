package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Sentinel errors for profile operations.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidateEmail checks that email is a present, well-formed address.
func ValidateEmail(email string) error {
	if err := validation.Validate(email, validation.Required, is.Email); err != nil {
		return fmt.Errorf("%w: email %v", ErrInvalidInput, err)
	}
	return nil
}

// Profile is the application-level user record, distinct from the login credentials.
// swagger:model Profile
type Profile struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	FullName         string    `json:"full_name"`
	Title            string    `json:"title"`
	Company          string    `json:"company"`
	IsAdmin          bool      `json:"is_admin"`
	ProfileCompleted bool      `json:"profile_completed"`
	PasswordHash     string    `json:"-"`
	Salt             string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewProfile returns a new Profile with the given fields. ID is set by the repository on create.
func NewProfile(email, fullName string, createdAt, updatedAt time.Time) *Profile {
	return &Profile{
		Email:     email,
		FullName:  fullName,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// ProfileFilter narrows ListProfiles results. Search matches email or full name, case-insensitively.
type ProfileFilter struct {
	Search     string
	AdminsOnly bool
}

// ProfileRepository defines the interface for profile storage.
type ProfileRepository interface {
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	// GetWithRole returns the profile and its admin role; the role is nil for non-admins.
	GetWithRole(ctx context.Context, id string) (*Profile, *AdminRole, error)
	List(ctx context.Context, filter ProfileFilter, params PaginationParams) ([]*Profile, int, error)
	UpdateDetails(ctx context.Context, p *Profile) error
}

// ProfileService backs the users manager and the self-service profile endpoints.
type ProfileService interface {
	GetByID(ctx context.Context, id string) (*Profile, error)
	CompleteProfile(ctx context.Context, id, fullName, title, company string) (*Profile, error)
	ListProfiles(ctx context.Context, filter ProfileFilter, params PaginationParams) ([]*Profile, int, error)
	// ToggleAdmin grants the default tier to a non-admin profile or revokes access from an admin.
	ToggleAdmin(ctx context.Context, profileID string, actor *AdminSession) (*Profile, error)
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated profile.
type TokenIssuer interface {
	Issue(profileID, email string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated profile ID.
type TokenVerifier interface {
	Verify(token string) (profileID string, err error)
}

// AuthService covers sign-up and password log-in.
type AuthService interface {
	SignUp(ctx context.Context, email, password, fullName string) (*Profile, error)
	Login(ctx context.Context, email, password string) (token string, profile *Profile, err error)
}
