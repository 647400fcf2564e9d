package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"summitportal/internal/domain"
)

const minPasswordLen = 8

type authService struct {
	profileRepo    domain.ProfileRepository
	roleRepo       domain.AdminRoleRepository
	hasher         domain.PasswordHasher
	tokenIssuer    domain.TokenIssuer
	tokenExpiry    time.Duration
	contextTimeout time.Duration
}

// NewAuthService creates an AuthService with the given repositories and auth ports.
func NewAuthService(profileRepo domain.ProfileRepository, roleRepo domain.AdminRoleRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, tokenExpiry, timeout time.Duration) domain.AuthService {
	return &authService{
		profileRepo:    profileRepo,
		roleRepo:       roleRepo,
		hasher:         hasher,
		tokenIssuer:    tokenIssuer,
		tokenExpiry:    tokenExpiry,
		contextTimeout: timeout,
	}
}

func (s *authService) SignUp(ctx context.Context, email, password, fullName string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = strings.TrimSpace(strings.ToLower(email))
	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	profile := domain.NewProfile(email, strings.TrimSpace(fullName), now, now)
	profile.PasswordHash = hash
	profile.Salt = salt
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	profile, err := s.profileRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if err := s.hasher.Compare(profile.PasswordHash, profile.Salt, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	roles := []string{}
	if profile.IsAdmin {
		role, err := s.roleRepo.GetByProfileID(ctx, profile.ID)
		switch {
		case err == nil:
			roles = append(roles, string(role.Tier))
		case !errors.Is(err, domain.ErrNotFound):
			return "", nil, fmt.Errorf("failed to load admin role: %w", err)
		}
	}
	token, err := s.tokenIssuer.Issue(profile.ID, profile.Email, roles, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, profile, nil
}
