package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"summitportal/internal/domain"
)

const maxProfileFieldLen = 200

type profileService struct {
	profileRepo    domain.ProfileRepository
	roleRepo       domain.AdminRoleRepository
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewProfileService creates a ProfileService with the given repositories.
func NewProfileService(profileRepo domain.ProfileRepository, roleRepo domain.AdminRoleRepository, logger *slog.Logger, timeout time.Duration) domain.ProfileService {
	return &profileService{
		profileRepo:    profileRepo,
		roleRepo:       roleRepo,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *profileService) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) CompleteProfile(ctx context.Context, id, fullName, title, company string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	fullName = strings.TrimSpace(fullName)
	title = strings.TrimSpace(title)
	company = strings.TrimSpace(company)
	fields := []struct{ name, value string }{
		{"full_name", fullName},
		{"title", title},
		{"company", company},
	}
	for _, f := range fields {
		if f.value == "" {
			return nil, fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, f.name)
		}
		if len(f.value) > maxProfileFieldLen {
			return nil, fmt.Errorf("%w: %s is too long", domain.ErrInvalidInput, f.name)
		}
	}

	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	profile.FullName = fullName
	profile.Title = title
	profile.Company = company
	profile.ProfileCompleted = true
	profile.UpdatedAt = time.Now()
	if err := s.profileRepo.UpdateDetails(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) ListProfiles(ctx context.Context, filter domain.ProfileFilter, params domain.PaginationParams) ([]*domain.Profile, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	profiles, total, err := s.profileRepo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list profiles: %w", err)
	}
	if profiles == nil {
		profiles = []*domain.Profile{}
	}
	return profiles, total, nil
}

// ToggleAdmin flips admin access from the persisted state, never from a client-supplied one.
func (s *profileService) ToggleAdmin(ctx context.Context, profileID string, actor *domain.AdminSession) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.IsAdmin {
		if err := s.roleRepo.Revoke(ctx, profileID); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrLastSuperAdmin) {
				return nil, err
			}
			return nil, fmt.Errorf("revoke admin role: %w", err)
		}
		s.logger.InfoContext(ctx, "admin access revoked", "actor", actorID(actor), "target", profileID)
	} else {
		if _, err := s.roleRepo.Grant(ctx, profileID, domain.DefaultTier); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil, domain.ErrUserNotFound
			}
			return nil, fmt.Errorf("grant admin role: %w", err)
		}
		s.logger.InfoContext(ctx, "admin access granted", "actor", actorID(actor), "target", profileID, "tier", domain.DefaultTier)
	}

	updated, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload profile: %w", err)
	}
	return updated, nil
}
