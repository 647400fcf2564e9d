package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"summitportal/internal/domain"
)

type accessService struct {
	profileRepo    domain.ProfileRepository
	contextTimeout time.Duration
}

// NewAccessService returns the AccessService used by the admin gate.
func NewAccessService(profileRepo domain.ProfileRepository, timeout time.Duration) domain.AccessService {
	return &accessService{
		profileRepo:    profileRepo,
		contextTimeout: timeout,
	}
}

func (s *accessService) ResolveAdmin(ctx context.Context, profileID string) (*domain.AdminSession, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if profileID == "" {
		return nil, domain.ErrUnauthorized
	}
	profile, role, err := s.profileRepo.GetWithRole(ctx, profileID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("load profile with role: %w", err)
	}
	if !profile.IsAdmin {
		return nil, domain.ErrNotAdmin
	}
	return domain.NewAdminSession(profile, role), nil
}
