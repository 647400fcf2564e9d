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

type adminTeamService struct {
	roleRepo       domain.AdminRoleRepository
	profileRepo    domain.ProfileRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewAdminTeamService returns the service behind the super-admin team screen.
// emailService may be nil, in which case no access emails are sent.
func NewAdminTeamService(
	roleRepo domain.AdminRoleRepository,
	profileRepo domain.ProfileRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.AdminTeamService {
	return &adminTeamService{
		roleRepo:       roleRepo,
		profileRepo:    profileRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *adminTeamService) ListAdmins(ctx context.Context) ([]*domain.AdminMember, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	members, err := s.roleRepo.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list admin members: %w", err)
	}
	if members == nil {
		members = []*domain.AdminMember{}
	}
	return members, nil
}

func (s *adminTeamService) AddAdmin(ctx context.Context, email string, tier domain.RoleTier, actor *domain.AdminSession) (*domain.AdminMember, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = strings.TrimSpace(strings.ToLower(email))
	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}
	if !tier.Valid() {
		return nil, fmt.Errorf("%w: unknown role tier %q", domain.ErrInvalidInput, tier)
	}

	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get profile by email: %w", err)
	}

	role, err := s.roleRepo.Grant(ctx, profile.ID, tier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrLastSuperAdmin) {
			return nil, err
		}
		return nil, fmt.Errorf("grant admin role: %w", err)
	}
	s.logger.InfoContext(ctx, "admin access granted", "actor", actorID(actor), "target", profile.ID, "tier", role.Tier)

	if s.emailService != nil {
		data := &domain.AdminAccessEmailData{
			Email:     profile.Email,
			FullName:  profile.FullName,
			Tier:      role.Tier,
			GrantedBy: grantedBy(actor),
		}
		if err := s.emailService.SendAdminAccessGranted(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "admin access email failed", "target", profile.ID, "err", err)
		}
	}

	return &domain.AdminMember{
		ProfileID: profile.ID,
		Email:     profile.Email,
		FullName:  profile.FullName,
		Tier:      role.Tier,
		GrantedAt: role.CreatedAt,
	}, nil
}

func (s *adminTeamService) ChangeTier(ctx context.Context, profileID string, tier domain.RoleTier, actor *domain.AdminSession) (*domain.AdminRole, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !tier.Valid() {
		return nil, fmt.Errorf("%w: unknown role tier %q", domain.ErrInvalidInput, tier)
	}
	role, err := s.roleRepo.UpdateTier(ctx, profileID, tier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrLastSuperAdmin) {
			return nil, err
		}
		return nil, fmt.Errorf("update admin tier: %w", err)
	}
	s.logger.InfoContext(ctx, "admin tier changed", "actor", actorID(actor), "target", profileID, "tier", role.Tier)
	return role, nil
}

func (s *adminTeamService) RemoveAdmin(ctx context.Context, profileID string, actor *domain.AdminSession) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.roleRepo.Revoke(ctx, profileID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrLastSuperAdmin) {
			return err
		}
		return fmt.Errorf("revoke admin role: %w", err)
	}
	s.logger.InfoContext(ctx, "admin access revoked", "actor", actorID(actor), "target", profileID)
	return nil
}

func grantedBy(actor *domain.AdminSession) string {
	if actor == nil || actor.Profile == nil {
		return "The events team"
	}
	if name := strings.TrimSpace(actor.Profile.FullName); name != "" {
		return name
	}
	return actor.Profile.Email
}
