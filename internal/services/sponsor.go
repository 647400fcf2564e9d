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

type sponsorService struct {
	sponsorRepo    domain.SponsorRepository
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewSponsorService(sponsorRepo domain.SponsorRepository, logger *slog.Logger, timeout time.Duration) domain.SponsorService {
	return &sponsorService{
		sponsorRepo:    sponsorRepo,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *sponsorService) ListSponsors(ctx context.Context) ([]*domain.Sponsor, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sponsors, err := s.sponsorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sponsors: %w", err)
	}
	if sponsors == nil {
		sponsors = []*domain.Sponsor{}
	}
	return sponsors, nil
}

func (s *sponsorService) CreateSponsor(ctx context.Context, sponsor *domain.Sponsor) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sponsor.Name = strings.TrimSpace(sponsor.Name)
	slug, err := resolveSlug(sponsor.Slug, sponsor.Name, "sponsor")
	if err != nil {
		return fmt.Errorf("generate sponsor slug: %w", err)
	}
	sponsor.Slug = slug
	sponsor.LogoURL = trimOptional(sponsor.LogoURL)
	sponsor.Website = trimOptional(sponsor.Website)
	sponsor.IsActive = true
	now := time.Now()
	sponsor.CreatedAt = now
	sponsor.UpdatedAt = now

	if err := sponsor.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := s.sponsorRepo.Create(ctx, sponsor); err != nil {
		if errors.Is(err, domain.ErrDuplicateSlug) {
			return domain.ErrDuplicateSlug
		}
		return fmt.Errorf("create sponsor: %w", err)
	}
	return nil
}

func (s *sponsorService) ToggleActive(ctx context.Context, id string, actor *domain.AdminSession) (*domain.Sponsor, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sponsor, err := s.sponsorRepo.ToggleActive(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("toggle sponsor active: %w", err)
	}
	s.logger.InfoContext(ctx, "sponsor active toggled", "actor", actorID(actor), "sponsor_id", id, "is_active", sponsor.IsActive)
	return sponsor, nil
}

func (s *sponsorService) ListPublicSponsors(ctx context.Context) ([]*domain.Sponsor, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sponsors, err := s.sponsorRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active sponsors: %w", err)
	}
	if sponsors == nil {
		sponsors = []*domain.Sponsor{}
	}
	return sponsors, nil
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
