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

const registrationEmailDateLayout = "Monday, 2 January 2006"

type registrationService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.EventRegistrationRepository
	emailService     domain.EmailService
	logger           *slog.Logger
	contextTimeout   time.Duration
}

// NewRegistrationService creates the public RegistrationService. emailService may be nil.
func NewRegistrationService(
	eventRepo domain.EventRepository,
	registrationRepo domain.EventRegistrationRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		emailService:     emailService,
		logger:           logger,
		contextTimeout:   timeout,
	}
}

func (s *registrationService) Register(ctx context.Context, eventSlug string, reg *domain.EventRegistration) (*domain.EventRegistration, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, eventSlug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, fmt.Errorf("get event by slug: %w", err)
	}
	if !event.RegistrationOpen {
		return nil, false, domain.ErrRegistrationClosed
	}

	now := time.Now()
	candidate := domain.NewEventRegistration(
		event.ID,
		strings.TrimSpace(reg.FullName),
		strings.TrimSpace(strings.ToLower(reg.Email)),
		strings.TrimSpace(reg.Company),
		strings.TrimSpace(reg.JobTitle),
		now,
	)
	if err := candidate.Validate(); err != nil {
		return nil, false, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	// Repeat registrations are idempotent per (event, email).
	if existing, err := s.registrationRepo.GetByEventAndEmail(ctx, event.ID, candidate.Email); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("get event registration: %w", err)
	}

	if err := s.registrationRepo.Create(ctx, candidate); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			existing, getErr := s.registrationRepo.GetByEventAndEmail(ctx, event.ID, candidate.Email)
			if getErr != nil {
				return nil, false, fmt.Errorf("get event registration: %w", getErr)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("create event registration: %w", err)
	}

	if s.emailService != nil {
		data := &domain.RegistrationEmailData{
			Email:     candidate.Email,
			FullName:  candidate.FullName,
			EventName: event.Name,
			EventDate: event.Date.Format(registrationEmailDateLayout),
			Location:  event.Location,
		}
		if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "registration confirmation email failed", "event_id", event.ID, "registration_id", candidate.ID, "err", err)
		}
	}
	return candidate, true, nil
}
