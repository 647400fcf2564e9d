package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"summitportal/internal/domain"

	"golang.org/x/sync/errgroup"
)

// registrationCountConcurrency bounds the per-event count queries issued by ListEvents.
const registrationCountConcurrency = 8

type eventService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.EventRegistrationRepository
	logger           *slog.Logger
	contextTimeout   time.Duration
}

func NewEventService(
	eventRepo domain.EventRepository,
	registrationRepo domain.EventRegistrationRepository,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		logger:           logger,
		contextTimeout:   timeout,
	}
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.EventSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	summaries := make([]*domain.EventSummary, len(events))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(registrationCountConcurrency)
	for i, event := range events {
		g.Go(func() error {
			n, err := s.registrationRepo.CountByEventID(gctx, event.ID)
			if err != nil {
				return fmt.Errorf("count registrations for event %s: %w", event.ID, err)
			}
			summaries[i] = &domain.EventSummary{Event: event, RegistrationCount: n}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event.Name = strings.TrimSpace(event.Name)
	event.Location = strings.TrimSpace(event.Location)
	slug, err := resolveSlug(event.Slug, event.Name, "event")
	if err != nil {
		return fmt.Errorf("generate event slug: %w", err)
	}
	event.Slug = slug
	event.Series = normalizeSeries(event.Series)
	event.IsActive = true
	event.RegistrationOpen = true
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := event.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrDuplicateSlug) {
			return domain.ErrDuplicateSlug
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id string, changes domain.EventChanges) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	current, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if changes.Empty() {
		return current, nil
	}

	merged := *current
	if changes.Name != nil {
		name := strings.TrimSpace(*changes.Name)
		changes.Name = &name
		merged.Name = name
	}
	if changes.Location != nil {
		location := strings.TrimSpace(*changes.Location)
		changes.Location = &location
		merged.Location = location
	}
	if changes.Series != nil {
		series := ""
		if normalized := normalizeSeries(changes.Series); normalized != nil {
			series = *normalized
		}
		changes.Series = &series
		merged.Series = normalizeSeries(&series)
	}
	if changes.Date != nil {
		merged.Date = *changes.Date
	}
	if changes.Venue != nil {
		venue := strings.TrimSpace(*changes.Venue)
		changes.Venue = &venue
		merged.Venue = &venue
	}
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	updated, err := s.eventRepo.Update(ctx, id, changes)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) ToggleActive(ctx context.Context, id string, actor *domain.AdminSession) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.ToggleActive(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("toggle event active: %w", err)
	}
	s.logger.InfoContext(ctx, "event active toggled", "actor", actorID(actor), "event_id", id, "is_active", event.IsActive)
	return event, nil
}

func (s *eventService) ToggleRegistration(ctx context.Context, id string, actor *domain.AdminSession) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.ToggleRegistration(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("toggle event registration: %w", err)
	}
	s.logger.InfoContext(ctx, "event registration toggled", "actor", actorID(actor), "event_id", id, "registration_open", event.RegistrationOpen)
	return event, nil
}

func (s *eventService) ListPublicEvents(ctx context.Context, series string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListActive(ctx, domain.Slugify(series))
	if err != nil {
		return nil, fmt.Errorf("list active events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) GetPublicEvent(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	return event, nil
}

// normalizeSeries slugifies a series key; an empty result means no series.
func normalizeSeries(series *string) *string {
	if series == nil {
		return nil
	}
	s := domain.Slugify(*series)
	if s == "" {
		return nil
	}
	return &s
}
