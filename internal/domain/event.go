package domain

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Event represents a scheduled conference instance of one of the event series.
// swagger:model Event
type Event struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	Series           *string   `json:"series,omitempty"`
	Date             time.Time `json:"date"`
	Location         string    `json:"location"`
	Venue            *string   `json:"venue,omitempty"`
	IsActive         bool      `json:"is_active"`
	RegistrationOpen bool      `json:"registration_open"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewEvent returns an Event in its initial state: active and open for registration.
func NewEvent(name, slug string, series *string, date time.Time, location string, venue *string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:             name,
		Slug:             slug,
		Series:           series,
		Date:             date,
		Location:         location,
		Venue:            venue,
		IsActive:         true,
		RegistrationOpen: true,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
}

// Validate checks the fields an admin supplies when creating or editing an event.
func (e Event) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Name, validation.Required, validation.Length(2, 200)),
		validation.Field(&e.Slug, validation.Required, slugRule),
		validation.Field(&e.Series, slugRule),
		validation.Field(&e.Date, validation.Required),
		validation.Field(&e.Location, validation.Required, validation.Length(1, 200)),
		validation.Field(&e.Venue, validation.Length(0, 200)),
	)
}

// EventChanges holds a partial event edit. Nil fields are left unchanged.
type EventChanges struct {
	Name     *string
	Series   *string
	Date     *time.Time
	Location *string
	Venue    *string
}

// Empty reports whether no field is set.
func (c EventChanges) Empty() bool {
	return c.Name == nil && c.Series == nil && c.Date == nil && c.Location == nil && c.Venue == nil
}

// EventSummary is an event row in the admin events manager together with its registration count.
// swagger:model EventSummary
type EventSummary struct {
	*Event
	RegistrationCount int `json:"registration_count"`
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	ListActive(ctx context.Context, series string) ([]*Event, error)
	Update(ctx context.Context, id string, changes EventChanges) (*Event, error)
	ToggleActive(ctx context.Context, id string) (*Event, error)
	ToggleRegistration(ctx context.Context, id string) (*Event, error)
}

// EventService backs the admin events manager and the public event pages.
type EventService interface {
	ListEvents(ctx context.Context) ([]*EventSummary, error)
	CreateEvent(ctx context.Context, e *Event) error
	GetEvent(ctx context.Context, id string) (*Event, error)
	UpdateEvent(ctx context.Context, id string, changes EventChanges) (*Event, error)
	ToggleActive(ctx context.Context, id string, actor *AdminSession) (*Event, error)
	ToggleRegistration(ctx context.Context, id string, actor *AdminSession) (*Event, error)
	ListPublicEvents(ctx context.Context, series string) ([]*Event, error)
	GetPublicEvent(ctx context.Context, slug string) (*Event, error)
}
