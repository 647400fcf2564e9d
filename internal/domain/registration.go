package domain

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// EventRegistration links a registrant to an event.
// swagger:model EventRegistration
type EventRegistration struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Company   string    `json:"company"`
	JobTitle  string    `json:"job_title"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEventRegistration creates a new EventRegistration. ID is set by the repository on create.
func NewEventRegistration(eventID, fullName, email, company, jobTitle string, createdAt time.Time) *EventRegistration {
	return &EventRegistration{
		EventID:   eventID,
		FullName:  fullName,
		Email:     email,
		Company:   company,
		JobTitle:  jobTitle,
		CreatedAt: createdAt,
	}
}

func (r EventRegistration) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Company, validation.Length(0, 200)),
		validation.Field(&r.JobTitle, validation.Length(0, 200)),
	)
}

// EventRegistrationRepository defines storage operations for event registrations.
type EventRegistrationRepository interface {
	Create(ctx context.Context, reg *EventRegistration) error
	GetByEventAndEmail(ctx context.Context, eventID, email string) (*EventRegistration, error)
	CountByEventID(ctx context.Context, eventID string) (int, error)
}

// RegistrationService handles public registration for an event.
type RegistrationService interface {
	// Register registers the person for the event identified by slug. Returns (reg, created, err):
	// created is false when the email was already registered for that event.
	Register(ctx context.Context, eventSlug string, reg *EventRegistration) (*EventRegistration, bool, error)
}
