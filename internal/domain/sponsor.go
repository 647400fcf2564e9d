package domain

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Sponsor is a sponsoring organization shown in the sponsor marquees.
// swagger:model Sponsor
type Sponsor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	LogoURL   *string   `json:"logo_url,omitempty"`
	Website   *string   `json:"website,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSponsor returns an active Sponsor.
func NewSponsor(name, slug string, logoURL, website *string, createdAt, updatedAt time.Time) *Sponsor {
	return &Sponsor{
		Name:      name,
		Slug:      slug,
		LogoURL:   logoURL,
		Website:   website,
		IsActive:  true,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

func (s Sponsor) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&s.Slug, validation.Required, slugRule),
		validation.Field(&s.LogoURL, is.URL),
		validation.Field(&s.Website, is.URL),
	)
}

// SponsorRepository defines the interface for sponsor storage.
type SponsorRepository interface {
	Create(ctx context.Context, s *Sponsor) error
	List(ctx context.Context) ([]*Sponsor, error)
	ListActive(ctx context.Context) ([]*Sponsor, error)
	ToggleActive(ctx context.Context, id string) (*Sponsor, error)
}

// SponsorService backs the admin sponsors manager and the public sponsor list.
type SponsorService interface {
	ListSponsors(ctx context.Context) ([]*Sponsor, error)
	CreateSponsor(ctx context.Context, s *Sponsor) error
	ToggleActive(ctx context.Context, id string, actor *AdminSession) (*Sponsor, error)
	ListPublicSponsors(ctx context.Context) ([]*Sponsor, error)
}
