package postgres

import (
	"context"
	"database/sql"
	"errors"

	"summitportal/internal/domain"
)

const sponsorColumns = `id, name, slug, logo_url, website, is_active, created_at, updated_at`

type sponsorRepository struct {
	DB *sql.DB
}

func NewSponsorRepository(db *sql.DB) domain.SponsorRepository {
	return &sponsorRepository{DB: db}
}

func scanSponsor(row rowScanner) (*domain.Sponsor, error) {
	s := &domain.Sponsor{}
	var logoNull, websiteNull sql.NullString
	if err := row.Scan(&s.ID, &s.Name, &s.Slug, &logoNull, &websiteNull, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if logoNull.Valid {
		s.LogoURL = &logoNull.String
	}
	if websiteNull.Valid {
		s.Website = &websiteNull.String
	}
	return s, nil
}

func (r *sponsorRepository) Create(ctx context.Context, s *domain.Sponsor) error {
	query := `
		INSERT INTO sponsors (name, slug, logo_url, website, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, s.Name, s.Slug, s.LogoURL, s.Website, s.IsActive, s.CreatedAt, s.UpdatedAt).Scan(&s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSlug
		}
		return err
	}
	return nil
}

func (r *sponsorRepository) list(ctx context.Context, query string) ([]*domain.Sponsor, error) {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sponsors := make([]*domain.Sponsor, 0)
	for rows.Next() {
		s, err := scanSponsor(rows)
		if err != nil {
			return nil, err
		}
		sponsors = append(sponsors, s)
	}
	return sponsors, rows.Err()
}

func (r *sponsorRepository) List(ctx context.Context) ([]*domain.Sponsor, error) {
	return r.list(ctx, `SELECT `+sponsorColumns+` FROM sponsors ORDER BY name ASC`)
}

func (r *sponsorRepository) ListActive(ctx context.Context) ([]*domain.Sponsor, error) {
	return r.list(ctx, `SELECT `+sponsorColumns+` FROM sponsors WHERE is_active = TRUE ORDER BY name ASC`)
}

func (r *sponsorRepository) ToggleActive(ctx context.Context, id string) (*domain.Sponsor, error) {
	query := `
		UPDATE sponsors SET is_active = NOT is_active, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + sponsorColumns
	s, err := scanSponsor(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}
