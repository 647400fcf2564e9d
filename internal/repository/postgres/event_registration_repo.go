package postgres

import (
	"context"
	"database/sql"
	"errors"

	"summitportal/internal/domain"
)

type eventRegistrationRepository struct {
	DB *sql.DB
}

func NewEventRegistrationRepository(db *sql.DB) domain.EventRegistrationRepository {
	return &eventRegistrationRepository{
		DB: db,
	}
}

// Create inserts the registration. The (event_id, email) unique index turns a repeat into ErrAlreadyRegistered.
func (r *eventRegistrationRepository) Create(ctx context.Context, reg *domain.EventRegistration) error {
	query := `
		INSERT INTO event_registrations (event_id, full_name, email, company, job_title, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, reg.EventID, reg.FullName, reg.Email, reg.Company, reg.JobTitle, reg.CreatedAt).
		Scan(&reg.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

func (r *eventRegistrationRepository) GetByEventAndEmail(ctx context.Context, eventID, email string) (*domain.EventRegistration, error) {
	query := `
		SELECT id, event_id, full_name, email, company, job_title, created_at
		FROM event_registrations
		WHERE event_id = $1 AND email = $2
	`
	reg := &domain.EventRegistration{}
	err := r.DB.QueryRowContext(ctx, query, eventID, email).
		Scan(&reg.ID, &reg.EventID, &reg.FullName, &reg.Email, &reg.Company, &reg.JobTitle, &reg.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *eventRegistrationRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	query := `SELECT COUNT(*) FROM event_registrations WHERE event_id = $1`
	var n int
	if err := r.DB.QueryRowContext(ctx, query, eventID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
