package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"summitportal/internal/domain"
)

const eventColumns = `id, name, slug, series, date, location, venue, is_active, registration_open, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var seriesNull, venueNull sql.NullString
	if err := row.Scan(
		&e.ID, &e.Name, &e.Slug, &seriesNull, &e.Date, &e.Location, &venueNull,
		&e.IsActive, &e.RegistrationOpen, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if seriesNull.Valid {
		e.Series = &seriesNull.String
	}
	if venueNull.Valid {
		e.Venue = &venueNull.String
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, slug, series, date, location, venue, is_active, registration_open, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.Name, e.Slug, e.Series, e.Date, e.Location, e.Venue, e.IsActive, e.RegistrationOpen, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSlug
		}
		return err
	}
	return nil
}

func (r *eventRepository) getOne(ctx context.Context, query string, arg any) (*domain.Event, error) {
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return r.getOne(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	return r.getOne(ctx, `SELECT `+eventColumns+` FROM events WHERE slug = $1`, strings.ToLower(strings.TrimSpace(slug)))
}

func (r *eventRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY date DESC, created_at DESC
	`
	return r.list(ctx, query)
}

func (r *eventRepository) ListActive(ctx context.Context, series string) ([]*domain.Event, error) {
	if series == "" {
		query := `
			SELECT ` + eventColumns + `
			FROM events
			WHERE is_active = TRUE
			ORDER BY date ASC
		`
		return r.list(ctx, query)
	}
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE is_active = TRUE AND series = $1
		ORDER BY date ASC
	`
	return r.list(ctx, query, series)
}

func (r *eventRepository) Update(ctx context.Context, id string, changes domain.EventChanges) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	n := 1
	if changes.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", n))
		args = append(args, *changes.Name)
		n++
	}
	if changes.Series != nil {
		setClauses = append(setClauses, fmt.Sprintf("series = NULLIF($%d, '')", n))
		args = append(args, *changes.Series)
		n++
	}
	if changes.Date != nil {
		setClauses = append(setClauses, fmt.Sprintf("date = $%d", n))
		args = append(args, *changes.Date)
		n++
	}
	if changes.Location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", n))
		args = append(args, *changes.Location)
		n++
	}
	if changes.Venue != nil {
		setClauses = append(setClauses, fmt.Sprintf("venue = NULLIF($%d, '')", n))
		args = append(args, *changes.Venue)
		n++
	}
	if n == 1 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING `+eventColumns,
		strings.Join(setClauses, ", "), n)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// toggle flips a boolean column in a single statement so concurrent toggles cannot lose an update.
func (r *eventRepository) toggle(ctx context.Context, id, column string) (*domain.Event, error) {
	query := fmt.Sprintf(`
		UPDATE events SET %[1]s = NOT %[1]s, updated_at = NOW()
		WHERE id = $1
		RETURNING `+eventColumns, column)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ToggleActive(ctx context.Context, id string) (*domain.Event, error) {
	return r.toggle(ctx, id, "is_active")
}

func (r *eventRepository) ToggleRegistration(ctx context.Context, id string) (*domain.Event, error) {
	return r.toggle(ctx, id, "registration_open")
}
