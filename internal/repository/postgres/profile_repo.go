package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"summitportal/internal/domain"
)

const profileColumns = `id, email, full_name, title, company, is_admin, profile_completed, password_hash, salt, created_at, updated_at`

// likeEscaper makes search text match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type profileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{DB: db}
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	p := &domain.Profile{}
	err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.Title, &p.Company, &p.IsAdmin, &p.ProfileCompleted,
		&p.PasswordHash, &p.Salt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	query := `
		INSERT INTO profiles (email, full_name, title, company, password_hash, salt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, p.Email, p.FullName, p.Title, p.Company, p.PasswordHash, p.Salt, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *profileRepository) getOne(ctx context.Context, query string, arg any) (*domain.Profile, error) {
	p, err := scanProfile(r.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE email = $1`, email)
}

// GetWithRole loads the profile and, when present, its admin role in one query.
func (r *profileRepository) GetWithRole(ctx context.Context, id string) (*domain.Profile, *domain.AdminRole, error) {
	query := `
		SELECT p.id, p.email, p.full_name, p.title, p.company, p.is_admin, p.profile_completed,
		       p.password_hash, p.salt, p.created_at, p.updated_at,
		       ar.tier, ar.created_at, ar.updated_at
		FROM profiles p
		LEFT JOIN admin_roles ar ON ar.profile_id = p.id
		WHERE p.id = $1
	`
	p := &domain.Profile{}
	var tier sql.NullString
	var roleCreated, roleUpdated sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Email, &p.FullName, &p.Title, &p.Company, &p.IsAdmin, &p.ProfileCompleted,
		&p.PasswordHash, &p.Salt, &p.CreatedAt, &p.UpdatedAt,
		&tier, &roleCreated, &roleUpdated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.ErrUserNotFound
		}
		return nil, nil, err
	}
	if !tier.Valid {
		return p, nil, nil
	}
	role := &domain.AdminRole{
		ProfileID: p.ID,
		Tier:      domain.RoleTier(tier.String),
		CreatedAt: roleCreated.Time,
		UpdatedAt: roleUpdated.Time,
	}
	return p, role, nil
}

func (r *profileRepository) List(ctx context.Context, filter domain.ProfileFilter, params domain.PaginationParams) ([]*domain.Profile, int, error) {
	var where []string
	var args []any
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+likeEscaper.Replace(strings.ToLower(s))+"%")
		where = append(where, fmt.Sprintf(`(LOWER(email) LIKE $%d ESCAPE '\' OR LOWER(full_name) LIKE $%d ESCAPE '\')`, len(args), len(args)))
	}
	if filter.AdminsOnly {
		where = append(where, "is_admin = TRUE")
	}
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM profiles ` + whereSQL
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, params.PageSize, params.Offset())
	query := fmt.Sprintf(`
		SELECT %s
		FROM profiles
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, profileColumns, whereSQL, len(args)-1, len(args))
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	profiles := make([]*domain.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (r *profileRepository) UpdateDetails(ctx context.Context, p *domain.Profile) error {
	query := `
		UPDATE profiles
		SET full_name = $1, title = $2, company = $3, profile_completed = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := r.DB.ExecContext(ctx, query, p.FullName, p.Title, p.Company, p.ProfileCompleted, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
