package postgres

import (
	"context"
	"database/sql"
	"errors"

	"summitportal/internal/domain"
)

type adminRoleRepository struct {
	DB *sql.DB
}

func NewAdminRoleRepository(db *sql.DB) domain.AdminRoleRepository {
	return &adminRoleRepository{DB: db}
}

func (r *adminRoleRepository) GetByProfileID(ctx context.Context, profileID string) (*domain.AdminRole, error) {
	query := `
		SELECT profile_id, tier, created_at, updated_at
		FROM admin_roles
		WHERE profile_id = $1
	`
	role := &domain.AdminRole{}
	err := r.DB.QueryRowContext(ctx, query, profileID).Scan(&role.ProfileID, &role.Tier, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return role, nil
}

// guardLastSuperAdmin locks every super_admin row and returns ErrLastSuperAdmin when
// profileID holds the only one. Concurrent demotions serialize on the lock, so the
// second transaction re-reads the rows after the first commits.
func guardLastSuperAdmin(ctx context.Context, tx *sql.Tx, profileID string) error {
	rows, err := tx.QueryContext(ctx, `SELECT profile_id FROM admin_roles WHERE tier = $1 FOR UPDATE`, string(domain.TierSuperAdmin))
	if err != nil {
		return err
	}
	defer rows.Close()

	count, holds := 0, false
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		count++
		if id == profileID {
			holds = true
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if holds && count <= 1 {
		return domain.ErrLastSuperAdmin
	}
	return nil
}

// Grant upserts the role row and sets profiles.is_admin in the same transaction.
// Re-granting the only super admin at a lower tier fails with ErrLastSuperAdmin.
func (r *adminRoleRepository) Grant(ctx context.Context, profileID string, tier domain.RoleTier) (*domain.AdminRole, error) {
	role := &domain.AdminRole{}
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		if tier != domain.TierSuperAdmin {
			if err := guardLastSuperAdmin(ctx, tx, profileID); err != nil {
				return err
			}
		}
		upsert := `
			INSERT INTO admin_roles (profile_id, tier, created_at, updated_at)
			VALUES ($1, $2, NOW(), NOW())
			ON CONFLICT (profile_id) DO UPDATE SET tier = EXCLUDED.tier, updated_at = NOW()
			RETURNING profile_id, tier, created_at, updated_at
		`
		err := tx.QueryRowContext(ctx, upsert, profileID, string(tier)).
			Scan(&role.ProfileID, &role.Tier, &role.CreatedAt, &role.UpdatedAt)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrUserNotFound
			}
			return err
		}
		result, err := tx.ExecContext(ctx, `UPDATE profiles SET is_admin = TRUE, updated_at = NOW() WHERE id = $1`, profileID)
		if err != nil {
			return err
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return domain.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return role, nil
}

// Revoke deletes the role row and clears profiles.is_admin in the same transaction.
// A profile flagged admin without a role row is cleared as well.
func (r *adminRoleRepository) Revoke(ctx context.Context, profileID string) error {
	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		if err := guardLastSuperAdmin(ctx, tx, profileID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM admin_roles WHERE profile_id = $1`, profileID); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, `UPDATE profiles SET is_admin = FALSE, updated_at = NOW() WHERE id = $1`, profileID)
		if err != nil {
			return err
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return domain.ErrUserNotFound
		}
		return nil
	})
}

func (r *adminRoleRepository) UpdateTier(ctx context.Context, profileID string, tier domain.RoleTier) (*domain.AdminRole, error) {
	query := `
		UPDATE admin_roles SET tier = $1, updated_at = NOW()
		WHERE profile_id = $2
		RETURNING profile_id, tier, created_at, updated_at
	`
	role := &domain.AdminRole{}
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		if tier != domain.TierSuperAdmin {
			if err := guardLastSuperAdmin(ctx, tx, profileID); err != nil {
				return err
			}
		}
		err := tx.QueryRowContext(ctx, query, string(tier), profileID).Scan(&role.ProfileID, &role.Tier, &role.CreatedAt, &role.UpdatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return role, nil
}

func (r *adminRoleRepository) ListMembers(ctx context.Context) ([]*domain.AdminMember, error) {
	query := `
		SELECT p.id, p.email, p.full_name, ar.tier, ar.created_at
		FROM admin_roles ar
		INNER JOIN profiles p ON p.id = ar.profile_id
		ORDER BY CASE ar.tier WHEN 'super_admin' THEN 3 WHEN 'producer' THEN 2 ELSE 1 END DESC, p.email ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]*domain.AdminMember, 0)
	for rows.Next() {
		m := &domain.AdminMember{}
		if err := rows.Scan(&m.ProfileID, &m.Email, &m.FullName, &m.Tier, &m.GrantedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
