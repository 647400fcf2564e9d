package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"summitportal/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

var roleRowColumns = []string{"profile_id", "tier", "created_at", "updated_at"}

const lockSuperAdminsQuery = `SELECT profile_id FROM admin_roles WHERE tier = \$1 FOR UPDATE`

// expectSuperAdminLock expects the locking read of the super_admin rows, returning ids.
func expectSuperAdminLock(mock sqlmock.Sqlmock, ids ...string) {
	rows := sqlmock.NewRows([]string{"profile_id"})
	for _, id := range ids {
		rows.AddRow(id)
	}
	mock.ExpectQuery(lockSuperAdminsQuery).WithArgs("super_admin").WillReturnRows(rows)
}

func TestAdminRoleRepository_Grant(t *testing.T) {
	ctx := context.Background()
	grantedAt := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
		wantMsg string
	}{
		{
			name: "writes role and flag in one transaction",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				expectSuperAdminLock(mock, "lead")
				mock.ExpectQuery(`INSERT INTO admin_roles \(profile_id, tier, created_at, updated_at\)`).
					WithArgs("p-1", "producer").
					WillReturnRows(sqlmock.NewRows(roleRowColumns).AddRow("p-1", "producer", grantedAt, grantedAt))
				mock.ExpectExec(`UPDATE profiles SET is_admin = TRUE`).
					WithArgs("p-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "flag write failure rolls back the role row",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				expectSuperAdminLock(mock, "lead")
				mock.ExpectQuery(`INSERT INTO admin_roles`).
					WithArgs("p-1", "producer").
					WillReturnRows(sqlmock.NewRows(roleRowColumns).AddRow("p-1", "producer", grantedAt, grantedAt))
				mock.ExpectExec(`UPDATE profiles SET is_admin = TRUE`).
					WithArgs("p-1").
					WillReturnError(sql.ErrConnDone)
				mock.ExpectRollback()
			},
			wantErr: sql.ErrConnDone,
		},
		{
			name: "unknown profile is a foreign key violation",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				expectSuperAdminLock(mock, "lead")
				mock.ExpectQuery(`INSERT INTO admin_roles`).
					WithArgs("p-1", "producer").
					WillReturnError(&pq.Error{Code: "23503"})
				mock.ExpectRollback()
			},
			wantErr: domain.ErrUserNotFound,
		},
		{
			name: "lowering the only super admin rolls back",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				expectSuperAdminLock(mock, "p-1")
				mock.ExpectRollback()
			},
			wantErr: domain.ErrLastSuperAdmin,
		},
		{
			name: "lock failure rolls back",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockSuperAdminsQuery).WithArgs("super_admin").WillReturnError(sql.ErrConnDone)
				mock.ExpectRollback()
			},
			wantErr: sql.ErrConnDone,
		},
		{
			name: "begin failure",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))
			},
			wantMsg: "begin tx: pool exhausted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewAdminRoleRepository(db)
			role, err := repo.Grant(ctx, "p-1", domain.TierProducer)
			require.NoError(t, mock.ExpectationsWereMet())
			if tt.wantErr != nil || tt.wantMsg != "" {
				require.Error(t, err)
				if tt.wantErr != nil {
					require.ErrorIs(t, err, tt.wantErr)
				}
				if tt.wantMsg != "" {
					require.EqualError(t, err, tt.wantMsg)
				}
				require.Nil(t, role)
				return
			}
			require.NoError(t, err)
			require.Equal(t, &domain.AdminRole{ProfileID: "p-1", Tier: domain.TierProducer, CreatedAt: grantedAt, UpdatedAt: grantedAt}, role)
		})
	}
}

func TestAdminRoleRepository_Revoke(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "deletes role and clears flag",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				expectSuperAdminLock(mock, "lead")
				mock.ExpectExec(`DELETE FROM admin_roles WHERE profile_id = \$1`).
					WithArgs("p-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`UPDATE profiles SET is_admin = FALSE`).
					WithArgs("p-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "clears a drifted flag without a role row",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				expectSuperAdminLock(mock, "lead")
				mock.ExpectExec(`DELETE FROM admin_roles`).
					WithArgs("p-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(`UPDATE profiles SET is_admin = FALSE`).
					WithArgs("p-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "missing profile rolls back",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				expectSuperAdminLock(mock)
				mock.ExpectExec(`DELETE FROM admin_roles`).
					WithArgs("p-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`UPDATE profiles SET is_admin = FALSE`).
					WithArgs("p-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
			wantErr: domain.ErrUserNotFound,
		},
		{
			name: "last super admin is kept",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				expectSuperAdminLock(mock, "p-1")
				mock.ExpectRollback()
			},
			wantErr: domain.ErrLastSuperAdmin,
		},
		{
			name: "one of two super admins is removed",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				expectSuperAdminLock(mock, "lead", "p-1")
				mock.ExpectExec(`DELETE FROM admin_roles`).
					WithArgs("p-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`UPDATE profiles SET is_admin = FALSE`).
					WithArgs("p-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			err = NewAdminRoleRepository(db).Revoke(ctx, "p-1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAdminRoleRepository_UpdateTier(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	t.Run("promotion skips the lock", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE admin_roles SET tier = \$1, updated_at = NOW\(\)\s+WHERE profile_id = \$2`).
			WithArgs("super_admin", "p-1").
			WillReturnRows(sqlmock.NewRows(roleRowColumns).AddRow("p-1", "super_admin", at, at))
		mock.ExpectCommit()

		role, err := NewAdminRoleRepository(db).UpdateTier(ctx, "p-1", domain.TierSuperAdmin)
		require.NoError(t, err)
		require.Equal(t, domain.TierSuperAdmin, role.Tier)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("demoting one of two super admins", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		expectSuperAdminLock(mock, "lead", "p-1")
		mock.ExpectQuery(`UPDATE admin_roles SET tier`).
			WithArgs("producer", "p-1").
			WillReturnRows(sqlmock.NewRows(roleRowColumns).AddRow("p-1", "producer", at, at))
		mock.ExpectCommit()

		role, err := NewAdminRoleRepository(db).UpdateTier(ctx, "p-1", domain.TierProducer)
		require.NoError(t, err)
		require.Equal(t, domain.TierProducer, role.Tier)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("demoting the last super admin rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		expectSuperAdminLock(mock, "p-1")
		mock.ExpectRollback()

		role, err := NewAdminRoleRepository(db).UpdateTier(ctx, "p-1", domain.TierCoordinator)
		require.ErrorIs(t, err, domain.ErrLastSuperAdmin)
		require.Nil(t, role)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no role", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		expectSuperAdminLock(mock, "lead")
		mock.ExpectQuery(`UPDATE admin_roles SET tier`).
			WithArgs("coordinator", "p-2").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err = NewAdminRoleRepository(db).UpdateTier(ctx, "p-2", domain.TierCoordinator)
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAdminRoleRepository_ListMembers(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT p.id, p.email, p.full_name, ar.tier, ar.created_at\s+FROM admin_roles ar`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name", "tier", "created_at"}).
			AddRow("p-1", "lead@summits.example", "Lead", "super_admin", at).
			AddRow("p-2", "ops@summits.example", "Ops", "coordinator", at))

	got, err := NewAdminRoleRepository(db).ListMembers(context.Background())
	require.NoError(t, err)
	require.Equal(t, []*domain.AdminMember{
		{ProfileID: "p-1", Email: "lead@summits.example", FullName: "Lead", Tier: domain.TierSuperAdmin, GrantedAt: at},
		{ProfileID: "p-2", Email: "ops@summits.example", FullName: "Ops", Tier: domain.TierCoordinator, GrantedAt: at},
	}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}
