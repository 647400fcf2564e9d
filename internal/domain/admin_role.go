package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// RoleTier is an administrative tier. Tiers are ordered: coordinator < producer < super_admin.
type RoleTier string

const (
	TierCoordinator RoleTier = "coordinator"
	TierProducer    RoleTier = "producer"
	TierSuperAdmin  RoleTier = "super_admin"

	// DefaultTier is granted when an admin is toggled on from the users manager.
	DefaultTier = TierCoordinator
)

var tierRank = map[RoleTier]int{
	TierCoordinator: 1,
	TierProducer:    2,
	TierSuperAdmin:  3,
}

// ParseRoleTier normalizes s and returns the matching tier.
func ParseRoleTier(s string) (RoleTier, error) {
	t := RoleTier(strings.TrimSpace(strings.ToLower(s)))
	if _, ok := tierRank[t]; !ok {
		return "", fmt.Errorf("%w: unknown role tier %q", ErrInvalidInput, s)
	}
	return t, nil
}

// Valid reports whether t is a known tier.
func (t RoleTier) Valid() bool {
	_, ok := tierRank[t]
	return ok
}

// AtLeast reports whether t grants at least the permissions of other.
func (t RoleTier) AtLeast(other RoleTier) bool {
	return t.Valid() && tierRank[t] >= tierRank[other]
}

// AdminRole assigns a tier to a profile. A profile has at most one.
// swagger:model AdminRole
type AdminRole struct {
	ProfileID string    `json:"profile_id"`
	Tier      RoleTier  `json:"tier"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AdminMember is an admin profile joined with its role, as shown on the admin team screen.
// swagger:model AdminMember
type AdminMember struct {
	ProfileID string    `json:"profile_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Tier      RoleTier  `json:"tier"`
	GrantedAt time.Time `json:"granted_at"`
}

// AdminSession is the resolved identity of an admin caller.
// swagger:model AdminSession
type AdminSession struct {
	Profile      *Profile   `json:"profile"`
	Role         *AdminRole `json:"role"`
	IsSuperAdmin bool       `json:"is_super_admin"`
}

// NewAdminSession derives IsSuperAdmin from the role tier.
func NewAdminSession(p *Profile, role *AdminRole) *AdminSession {
	return &AdminSession{
		Profile:      p,
		Role:         role,
		IsSuperAdmin: role != nil && role.Tier.AtLeast(TierSuperAdmin),
	}
}

// AdminRoleRepository stores admin roles. Grant and Revoke keep profiles.is_admin in step
// with the role row inside one transaction. Grant, Revoke and UpdateTier return
// ErrLastSuperAdmin instead of leaving the team without a super admin.
type AdminRoleRepository interface {
	GetByProfileID(ctx context.Context, profileID string) (*AdminRole, error)
	Grant(ctx context.Context, profileID string, tier RoleTier) (*AdminRole, error)
	Revoke(ctx context.Context, profileID string) error
	UpdateTier(ctx context.Context, profileID string, tier RoleTier) (*AdminRole, error)
	ListMembers(ctx context.Context) ([]*AdminMember, error)
}

// AccessService resolves the caller behind an admin request.
type AccessService interface {
	// ResolveAdmin returns ErrUnauthorized when the profile no longer exists and ErrNotAdmin
	// when it is not an admin. Other errors are lookup failures.
	ResolveAdmin(ctx context.Context, profileID string) (*AdminSession, error)
}

// AdminTeamService manages who has admin access and at which tier.
type AdminTeamService interface {
	ListAdmins(ctx context.Context) ([]*AdminMember, error)
	AddAdmin(ctx context.Context, email string, tier RoleTier, actor *AdminSession) (*AdminMember, error)
	ChangeTier(ctx context.Context, profileID string, tier RoleTier, actor *AdminSession) (*AdminRole, error)
	RemoveAdmin(ctx context.Context, profileID string, actor *AdminSession) error
}
