package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"summitportal/internal/delivery/http/helpers"
	"summitportal/internal/delivery/http/middleware"
	"summitportal/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const (
	testEventID   = "3f2a1c9e-8b7d-4e6f-9a0b-1c2d3e4f5a6b"
	testProfileID = "7c1d2e3f-4a5b-4c6d-8e9f-0a1b2c3d4e5f"
)

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	return envelope
}

// decodeData re-marshals envelope.Data into dest.
func decodeData(t *testing.T, envelope helpers.APIResponse, dest any) {
	t.Helper()
	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dest))
}

func withAdmin(ctx context.Context, tier domain.RoleTier) context.Context {
	p := &domain.Profile{ID: "admin-1", Email: "ops@summits.example", IsAdmin: true}
	session := domain.NewAdminSession(p, &domain.AdminRole{ProfileID: p.ID, Tier: tier})
	return middleware.SetAdminSession(middleware.SetProfileID(ctx, p.ID), session)
}

// fakeAuthService implements domain.AuthService.
type fakeAuthService struct {
	signUpProfile *domain.Profile
	signUpErr     error
	loginToken    string
	loginProfile  *domain.Profile
	loginErr      error
	lastEmail     string
	lastFullName  string
}

func (f *fakeAuthService) SignUp(ctx context.Context, email, password, fullName string) (*domain.Profile, error) {
	f.lastEmail, f.lastFullName = email, fullName
	return f.signUpProfile, f.signUpErr
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	f.lastEmail = email
	return f.loginToken, f.loginProfile, f.loginErr
}

// fakeProfileService implements domain.ProfileService.
type fakeProfileService struct {
	profile      *domain.Profile
	err          error
	list         []*domain.Profile
	total        int
	lastID       string
	lastFilter   domain.ProfileFilter
	lastParams   domain.PaginationParams
	lastActor    *domain.AdminSession
	lastComplete [3]string
}

func (f *fakeProfileService) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	f.lastID = id
	return f.profile, f.err
}

func (f *fakeProfileService) CompleteProfile(ctx context.Context, id, fullName, title, company string) (*domain.Profile, error) {
	f.lastID = id
	f.lastComplete = [3]string{fullName, title, company}
	return f.profile, f.err
}

func (f *fakeProfileService) ListProfiles(ctx context.Context, filter domain.ProfileFilter, params domain.PaginationParams) ([]*domain.Profile, int, error) {
	f.lastFilter, f.lastParams = filter, params
	return f.list, f.total, f.err
}

func (f *fakeProfileService) ToggleAdmin(ctx context.Context, profileID string, actor *domain.AdminSession) (*domain.Profile, error) {
	f.lastID, f.lastActor = profileID, actor
	return f.profile, f.err
}

// fakeEventService implements domain.EventService.
type fakeEventService struct {
	summaries   []*domain.EventSummary
	event       *domain.Event
	events      []*domain.Event
	err         error
	created     *domain.Event
	lastID      string
	lastSlug    string
	lastSeries  string
	lastChanges domain.EventChanges
	lastActor   *domain.AdminSession
	toggled     string
}

func (f *fakeEventService) ListEvents(ctx context.Context) ([]*domain.EventSummary, error) {
	return f.summaries, f.err
}

func (f *fakeEventService) CreateEvent(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	if e.Slug == "" {
		e.Slug = domain.Slugify(e.Name)
	}
	e.ID = testEventID
	f.created = e
	return nil
}

func (f *fakeEventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	f.lastID = id
	return f.event, f.err
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, id string, changes domain.EventChanges) (*domain.Event, error) {
	f.lastID, f.lastChanges = id, changes
	return f.event, f.err
}

func (f *fakeEventService) ToggleActive(ctx context.Context, id string, actor *domain.AdminSession) (*domain.Event, error) {
	f.lastID, f.lastActor, f.toggled = id, actor, "active"
	return f.event, f.err
}

func (f *fakeEventService) ToggleRegistration(ctx context.Context, id string, actor *domain.AdminSession) (*domain.Event, error) {
	f.lastID, f.lastActor, f.toggled = id, actor, "registration"
	return f.event, f.err
}

func (f *fakeEventService) ListPublicEvents(ctx context.Context, series string) ([]*domain.Event, error) {
	f.lastSeries = series
	return f.events, f.err
}

func (f *fakeEventService) GetPublicEvent(ctx context.Context, slug string) (*domain.Event, error) {
	f.lastSlug = slug
	return f.event, f.err
}

// fakeSponsorService implements domain.SponsorService.
type fakeSponsorService struct {
	sponsors []*domain.Sponsor
	sponsor  *domain.Sponsor
	err      error
	created  *domain.Sponsor
	lastID   string
}

func (f *fakeSponsorService) ListSponsors(ctx context.Context) ([]*domain.Sponsor, error) {
	return f.sponsors, f.err
}

func (f *fakeSponsorService) CreateSponsor(ctx context.Context, s *domain.Sponsor) error {
	if f.err != nil {
		return f.err
	}
	if s.Slug == "" {
		s.Slug = domain.Slugify(s.Name)
	}
	f.created = s
	return nil
}

func (f *fakeSponsorService) ToggleActive(ctx context.Context, id string, actor *domain.AdminSession) (*domain.Sponsor, error) {
	f.lastID = id
	return f.sponsor, f.err
}

func (f *fakeSponsorService) ListPublicSponsors(ctx context.Context) ([]*domain.Sponsor, error) {
	return f.sponsors, f.err
}

// fakeAdminTeamService implements domain.AdminTeamService.
type fakeAdminTeamService struct {
	members     []*domain.AdminMember
	member      *domain.AdminMember
	role        *domain.AdminRole
	err         error
	lastEmail   string
	lastTier    domain.RoleTier
	lastProfile string
	removed     bool
}

func (f *fakeAdminTeamService) ListAdmins(ctx context.Context) ([]*domain.AdminMember, error) {
	return f.members, f.err
}

func (f *fakeAdminTeamService) AddAdmin(ctx context.Context, email string, tier domain.RoleTier, actor *domain.AdminSession) (*domain.AdminMember, error) {
	f.lastEmail, f.lastTier = email, tier
	return f.member, f.err
}

func (f *fakeAdminTeamService) ChangeTier(ctx context.Context, profileID string, tier domain.RoleTier, actor *domain.AdminSession) (*domain.AdminRole, error) {
	f.lastProfile, f.lastTier = profileID, tier
	return f.role, f.err
}

func (f *fakeAdminTeamService) RemoveAdmin(ctx context.Context, profileID string, actor *domain.AdminSession) error {
	f.lastProfile = profileID
	if f.err != nil {
		return f.err
	}
	f.removed = true
	return nil
}

// fakeRegistrationService implements domain.RegistrationService.
type fakeRegistrationService struct {
	reg      *domain.EventRegistration
	created  bool
	err      error
	lastSlug string
	lastReg  *domain.EventRegistration
}

func (f *fakeRegistrationService) Register(ctx context.Context, eventSlug string, reg *domain.EventRegistration) (*domain.EventRegistration, bool, error) {
	f.lastSlug, f.lastReg = eventSlug, reg
	return f.reg, f.created, f.err
}
