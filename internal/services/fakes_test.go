package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"summitportal/internal/domain"
)

const testTimeout = 5 * time.Second

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeProfileRepo is an in-memory ProfileRepository. It shares admin state with fakeRoleRepo
// when both are built by newFakeStore.
type fakeProfileRepo struct {
	store  *fakeStore
	getErr error
}

func (f *fakeProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, existing := range f.store.profiles {
		if existing.Email == p.Email {
			return domain.ErrDuplicateEmail
		}
	}
	f.store.nextID++
	p.ID = fmt.Sprintf("p-%d", f.store.nextID)
	cp := *p
	f.store.profiles[p.ID] = &cp
	return nil
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if p, ok := f.store.profiles[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, p := range f.store.profiles {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeProfileRepo) GetWithRole(ctx context.Context, id string) (*domain.Profile, *domain.AdminRole, error) {
	p, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if r, ok := f.store.roles[id]; ok {
		cp := *r
		return p, &cp, nil
	}
	return p, nil, nil
}

func (f *fakeProfileRepo) List(ctx context.Context, filter domain.ProfileFilter, params domain.PaginationParams) ([]*domain.Profile, int, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []*domain.Profile
	for _, p := range f.store.profiles {
		if filter.AdminsOnly && !p.IsAdmin {
			continue
		}
		if s := strings.ToLower(filter.Search); s != "" && !strings.Contains(strings.ToLower(p.Email+" "+p.FullName), s) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (f *fakeProfileRepo) UpdateDetails(ctx context.Context, p *domain.Profile) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if _, ok := f.store.profiles[p.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *p
	f.store.profiles[p.ID] = &cp
	return nil
}

// fakeRoleRepo is an in-memory AdminRoleRepository. Grant and Revoke update the role map and
// the profile flag together, or neither when failFlagWrite is set. The last super admin check
// runs under the store lock, as the postgres repository runs it under row locks.
type fakeRoleRepo struct {
	store         *fakeStore
	failFlagWrite error
	grantCalls    int
}

func (f *fakeRoleRepo) GetByProfileID(ctx context.Context, profileID string) (*domain.AdminRole, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if r, ok := f.store.roles[profileID]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRoleRepo) Grant(ctx context.Context, profileID string, tier domain.RoleTier) (*domain.AdminRole, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.grantCalls++
	p, ok := f.store.profiles[profileID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if tier != domain.TierSuperAdmin && f.store.lastSuperAdmin(profileID) {
		return nil, domain.ErrLastSuperAdmin
	}
	if f.failFlagWrite != nil {
		return nil, f.failFlagWrite
	}
	now := time.Now()
	role, ok := f.store.roles[profileID]
	if !ok {
		role = &domain.AdminRole{ProfileID: profileID, CreatedAt: now}
		f.store.roles[profileID] = role
	}
	role.Tier = tier
	role.UpdatedAt = now
	p.IsAdmin = true
	cp := *role
	return &cp, nil
}

func (f *fakeRoleRepo) Revoke(ctx context.Context, profileID string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	p, ok := f.store.profiles[profileID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if f.store.lastSuperAdmin(profileID) {
		return domain.ErrLastSuperAdmin
	}
	if f.failFlagWrite != nil {
		return f.failFlagWrite
	}
	delete(f.store.roles, profileID)
	p.IsAdmin = false
	return nil
}

func (f *fakeRoleRepo) UpdateTier(ctx context.Context, profileID string, tier domain.RoleTier) (*domain.AdminRole, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	role, ok := f.store.roles[profileID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if tier != domain.TierSuperAdmin && f.store.lastSuperAdmin(profileID) {
		return nil, domain.ErrLastSuperAdmin
	}
	role.Tier = tier
	cp := *role
	return &cp, nil
}

func (f *fakeRoleRepo) ListMembers(ctx context.Context) ([]*domain.AdminMember, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []*domain.AdminMember
	for id, r := range f.store.roles {
		p := f.store.profiles[id]
		out = append(out, &domain.AdminMember{ProfileID: id, Email: p.Email, FullName: p.FullName, Tier: r.Tier, GrantedAt: r.CreatedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

type fakeStore struct {
	mu       sync.Mutex
	profiles map[string]*domain.Profile
	roles    map[string]*domain.AdminRole
	nextID   int
}

func newFakeStore() (*fakeStore, *fakeProfileRepo, *fakeRoleRepo) {
	s := &fakeStore{
		profiles: make(map[string]*domain.Profile),
		roles:    make(map[string]*domain.AdminRole),
	}
	return s, &fakeProfileRepo{store: s}, &fakeRoleRepo{store: s}
}

// addProfile seeds a profile and, when tier is non-empty, an admin role.
func (s *fakeStore) addProfile(id, email string, tier domain.RoleTier) *domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	p := &domain.Profile{ID: id, Email: email, FullName: strings.Split(email, "@")[0], CreatedAt: now, UpdatedAt: now}
	s.profiles[id] = p
	if tier != "" {
		p.IsAdmin = true
		s.roles[id] = &domain.AdminRole{ProfileID: id, Tier: tier, CreatedAt: now, UpdatedAt: now}
	}
	return p
}

// lastSuperAdmin reports whether id holds the only super_admin role. Callers hold s.mu.
func (s *fakeStore) lastSuperAdmin(id string) bool {
	role, ok := s.roles[id]
	if !ok || role.Tier != domain.TierSuperAdmin {
		return false
	}
	for other, r := range s.roles {
		if other != id && r.Tier == domain.TierSuperAdmin {
			return false
		}
	}
	return true
}

// isConsistent reports whether profiles.is_admin matches the presence of a role row for id.
func (s *fakeStore) isConsistent(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, hasRole := s.roles[id]
	return s.profiles[id].IsAdmin == hasRole
}

// fakeEventRepo is an in-memory EventRepository.
type fakeEventRepo struct {
	mu     sync.Mutex
	byID   map[string]*domain.Event
	order  []string
	nextID int
	err    error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[string]*domain.Event)}
}

func (f *fakeEventRepo) add(e *domain.Event) *domain.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[e.ID] = e
	f.order = append(f.order, e.ID)
	return e
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Slug == e.Slug {
			return domain.ErrDuplicateSlug
		}
	}
	f.nextID++
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	cp := *e
	f.byID[e.ID] = &cp
	f.order = append(f.order, e.ID)
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.byID[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.byID {
		if e.Slug == strings.ToLower(strings.TrimSpace(slug)) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Event, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.byID[id])
	}
	return out, nil
}

func (f *fakeEventRepo) ListActive(ctx context.Context, series string) ([]*domain.Event, error) {
	all, err := f.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []*domain.Event
	for _, e := range all {
		if !e.IsActive {
			continue
		}
		if series != "" && (e.Series == nil || *e.Series != series) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id string, c domain.EventChanges) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if c.Name != nil {
		e.Name = *c.Name
	}
	if c.Location != nil {
		e.Location = *c.Location
	}
	if c.Date != nil {
		e.Date = *c.Date
	}
	if c.Series != nil {
		if *c.Series == "" {
			e.Series = nil
		} else {
			s := *c.Series
			e.Series = &s
		}
	}
	if c.Venue != nil {
		if *c.Venue == "" {
			e.Venue = nil
		} else {
			v := *c.Venue
			e.Venue = &v
		}
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) toggle(id string, flip func(e *domain.Event)) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	flip(e)
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) ToggleActive(ctx context.Context, id string) (*domain.Event, error) {
	return f.toggle(id, func(e *domain.Event) { e.IsActive = !e.IsActive })
}

func (f *fakeEventRepo) ToggleRegistration(ctx context.Context, id string) (*domain.Event, error) {
	return f.toggle(id, func(e *domain.Event) { e.RegistrationOpen = !e.RegistrationOpen })
}

// fakeRegistrationRepo is an in-memory EventRegistrationRepository.
type fakeRegistrationRepo struct {
	mu        sync.Mutex
	regs      []*domain.EventRegistration
	counts    map[string]int
	countErr  map[string]error
	createErr error
	nextID    int
	inFlight  int
	maxFlight int
	delay     time.Duration
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{counts: make(map[string]int), countErr: make(map[string]error)}
}

func (f *fakeRegistrationRepo) Create(ctx context.Context, reg *domain.EventRegistration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, r := range f.regs {
		if r.EventID == reg.EventID && r.Email == reg.Email {
			return domain.ErrAlreadyRegistered
		}
	}
	f.nextID++
	reg.ID = fmt.Sprintf("r-%d", f.nextID)
	cp := *reg
	f.regs = append(f.regs, &cp)
	return nil
}

func (f *fakeRegistrationRepo) GetByEventAndEmail(ctx context.Context, eventID, email string) (*domain.EventRegistration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.regs {
		if r.EventID == eventID && r.Email == email {
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRegistrationRepo) CountByEventID(ctx context.Context, eventID string) (int, error) {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxFlight {
		f.maxFlight = f.inFlight
	}
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.countErr[eventID]; err != nil {
		return 0, err
	}
	return f.counts[eventID], nil
}

// fakeSponsorRepo is an in-memory SponsorRepository.
type fakeSponsorRepo struct {
	byID   map[string]*domain.Sponsor
	nextID int
	err    error
}

func newFakeSponsorRepo() *fakeSponsorRepo {
	return &fakeSponsorRepo{byID: make(map[string]*domain.Sponsor)}
}

func (f *fakeSponsorRepo) Create(ctx context.Context, s *domain.Sponsor) error {
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.byID {
		if existing.Slug == s.Slug {
			return domain.ErrDuplicateSlug
		}
	}
	f.nextID++
	s.ID = fmt.Sprintf("s-%d", f.nextID)
	cp := *s
	f.byID[s.ID] = &cp
	return nil
}

func (f *fakeSponsorRepo) sorted(activeOnly bool) []*domain.Sponsor {
	var out []*domain.Sponsor
	for _, s := range f.byID {
		if activeOnly && !s.IsActive {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (f *fakeSponsorRepo) List(ctx context.Context) ([]*domain.Sponsor, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sorted(false), nil
}

func (f *fakeSponsorRepo) ListActive(ctx context.Context) ([]*domain.Sponsor, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sorted(true), nil
}

func (f *fakeSponsorRepo) ToggleActive(ctx context.Context, id string) (*domain.Sponsor, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	s.IsActive = !s.IsActive
	cp := *s
	return &cp, nil
}

// fakeEmailService records sent emails.
type fakeEmailService struct {
	mu           sync.Mutex
	adminAccess  []*domain.AdminAccessEmailData
	registration []*domain.RegistrationEmailData
	err          error
}

func (f *fakeEmailService) SendAdminAccessGranted(ctx context.Context, data *domain.AdminAccessEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adminAccess = append(f.adminAccess, data)
	return f.err
}

func (f *fakeEmailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registration = append(f.registration, data)
	return f.err
}

var errDB = errors.New("db unavailable")

func superAdminActor(id string) *domain.AdminSession {
	p := &domain.Profile{ID: id, Email: id + "@summits.example", FullName: "Lead", IsAdmin: true}
	return domain.NewAdminSession(p, &domain.AdminRole{ProfileID: id, Tier: domain.TierSuperAdmin})
}
