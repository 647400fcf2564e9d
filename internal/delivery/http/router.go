package http

import (
	"log/slog"
	"net/http"

	"summitportal/internal/delivery/http/controllers"
	"summitportal/internal/delivery/http/middleware"
	"summitportal/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterDeps holds everything NewRouter mounts.
type RouterDeps struct {
	Logger         *slog.Logger
	TokenVerifier  domain.TokenVerifier
	Access         domain.AccessService
	AllowedOrigins []string

	Auth     *controllers.AuthController
	Profiles *controllers.ProfileController
	Events   *controllers.EventController
	Sponsors *controllers.SponsorController
	Users    *controllers.UserController
	Team     *controllers.AdminTeamController
	Public   *controllers.PublicController
}

// NewRouter initializes the HTTP router with all application routes.
// Every /admin route passes the auth and admin gates; /admin/team also requires a super admin.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()

	authed := middleware.RequireAuth(d.TokenVerifier, d.Logger)
	adminGate := middleware.RequireAdmin(d.Access, d.Logger)
	admin := func(h http.HandlerFunc) http.HandlerFunc { return authed(adminGate(h)) }
	superAdmin := func(h http.HandlerFunc) http.HandlerFunc { return admin(middleware.RequireSuperAdmin(h)) }

	// Public site
	mux.HandleFunc("GET /public/events", d.Public.ListEvents)
	mux.HandleFunc("GET /public/events/{slug}", d.Public.GetEvent)
	mux.HandleFunc("POST /public/events/{slug}/registrations", d.Public.Register)
	mux.HandleFunc("GET /public/sponsors", d.Public.ListSponsors)

	// Auth
	mux.HandleFunc("POST /auth/signup", d.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", d.Auth.Login)
	mux.HandleFunc("GET /profiles/me", authed(d.Profiles.GetMe))
	mux.HandleFunc("PATCH /profiles/me/complete", authed(d.Profiles.CompleteProfile))

	// Admin
	mux.HandleFunc("GET /admin/session", admin(d.Team.GetSession))
	mux.HandleFunc("GET /admin/events", admin(d.Events.ListEvents))
	mux.HandleFunc("POST /admin/events", admin(d.Events.CreateEvent))
	mux.HandleFunc("GET /admin/events/{eventID}", admin(d.Events.GetEvent))
	mux.HandleFunc("PATCH /admin/events/{eventID}", admin(d.Events.UpdateEvent))
	mux.HandleFunc("POST /admin/events/{eventID}/toggle-active", admin(d.Events.ToggleActive))
	mux.HandleFunc("POST /admin/events/{eventID}/toggle-registration", admin(d.Events.ToggleRegistration))
	mux.HandleFunc("GET /admin/sponsors", admin(d.Sponsors.ListSponsors))
	mux.HandleFunc("POST /admin/sponsors", admin(d.Sponsors.CreateSponsor))
	mux.HandleFunc("POST /admin/sponsors/{sponsorID}/toggle-active", admin(d.Sponsors.ToggleActive))
	mux.HandleFunc("GET /admin/users", admin(d.Users.ListUsers))
	mux.HandleFunc("POST /admin/users/{profileID}/toggle-admin", admin(d.Users.ToggleAdmin))

	// Super admin
	mux.HandleFunc("GET /admin/team", superAdmin(d.Team.ListTeam))
	mux.HandleFunc("POST /admin/team", superAdmin(d.Team.AddMember))
	mux.HandleFunc("PATCH /admin/team/{profileID}", superAdmin(d.Team.ChangeTier))
	mux.HandleFunc("DELETE /admin/team/{profileID}", superAdmin(d.Team.RemoveMember))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = mux
	handler = middleware.CORS(d.AllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(d.Logger, handler)
	return handler
}
