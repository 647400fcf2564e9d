package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"summitportal/internal/delivery/http/helpers"
	"summitportal/internal/domain"
)

// RegisterRequest is the request body for POST /public/events/{slug}/registrations.
type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Company  string `json:"company"`
	JobTitle string `json:"job_title"`
}

// Validate implements Validator.
func (r RegisterRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.FullName) == "" {
		errs = append(errs, "full_name is required")
	}
	email := strings.TrimSpace(strings.ToLower(r.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	return errs
}

// ListPublicEventsSuccessResponse is the success response envelope for GET /public/events (200).
type ListPublicEventsSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// RegistrationSuccessResponse is the success response envelope for registrations (200 or 201).
type RegistrationSuccessResponse struct {
	Data  *domain.EventRegistration `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// PublicController serves the unauthenticated endpoints used by the marketing site.
type PublicController struct {
	Logger        *slog.Logger
	Events        domain.EventService
	Sponsors      domain.SponsorService
	Registrations domain.RegistrationService
}

func NewPublicController(logger *slog.Logger, events domain.EventService, sponsors domain.SponsorService, registrations domain.RegistrationService) *PublicController {
	return &PublicController{
		Logger:        logger,
		Events:        events,
		Sponsors:      sponsors,
		Registrations: registrations,
	}
}

// ListEvents godoc
// @Summary List public events
// @Description Lists active events by date, optionally narrowed to one series.
// @Tags public
// @Produce json
// @Param series query string false "Series slug, e.g. cyber-first"
// @Success 200 {object} controllers.ListPublicEventsSuccessResponse "data contains events"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /public/events [get]
func (c *PublicController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Events.ListPublicEvents(r.Context(), r.URL.Query().Get("series"))
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get a public event
// @Description Returns the event by slug in any state so the page can show that registration is closed.
// @Tags public
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /public/events/{slug} [get]
func (c *PublicController) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := c.Events.GetPublicEvent(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// ListSponsors godoc
// @Summary List public sponsors
// @Tags public
// @Produce json
// @Success 200 {object} controllers.ListSponsorsSuccessResponse "data contains active sponsors"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /public/sponsors [get]
func (c *PublicController) ListSponsors(w http.ResponseWriter, r *http.Request) {
	sponsors, err := c.Sponsors.ListPublicSponsors(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "sponsor not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sponsors)
}

// Register godoc
// @Summary Register for an event
// @Description Registers a person for the event. Repeating an email for the same event returns the existing registration with 200.
// @Tags public
// @Accept json
// @Produce json
// @Param slug path string true "Event slug"
// @Param body body RegisterRequest true "Registrant details"
// @Success 201 {object} controllers.RegistrationSuccessResponse "new registration"
// @Success 200 {object} controllers.RegistrationSuccessResponse "already registered"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: registration_closed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /public/events/{slug}/registrations [post]
func (c *PublicController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	reg := &domain.EventRegistration{
		FullName: req.FullName,
		Email:    req.Email,
		Company:  req.Company,
		JobTitle: req.JobTitle,
	}
	saved, created, err := c.Registrations.Register(r.Context(), r.PathValue("slug"), reg)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	helpers.WriteJSONSuccess(w, status, saved)
}
