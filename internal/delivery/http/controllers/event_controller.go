package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"summitportal/internal/delivery/http/helpers"
	"summitportal/internal/domain"
)

// dateLayout is the wire format of event dates in request bodies.
const dateLayout = "2006-01-02"

// CreateEventRequest is the request body for POST /admin/events. slug is derived from name when omitted.
type CreateEventRequest struct {
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	Series   *string `json:"series"`
	Date     string  `json:"date" example:"2026-06-01"`
	Location string  `json:"location"`
	Venue    *string `json:"venue"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if c.Date == "" {
		errs = append(errs, "date is required")
	} else if _, err := time.Parse(dateLayout, c.Date); err != nil {
		errs = append(errs, "date must be formatted as YYYY-MM-DD")
	}
	if strings.TrimSpace(c.Location) == "" {
		errs = append(errs, "location is required")
	}
	return errs
}

// UpdateEventRequest is the request body for PATCH /admin/events/{eventID}. Omitted fields are unchanged;
// an empty series or venue clears it.
type UpdateEventRequest struct {
	Name     *string `json:"name"`
	Series   *string `json:"series"`
	Date     *string `json:"date" example:"2026-06-01"`
	Location *string `json:"location"`
	Venue    *string `json:"venue"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	if u.Date != nil {
		if _, err := time.Parse(dateLayout, *u.Date); err != nil {
			errs = append(errs, "date must be formatted as YYYY-MM-DD")
		}
	}
	if u.Location != nil && strings.TrimSpace(*u.Location) == "" {
		errs = append(errs, "location cannot be empty")
	}
	return errs
}

func (u UpdateEventRequest) changes() domain.EventChanges {
	changes := domain.EventChanges{
		Name:     u.Name,
		Series:   u.Series,
		Location: u.Location,
		Venue:    u.Venue,
	}
	if u.Date != nil {
		// Validate has already rejected unparsable dates.
		d, _ := time.Parse(dateLayout, *u.Date)
		changes.Date = &d
	}
	return changes
}

// EventSuccessResponse is the success response envelope for endpoints returning one event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEventsSuccessResponse is the success response envelope for GET /admin/events (200).
type ListEventsSuccessResponse struct {
	Data  []*domain.EventSummary `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// EventController backs the admin events manager.
type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Lists every event, newest date first, with its registration count. Inactive events are included.
// @Tags admin-events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains events with registration counts"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListEvents(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	if events == nil {
		events = []*domain.EventSummary{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event that is active and open for registration. The slug is derived from the name when omitted.
// @Tags admin-events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	date, _ := time.Parse(dateLayout, req.Date)
	now := time.Now()
	event := domain.NewEvent(req.Name, req.Slug, req.Series, date, req.Location, req.Venue, now, now)
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		writeServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEvent godoc
// @Summary Get an event
// @Tags admin-events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	event, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Partially updates name, series, date, location, and venue. The slug and state flags are not editable here.
// @Tags admin-events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body UpdateEventRequest true "Fields to update"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), eventID, req.changes())
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// ToggleActive godoc
// @Summary Toggle event visibility
// @Description Flips is_active. Registration state is not affected.
// @Tags admin-events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID}/toggle-active [post]
func (c *EventController) ToggleActive(w http.ResponseWriter, r *http.Request) {
	c.toggle(w, r, c.Service.ToggleActive)
}

// ToggleRegistration godoc
// @Summary Toggle event registration
// @Description Flips registration_open. Visibility is not affected.
// @Tags admin-events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID}/toggle-registration [post]
func (c *EventController) ToggleRegistration(w http.ResponseWriter, r *http.Request) {
	c.toggle(w, r, c.Service.ToggleRegistration)
}

type eventToggleFunc func(ctx context.Context, id string, actor *domain.AdminSession) (*domain.Event, error)

func (c *EventController) toggle(w http.ResponseWriter, r *http.Request, fn eventToggleFunc) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	actor, ok := adminActor(w, r)
	if !ok {
		return
	}
	event, err := fn(r.Context(), eventID, actor)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}
