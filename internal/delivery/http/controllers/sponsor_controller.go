package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"summitportal/internal/delivery/http/helpers"
	"summitportal/internal/domain"
)

// CreateSponsorRequest is the request body for POST /admin/sponsors.
type CreateSponsorRequest struct {
	Name    string  `json:"name"`
	Slug    string  `json:"slug"`
	LogoURL *string `json:"logo_url"`
	Website *string `json:"website"`
}

// Validate implements Validator.
func (c CreateSponsorRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// SponsorSuccessResponse is the success response envelope for endpoints returning one sponsor.
type SponsorSuccessResponse struct {
	Data  *domain.Sponsor   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListSponsorsSuccessResponse is the success response envelope for sponsor lists.
type ListSponsorsSuccessResponse struct {
	Data  []*domain.Sponsor `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SponsorController backs the admin sponsors manager.
type SponsorController struct {
	Logger  *slog.Logger
	Service domain.SponsorService
}

func NewSponsorController(logger *slog.Logger, svc domain.SponsorService) *SponsorController {
	return &SponsorController{
		Logger:  logger,
		Service: svc,
	}
}

// ListSponsors godoc
// @Summary List sponsors
// @Description Lists every sponsor, active or not, ordered by name.
// @Tags admin-sponsors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListSponsorsSuccessResponse "data contains sponsors"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/sponsors [get]
func (c *SponsorController) ListSponsors(w http.ResponseWriter, r *http.Request) {
	sponsors, err := c.Service.ListSponsors(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "sponsor not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sponsors)
}

// CreateSponsor godoc
// @Summary Create a sponsor
// @Description Creates an active sponsor. The slug is derived from the name when omitted.
// @Tags admin-sponsors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateSponsorRequest true "Sponsor data"
// @Success 201 {object} controllers.SponsorSuccessResponse "data contains the created sponsor"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/sponsors [post]
func (c *SponsorController) CreateSponsor(w http.ResponseWriter, r *http.Request) {
	var req CreateSponsorRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	now := time.Now()
	sponsor := domain.NewSponsor(req.Name, req.Slug, req.LogoURL, req.Website, now, now)
	if err := c.Service.CreateSponsor(r.Context(), sponsor); err != nil {
		writeServiceError(w, r, c.Logger, err, "sponsor not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, sponsor)
}

// ToggleActive godoc
// @Summary Toggle sponsor visibility
// @Tags admin-sponsors
// @Produce json
// @Security BearerAuth
// @Param sponsorID path string true "Sponsor ID (UUID)"
// @Success 200 {object} controllers.SponsorSuccessResponse "data contains the updated sponsor"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/sponsors/{sponsorID}/toggle-active [post]
func (c *SponsorController) ToggleActive(w http.ResponseWriter, r *http.Request) {
	sponsorID, ok := helpers.PathUUID(w, r, "sponsorID")
	if !ok {
		return
	}
	actor, ok := adminActor(w, r)
	if !ok {
		return
	}
	sponsor, err := c.Service.ToggleActive(r.Context(), sponsorID, actor)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "sponsor not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sponsor)
}
