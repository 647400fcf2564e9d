package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"summitportal/internal/delivery/http/helpers"
	"summitportal/internal/delivery/http/middleware"
	"summitportal/internal/domain"
)

// ProfileSuccessResponse is the success response envelope for endpoints returning one profile.
type ProfileSuccessResponse struct {
	Data  *domain.Profile   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CompleteProfileRequest is the request body for PATCH /profiles/me/complete. All fields are required.
type CompleteProfileRequest struct {
	FullName string `json:"full_name"`
	Title    string `json:"title"`
	Company  string `json:"company"`
}

// Validate implements Validator.
func (c CompleteProfileRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.FullName) == "" {
		errs = append(errs, "full_name is required")
	}
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(c.Company) == "" {
		errs = append(errs, "company is required")
	}
	return errs
}

type ProfileController struct {
	Logger  *slog.Logger
	Service domain.ProfileService
}

func NewProfileController(logger *slog.Logger, svc domain.ProfileService) *ProfileController {
	return &ProfileController{
		Logger:  logger,
		Service: svc,
	}
}

// GetMe godoc
// @Summary Get current profile
// @Description Returns the profile of the authenticated caller.
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ProfileSuccessResponse "data contains the profile"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profiles/me [get]
func (c *ProfileController) GetMe(w http.ResponseWriter, r *http.Request) {
	profileID, ok := middleware.ProfileIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONRedirectError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized", helpers.RedirectLogin)
		return
	}
	profile, err := c.Service.GetByID(r.Context(), profileID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "profile not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, profile)
}

// CompleteProfile godoc
// @Summary Complete current profile
// @Description Sets full name, title, and company and marks the profile completed.
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CompleteProfileRequest true "Profile details"
// @Success 200 {object} controllers.ProfileSuccessResponse "data contains the updated profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profiles/me/complete [patch]
func (c *ProfileController) CompleteProfile(w http.ResponseWriter, r *http.Request) {
	profileID, ok := middleware.ProfileIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONRedirectError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized", helpers.RedirectLogin)
		return
	}
	var req CompleteProfileRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	profile, err := c.Service.CompleteProfile(r.Context(), profileID, req.FullName, req.Title, req.Company)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "profile not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, profile)
}
