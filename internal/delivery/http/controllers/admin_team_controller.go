package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"summitportal/internal/delivery/http/helpers"
	"summitportal/internal/domain"
)

// AddAdminRequest is the request body for POST /admin/team.
type AddAdminRequest struct {
	Email string `json:"email"`
	Tier  string `json:"tier" enums:"coordinator,producer,super_admin"`
}

// Validate implements Validator.
func (a AddAdminRequest) Validate() []string {
	var errs []string
	email := strings.TrimSpace(strings.ToLower(a.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	if _, err := domain.ParseRoleTier(a.Tier); err != nil {
		errs = append(errs, "tier must be one of coordinator, producer, super_admin")
	}
	return errs
}

// ChangeTierRequest is the request body for PATCH /admin/team/{profileID}.
type ChangeTierRequest struct {
	Tier string `json:"tier" enums:"coordinator,producer,super_admin"`
}

// Validate implements Validator.
func (c ChangeTierRequest) Validate() []string {
	if _, err := domain.ParseRoleTier(c.Tier); err != nil {
		return []string{"tier must be one of coordinator, producer, super_admin"}
	}
	return nil
}

// AdminSessionSuccessResponse is the success response envelope for GET /admin/session (200).
type AdminSessionSuccessResponse struct {
	Data  *domain.AdminSession `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// AdminMemberSuccessResponse is the success response envelope for POST /admin/team (201).
type AdminMemberSuccessResponse struct {
	Data  *domain.AdminMember `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// ListAdminMembersSuccessResponse is the success response envelope for GET /admin/team (200).
type ListAdminMembersSuccessResponse struct {
	Data  []*domain.AdminMember `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// AdminRoleSuccessResponse is the success response envelope for PATCH /admin/team/{profileID} (200).
type AdminRoleSuccessResponse struct {
	Data  *domain.AdminRole `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AdminTeamController serves the admin session and the super-admin team manager.
type AdminTeamController struct {
	Logger  *slog.Logger
	Service domain.AdminTeamService
}

func NewAdminTeamController(logger *slog.Logger, svc domain.AdminTeamService) *AdminTeamController {
	return &AdminTeamController{
		Logger:  logger,
		Service: svc,
	}
}

// GetSession godoc
// @Summary Current admin session
// @Description Returns the caller's profile, role, and whether they are a super admin. Used by the admin shell to render navigation.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.AdminSessionSuccessResponse "data contains the admin session"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized, error.redirect: /auth/login"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden, error.redirect: /dashboard"
// @Router /admin/session [get]
func (c *AdminTeamController) GetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := adminActor(w, r)
	if !ok {
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, session)
}

// ListTeam godoc
// @Summary List admin team
// @Tags admin-team
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListAdminMembersSuccessResponse "data contains admin members"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden, error.redirect: /admin"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/team [get]
func (c *AdminTeamController) ListTeam(w http.ResponseWriter, r *http.Request) {
	members, err := c.Service.ListAdmins(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "admin not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, members)
}

// AddMember godoc
// @Summary Add an admin
// @Description Grants the tier to an existing profile found by email and sends a notification email.
// @Tags admin-team
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AddAdminRequest true "Email and tier"
// @Success 201 {object} controllers.AdminMemberSuccessResponse "data contains the new admin member"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/team [post]
func (c *AdminTeamController) AddMember(w http.ResponseWriter, r *http.Request) {
	var req AddAdminRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, ok := adminActor(w, r)
	if !ok {
		return
	}
	tier, _ := domain.ParseRoleTier(req.Tier)
	member, err := c.Service.AddAdmin(r.Context(), req.Email, tier, actor)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "no profile with that email")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, member)
}

// ChangeTier godoc
// @Summary Change an admin's tier
// @Description Demoting the last super admin is rejected with 409.
// @Tags admin-team
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profileID path string true "Profile ID (UUID)"
// @Param body body ChangeTierRequest true "New tier"
// @Success 200 {object} controllers.AdminRoleSuccessResponse "data contains the updated role"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/team/{profileID} [patch]
func (c *AdminTeamController) ChangeTier(w http.ResponseWriter, r *http.Request) {
	profileID, ok := helpers.PathUUID(w, r, "profileID")
	if !ok {
		return
	}
	var req ChangeTierRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, ok := adminActor(w, r)
	if !ok {
		return
	}
	tier, _ := domain.ParseRoleTier(req.Tier)
	role, err := c.Service.ChangeTier(r.Context(), profileID, tier, actor)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "admin not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, role)
}

// RemoveMember godoc
// @Summary Remove an admin
// @Description Revokes admin access. Removing the last super admin is rejected with 409.
// @Tags admin-team
// @Produce json
// @Security BearerAuth
// @Param profileID path string true "Profile ID (UUID)"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/team/{profileID} [delete]
func (c *AdminTeamController) RemoveMember(w http.ResponseWriter, r *http.Request) {
	profileID, ok := helpers.PathUUID(w, r, "profileID")
	if !ok {
		return
	}
	actor, ok := adminActor(w, r)
	if !ok {
		return
	}
	if err := c.Service.RemoveAdmin(r.Context(), profileID, actor); err != nil {
		writeServiceError(w, r, c.Logger, err, "admin not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
