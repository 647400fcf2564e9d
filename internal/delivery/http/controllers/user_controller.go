package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"summitportal/internal/delivery/http/helpers"
	"summitportal/internal/domain"
)

// ListUsersResponse is the response body for GET /admin/users.
type ListUsersResponse struct {
	Users      []*domain.Profile      `json:"users"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListUsersSuccessResponse is the success response envelope for GET /admin/users (200).
type ListUsersSuccessResponse struct {
	Data  ListUsersResponse `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UserController backs the admin users manager.
type UserController struct {
	Logger  *slog.Logger
	Service domain.ProfileService
}

func NewUserController(logger *slog.Logger, svc domain.ProfileService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// ListUsers godoc
// @Summary List users
// @Description Lists profiles, newest first. search matches email or full name; admins_only=true keeps admins.
// @Tags admin-users
// @Produce json
// @Security BearerAuth
// @Param search query string false "Email or name fragment"
// @Param admins_only query bool false "Only admins"
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListUsersSuccessResponse "data contains users and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/users [get]
func (c *UserController) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	adminsOnly, _ := strconv.ParseBool(q.Get("admins_only"))
	filter := domain.ProfileFilter{
		Search:     strings.TrimSpace(q.Get("search")),
		AdminsOnly: adminsOnly,
	}
	params := helpers.ParsePagination(r)
	users, total, err := c.Service.ListProfiles(r.Context(), filter, params)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "profile not found")
		return
	}
	if users == nil {
		users = []*domain.Profile{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListUsersResponse{
		Users:      users,
		Pagination: helpers.NewPaginationMeta(params, total),
	})
}

// ToggleAdmin godoc
// @Summary Toggle admin access
// @Description Grants the coordinator tier to a non-admin or revokes admin access. Revoking the last super admin is rejected.
// @Tags admin-users
// @Produce json
// @Security BearerAuth
// @Param profileID path string true "Profile ID (UUID)"
// @Success 200 {object} controllers.ProfileSuccessResponse "data contains the updated profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/users/{profileID}/toggle-admin [post]
func (c *UserController) ToggleAdmin(w http.ResponseWriter, r *http.Request) {
	profileID, ok := helpers.PathUUID(w, r, "profileID")
	if !ok {
		return
	}
	actor, ok := adminActor(w, r)
	if !ok {
		return
	}
	profile, err := c.Service.ToggleAdmin(r.Context(), profileID, actor)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "profile not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, profile)
}
