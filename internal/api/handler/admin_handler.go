package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/lesson-api/internal/core/domain"
	"github.com/learnhub/lesson-api/internal/core/ports"
)

// AdminHandler serves the admin-only user management routes. The pipeline
// has already checked the ADMIN role when these run.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListUsers handles GET /api/admin/users.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page (1-based)"  default(1)
// @Param        limit   query     int     false  "Page size"       default(10)
// @Param        role    query     string  false  "USER or ADMIN"
// @Param        search  query     string  false  "Partial match on name or phone"
// @Success      200     {object}  listUsersResponse
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context, _ domain.Identity) error {
	var q listUsersQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return domain.Invalid("malformed query string")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	filter := ports.UserFilter{Search: q.Search, Page: q.Page, Limit: q.Limit}
	if q.Role != "" {
		filter.Role, _ = domain.ParseRole(q.Role)
	}

	res, err := h.service.ListUsers(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listUsersResponse{
		Users:      res.Users,
		TotalCount: res.TotalCount,
		Page:       res.Page,
		Limit:      res.Limit,
		TotalPages: res.TotalPages,
	})
}

// ListUserPrompts handles GET /api/admin/users/:id/prompts.
//
// @Summary      List a user's prompts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {array}   domain.Prompt
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id}/prompts [get]
func (h *AdminHandler) ListUserPrompts(c echo.Context, _ domain.Identity) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	prompts, err := h.service.ListUserPrompts(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prompts)
}

// UpdateUser handles PATCH /api/admin/users/:id.
//
// @Summary      Update a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                     true  "User id"
// @Param        body  body      adminUpdateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /admin/users/{id} [patch]
func (h *AdminHandler) UpdateUser(c echo.Context, _ domain.Identity, req adminUpdateUserRequest) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	in := ports.AdminUpdateInput{Name: req.Name, Phone: req.Phone}
	if req.Role != nil {
		role, _ := domain.ParseRole(*req.Role)
		in.Role = &role
	}

	u, err := h.service.UpdateUser(c.Request().Context(), userID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// DeleteUser handles DELETE /api/admin/users/:id.
//
// @Summary      Delete a user and their prompts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context, _ domain.Identity) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteUser(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user and related prompts deleted"})
}
