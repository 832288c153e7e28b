package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/lesson-api/internal/api/middleware"
	"github.com/learnhub/lesson-api/internal/core/domain"
	"github.com/learnhub/lesson-api/internal/core/ports"
)

// PromptHandler handles lesson generation and history.
type PromptHandler struct {
	service ports.PromptService
}

func NewPromptHandler(service ports.PromptService) *PromptHandler {
	return &PromptHandler{service: service}
}

// Create handles POST /api/prompts.
//
// @Summary      Generate a lesson for a topic
// @Tags         prompts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPromptRequest  true  "Topic and taxonomy"
// @Success      200   {object}  domain.Prompt
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /prompts [post]
func (h *PromptHandler) Create(c echo.Context, id domain.Identity, req createPromptRequest) error {
	p, err := h.service.CreatePrompt(c.Request().Context(), ports.CreatePromptInput{
		UserID:        id.UserID,
		CategoryID:    req.CategoryID,
		SubCategoryID: req.SubCategoryID,
		PromptText:    req.PromptText,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// ListForUser handles GET /api/users/:id/prompts.
//
// @Summary      List a user's prompts, newest first
// @Tags         prompts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {array}   domain.Prompt
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id}/prompts [get]
func (h *PromptHandler) ListForUser(c echo.Context, id domain.Identity) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := middleware.AuthorizeOwner(id, userID); err != nil {
		return err
	}

	prompts, err := h.service.ListUserPrompts(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prompts)
}
