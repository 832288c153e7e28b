package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/lesson-api/internal/core/ports"
)

type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// List handles GET /api/categories.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {array}  domain.Category
// @Router       /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	cats, err := h.service.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cats)
}

// ListSubCategories handles GET /api/categories/:id/sub-categories.
//
// @Summary      List sub-categories of a category
// @Tags         categories
// @Produce      json
// @Param        id   path      int  true  "Category id"
// @Success      200  {array}   domain.SubCategory
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /categories/{id}/sub-categories [get]
func (h *CategoryHandler) ListSubCategories(c echo.Context) error {
	categoryID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	subs, err := h.service.ListSubCategories(c.Request().Context(), categoryID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subs)
}
