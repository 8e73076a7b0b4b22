package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"accessibleos/internal/service"
)

// CategoryHandler handles task-category endpoints.
type CategoryHandler struct {
	tasks    service.TaskService
	identity *identityResolver
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(tasks service.TaskService, users service.UserService, authStub bool) *CategoryHandler {
	return &CategoryHandler{
		tasks:    tasks,
		identity: &identityResolver{users: users, authStub: authStub},
	}
}

// CreateCategoryRequest is the category creation payload.
type CreateCategoryRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
	Icon  string `json:"icon" validate:"omitempty,max=50"`
}

// ListCategories godoc
// @Summary List the caller's categories
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Router /tasks/categories [get]
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	user, err := h.identity.currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	categories, err := h.tasks.GetCategories(c.Request().Context(), user.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, Response{Success: true, Data: categories})
}

// CreateCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body CreateCategoryRequest true "Category payload"
// @Success 201 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Router /tasks/categories [post]
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	user, err := h.identity.currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.tasks.CreateCategory(c.Request().Context(), user.ID, service.CreateCategoryInput{
		Name:  req.Name,
		Color: req.Color,
		Icon:  req.Icon,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    category,
		Message: "Category created successfully",
	})
}

// UpdateCategory godoc
// @Summary Partially update a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param updates body object true "Fields to update"
// @Success 200 {object} Response
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	user, err := h.identity.currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	updates := map[string]any{}
	if err := c.Bind(&updates); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.tasks.UpdateCategory(c.Request().Context(), user.ID, categoryID, updates)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    category,
		Message: "Category updated successfully",
	})
}

// DeleteCategory godoc
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} Response
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	user, err := h.identity.currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	if err := h.tasks.DeleteCategory(c.Request().Context(), user.ID, categoryID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, Response{Success: true, Message: "Category deleted successfully"})
}
