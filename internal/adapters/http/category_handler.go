package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/noteandmore/api/internal/application/services"
	"github.com/noteandmore/api/internal/infrastructure/logger"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService *services.CategoryService
	logger          *logger.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *services.CategoryService, logger *logger.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// ListCategories handles listing categories
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	userID := getUserIDFromContext(c)

	page, err := h.categoryService.ListCategories(c.Request().Context(), categoryFilter(c, userID))
	if err != nil {
		h.logger.Error("List categories failed", "error", err, "user_id", userID)
		return mapError(err)
	}

	return c.JSON(http.StatusOK, page)
}

// CreateCategory handles category creation
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req services.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.categoryService.CreateCategory(c.Request().Context(), userID, req)
	if err != nil {
		h.logger.Error("Create category failed", "error", err, "user_id", userID)
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, category)
}

// GetCategory handles getting a category by ID
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	userID := getUserIDFromContext(c)

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid category ID")
	}

	category, err := h.categoryService.GetCategory(c.Request().Context(), userID, categoryID)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, category)
}

// UpdateCategory handles partial category updates
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	userID := getUserIDFromContext(c)

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid category ID")
	}

	var req services.UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.categoryService.UpdateCategory(c.Request().Context(), userID, categoryID, req)
	if err != nil {
		h.logger.Error("Update category failed", "error", err, "category_id", categoryID, "user_id", userID)
		return mapError(err)
	}

	return c.JSON(http.StatusOK, category)
}

// DeleteCategory handles category deletion
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	userID := getUserIDFromContext(c)

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid category ID")
	}

	if err := h.categoryService.DeleteCategory(c.Request().Context(), userID, categoryID); err != nil {
		h.logger.Error("Delete category failed", "error", err, "category_id", categoryID, "user_id", userID)
		return mapError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Category deleted successfully"})
}

// ReorderCategories updates the sort order of multiple categories
func (h *CategoryHandler) ReorderCategories(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req services.ReorderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.categoryService.Reorder(c.Request().Context(), userID, req); err != nil {
		h.logger.Error("Reorder categories failed", "error", err, "user_id", userID)
		return mapError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Categories reordered successfully"})
}
