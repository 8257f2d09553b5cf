package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/noteandmore/api/internal/application/services"
	"github.com/noteandmore/api/internal/infrastructure/logger"
)

// ShoppingHandler handles shopping list requests
type ShoppingHandler struct {
	shoppingService *services.ShoppingService
	logger          *logger.Logger
}

// NewShoppingHandler creates a new shopping handler
func NewShoppingHandler(shoppingService *services.ShoppingService, logger *logger.Logger) *ShoppingHandler {
	return &ShoppingHandler{
		shoppingService: shoppingService,
		logger:          logger,
	}
}

// ListShoppingLists handles listing shopping lists
func (h *ShoppingHandler) ListShoppingLists(c echo.Context) error {
	userID := getUserIDFromContext(c)

	page, err := h.shoppingService.ListLists(c.Request().Context(), shoppingFilter(c, userID))
	if err != nil {
		h.logger.Error("List shopping lists failed", "error", err, "user_id", userID)
		return mapError(err)
	}

	return c.JSON(http.StatusOK, page)
}

// CreateShoppingList handles shopping list creation
func (h *ShoppingHandler) CreateShoppingList(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req services.CreateShoppingListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	list, err := h.shoppingService.CreateList(c.Request().Context(), userID, req)
	if err != nil {
		h.logger.Error("Create shopping list failed", "error", err, "user_id", userID)
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, list)
}

// GetShoppingList handles getting a shopping list by ID
func (h *ShoppingHandler) GetShoppingList(c echo.Context) error {
	userID := getUserIDFromContext(c)

	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid shopping list ID")
	}

	list, err := h.shoppingService.GetList(c.Request().Context(), userID, listID)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, list)
}

// UpdateShoppingList handles partial shopping list updates
func (h *ShoppingHandler) UpdateShoppingList(c echo.Context) error {
	userID := getUserIDFromContext(c)

	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid shopping list ID")
	}

	var req services.UpdateShoppingListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	list, err := h.shoppingService.UpdateList(c.Request().Context(), userID, listID, req)
	if err != nil {
		h.logger.Error("Update shopping list failed", "error", err, "list_id", listID, "user_id", userID)
		return mapError(err)
	}

	return c.JSON(http.StatusOK, list)
}

// DeleteShoppingList handles shopping list deletion
func (h *ShoppingHandler) DeleteShoppingList(c echo.Context) error {
	userID := getUserIDFromContext(c)

	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid shopping list ID")
	}

	if err := h.shoppingService.DeleteList(c.Request().Context(), userID, listID); err != nil {
		h.logger.Error("Delete shopping list failed", "error", err, "list_id", listID, "user_id", userID)
		return mapError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Shopping list deleted successfully"})
}

// AddShoppingItem appends an item to a shopping list
func (h *ShoppingHandler) AddShoppingItem(c echo.Context) error {
	userID := getUserIDFromContext(c)

	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid shopping list ID")
	}

	var req services.ShoppingItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	list, err := h.shoppingService.AddItem(c.Request().Context(), userID, listID, req)
	if err != nil {
		h.logger.Error("Add shopping item failed", "error", err, "list_id", listID, "user_id", userID)
		return mapError(err)
	}

	return c.JSON(http.StatusOK, list)
}

// UpdateShoppingItem updates a single item inside a shopping list
func (h *ShoppingHandler) UpdateShoppingItem(c echo.Context) error {
	userID := getUserIDFromContext(c)

	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid shopping list ID")
	}

	itemID := c.Param("itemID")
	if itemID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid item ID")
	}

	var req services.UpdateShoppingItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	list, err := h.shoppingService.UpdateItem(c.Request().Context(), userID, listID, itemID, req)
	if err != nil {
		h.logger.Error("Update shopping item failed", "error", err, "list_id", listID, "item_id", itemID, "user_id", userID)
		return mapError(err)
	}

	return c.JSON(http.StatusOK, list)
}

// RemoveShoppingItem removes a single item from a shopping list
func (h *ShoppingHandler) RemoveShoppingItem(c echo.Context) error {
	userID := getUserIDFromContext(c)

	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid shopping list ID")
	}

	itemID := c.Param("itemID")
	if itemID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid item ID")
	}

	list, err := h.shoppingService.RemoveItem(c.Request().Context(), userID, listID, itemID)
	if err != nil {
		h.logger.Error("Remove shopping item failed", "error", err, "list_id", listID, "item_id", itemID, "user_id", userID)
		return mapError(err)
	}

	return c.JSON(http.StatusOK, list)
}
