package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/noteandmore/api/internal/application/services"
	"github.com/noteandmore/api/internal/domain/entities"
	"github.com/noteandmore/api/internal/infrastructure/logger"
)

// QuoteHandler handles quote-related requests
type QuoteHandler struct {
	quoteService *services.QuoteService
	logger       *logger.Logger
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteService *services.QuoteService, logger *logger.Logger) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		logger:       logger,
	}
}

// ListQuotes handles listing quotes with filters and pagination
func (h *QuoteHandler) ListQuotes(c echo.Context) error {
	userID := getUserIDFromContext(c)

	page, err := h.quoteService.ListQuotes(c.Request().Context(), quoteFilter(c, userID))
	if err != nil {
		h.logger.Error("List quotes failed", "error", err, "user_id", userID)
		return mapError(err)
	}

	return c.JSON(http.StatusOK, page)
}

// CreateQuote handles quote creation
func (h *QuoteHandler) CreateQuote(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req services.CreateQuoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	quote, err := h.quoteService.CreateQuote(c.Request().Context(), userID, req)
	if err != nil {
		h.logger.Error("Create quote failed", "error", err, "user_id", userID)
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, quote)
}

// RandomQuote returns a random visible quote
func (h *QuoteHandler) RandomQuote(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var language *entities.Language
	if v := c.QueryParam("language"); v != "" {
		l := entities.Language(v)
		language = &l
	}

	quote, err := h.quoteService.RandomQuote(c.Request().Context(), userID, language)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, quote)
}

// GetQuote handles getting a quote by ID
func (h *QuoteHandler) GetQuote(c echo.Context) error {
	userID := getUserIDFromContext(c)

	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid quote ID")
	}

	quote, err := h.quoteService.GetQuote(c.Request().Context(), userID, quoteID)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, quote)
}

// UpdateQuote handles partial quote updates
func (h *QuoteHandler) UpdateQuote(c echo.Context) error {
	userID := getUserIDFromContext(c)

	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid quote ID")
	}

	var req services.UpdateQuoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	quote, err := h.quoteService.UpdateQuote(c.Request().Context(), userID, quoteID, req)
	if err != nil {
		h.logger.Error("Update quote failed", "error", err, "quote_id", quoteID, "user_id", userID)
		return mapError(err)
	}

	return c.JSON(http.StatusOK, quote)
}

// DeleteQuote handles quote deletion
func (h *QuoteHandler) DeleteQuote(c echo.Context) error {
	userID := getUserIDFromContext(c)

	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid quote ID")
	}

	if err := h.quoteService.DeleteQuote(c.Request().Context(), userID, quoteID); err != nil {
		h.logger.Error("Delete quote failed", "error", err, "quote_id", quoteID, "user_id", userID)
		return mapError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Quote deleted successfully"})
}

// UseQuote increments a quote's usage counter
func (h *QuoteHandler) UseQuote(c echo.Context) error {
	userID := getUserIDFromContext(c)

	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid quote ID")
	}

	quote, err := h.quoteService.UseQuote(c.Request().Context(), userID, quoteID)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, quote)
}

// ToggleFavorite flips the favorite flag
func (h *QuoteHandler) ToggleFavorite(c echo.Context) error {
	userID := getUserIDFromContext(c)

	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid quote ID")
	}

	quote, err := h.quoteService.ToggleFavorite(c.Request().Context(), userID, quoteID)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, quote)
}
