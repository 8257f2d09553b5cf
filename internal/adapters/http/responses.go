package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/noteandmore/api/internal/domain/entities"
)

// MessageResponse is a simple confirmation payload
type MessageResponse struct {
	Message string `json:"message"`
}

// mapError translates domain errors into HTTP errors. Unknown errors become
// opaque 500s so internals never leak to clients.
func mapError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, entities.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, entities.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "You do not have access to this resource")
	case errors.Is(err, entities.ErrDuplicate):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, entities.ErrTaskNotFound),
		errors.Is(err, entities.ErrQuoteNotFound),
		errors.Is(err, entities.ErrCategoryNotFound),
		errors.Is(err, entities.ErrShoppingListNotFound),
		errors.Is(err, entities.ErrShoppingItemNotFound),
		errors.Is(err, entities.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
