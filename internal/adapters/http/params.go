package http

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/noteandmore/api/internal/domain/entities"
	"github.com/noteandmore/api/internal/ports"
)

// listParams extracts the shared page/limit/sortBy/sortOrder query parameters.
// Out-of-range values are clamped later by ListParams.Normalize.
func listParams(c echo.Context) ports.ListParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	return ports.ListParams{
		Page:      page,
		Limit:     limit,
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	}
}

func optionalString(c echo.Context, name string) *string {
	if v := c.QueryParam(name); v != "" {
		return &v
	}
	return nil
}

func taskFilter(c echo.Context, userID uuid.UUID) ports.TaskFilter {
	filter := ports.TaskFilter{
		UserID:     userID,
		Search:     optionalString(c, "search"),
		Category:   optionalString(c, "category"),
		Tag:        optionalString(c, "tag"),
		ListParams: listParams(c),
	}

	if v := c.QueryParam("status"); v != "" {
		status := entities.TaskStatus(v)
		filter.Status = &status
	}
	if v := c.QueryParam("priority"); v != "" {
		priority := entities.Priority(v)
		filter.Priority = &priority
	}

	return filter
}

func quoteFilter(c echo.Context, userID uuid.UUID) ports.QuoteFilter {
	filter := ports.QuoteFilter{
		UserID:     userID,
		Search:     optionalString(c, "search"),
		Tag:        optionalString(c, "tag"),
		ListParams: listParams(c),
	}

	if v := c.QueryParam("category"); v != "" {
		category := entities.QuoteCategory(v)
		filter.Category = &category
	}
	if v := c.QueryParam("language"); v != "" {
		language := entities.Language(v)
		filter.Language = &language
	}
	if v := c.QueryParam("favorite"); v == "true" {
		filter.FavoritesOnly = true
	}

	return filter
}

func categoryFilter(c echo.Context, userID uuid.UUID) ports.CategoryFilter {
	filter := ports.CategoryFilter{
		UserID:     userID,
		Search:     optionalString(c, "search"),
		ListParams: listParams(c),
	}

	if v := c.QueryParam("type"); v != "" {
		ctype := entities.CategoryType(v)
		filter.Type = &ctype
	}

	return filter
}

func shoppingFilter(c echo.Context, userID uuid.UUID) ports.ShoppingListFilter {
	filter := ports.ShoppingListFilter{
		UserID:     userID,
		Search:     optionalString(c, "search"),
		ListParams: listParams(c),
	}

	if v := c.QueryParam("status"); v != "" {
		status := entities.ShoppingListStatus(v)
		filter.Status = &status
	}

	return filter
}
