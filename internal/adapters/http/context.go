package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Context keys set by the auth middleware.
const (
	ContextKeyUserID = "user_id"
	ContextKeyEmail  = "user_email"
)

// getUserIDFromContext extracts the authenticated user ID set by the auth
// middleware. Routes behind the middleware always have it.
func getUserIDFromContext(c echo.Context) uuid.UUID {
	userID, ok := c.Get(ContextKeyUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}
