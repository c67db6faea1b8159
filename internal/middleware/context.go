package middleware

import (
	"strings"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// ContextKeyUserID is the echo context key holding the authenticated user id
const ContextKeyUserID = "userID"

// UserID returns the authenticated user id, or 0 for anonymous requests
func UserID(c echo.Context) uint {
	id, _ := c.Get(ContextKeyUserID).(uint)
	return id
}

// bearerToken extracts the token from the Authorization header. ok is false
// when no header was sent; a malformed header is an error.
func bearerToken(c echo.Context) (token string, ok bool, err error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", false, nil
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", true, invalidCredentials("Authorization header must be in Bearer format")
	}
	return parts[1], true, nil
}

func invalidCredentials(message string) *models.AppError {
	return &models.AppError{Kind: models.KindUnauthenticated, Message: message}
}
