package middleware

import (
	"context"
	"log/slog"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// IDTokenVerifier is the part of the Firebase auth client the middleware uses
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// UserResolver maps a verified Firebase UID onto a local user
type UserResolver func(ctx context.Context, firebaseUID string) (*models.User, error)

// FirebaseAuthMiddleware verifies Firebase ID tokens and stores the linked
// local user id in the context. Missing headers pass through as anonymous.
func FirebaseAuthMiddleware(verifier IDTokenVerifier, resolve UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			idToken, ok, err := bearerToken(c)
			if err != nil {
				return err
			}
			if !ok {
				return next(c)
			}

			ctx := c.Request().Context()
			token, err := verifier.VerifyIDToken(ctx, idToken)
			if err != nil {
				slog.DebugContext(ctx, "firebase token rejected", slog.Any("error", err))
				return invalidCredentials("Invalid or expired ID token")
			}

			user, err := resolve(ctx, token.UID)
			if err != nil {
				if models.IsKind(err, models.KindNotFound) {
					return invalidCredentials("No account is linked to this identity")
				}
				return err
			}

			c.Set("firebaseUID", token.UID)
			c.Set(ContextKeyUserID, user.ID)
			return next(c)
		}
	}
}
