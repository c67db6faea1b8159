package middleware

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// JwtCustomClaims are the claims carried by access tokens issued for this API
type JwtCustomClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTAuthMiddleware verifies an HS256 bearer token and stores its user id in
// the context. Requests without an Authorization header pass through as
// anonymous; services decide whether that is allowed.
func JWTAuthMiddleware(secret string) echo.MiddlewareFunc {
	key := []byte(secret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, ok, err := bearerToken(c)
			if err != nil {
				return err
			}
			if !ok {
				return next(c)
			}

			claims := &JwtCustomClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
				}
				return key, nil
			})
			if err != nil || !token.Valid {
				if errors.Is(err, jwt.ErrSignatureInvalid) {
					return invalidCredentials("Invalid token signature")
				}
				return invalidCredentials("Invalid or expired token")
			}
			if claims.UserID == 0 {
				return invalidCredentials("Token carries no user")
			}

			c.Set(ContextKeyUserID, claims.UserID)
			return next(c)
		}
	}
}
