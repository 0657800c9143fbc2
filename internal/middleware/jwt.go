// Package middleware holds the echo middleware driven by the settings snapshot.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/finetuner-backend/internal/utils"
)

// ContextKeyUserID is the echo context key holding the authenticated subject.
const ContextKeyUserID = "user_id"

// JWTAuth returns an Echo middleware that validates a Bearer access token
// signed with secret using algorithm (SECRET_KEY and ALGORITHM) and stores
// the token's subject in the request context under ContextKeyUserID.
func JWTAuth(secret, algorithm string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseAccessToken(secret, algorithm, raw)
			if err != nil || claims.Subject == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set(ContextKeyUserID, claims.Subject)
			return next(c)
		}
	}
}
