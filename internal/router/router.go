// Package router registers the HTTP routes and their middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/finetuner-backend/internal/config"
	"github.com/iliyamo/finetuner-backend/internal/handler"
	"github.com/iliyamo/finetuner-backend/internal/middleware"
)

// RegisterRoutes installs the CORS policy from settings, the unauthenticated
// health check, and the JWT-protected API group mounted at API_V1_STR.
func RegisterRoutes(e *echo.Echo, s config.Settings, health *handler.HealthHandler) {
	e.Use(middleware.CORS(s.BackendCORSOrigins))

	e.GET("/healthz", health.Health)

	api := e.Group(s.APIV1Str)
	api.Use(middleware.JWTAuth(s.SecretKey, s.Algorithm))
	api.GET("/me", handler.Me)
}
