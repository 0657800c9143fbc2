// Package handler contains the HTTP handlers.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/finetuner-backend/internal/middleware"
)

const checkTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RedisPinger reports Redis reachability.  It wraps *redis.Client so the
// handler package stays free of the client library.
type RedisPinger func(ctx context.Context) error

// HealthHandler serves the health-check endpoint used by load balancers and
// monitoring systems.  A nil dependency is reported as "disabled" and does
// not make the service unhealthy.
type HealthHandler struct {
	Project string
	DB      Pinger
	Redis   RedisPinger
}

// Health returns 200 with per-dependency status when the database is
// reachable, 503 otherwise.  Redis is optional and never fails the check.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), checkTimeout)
	defer cancel()

	status := http.StatusOK
	db := "disabled"
	if h.DB != nil {
		db = "ok"
		if err := h.DB.PingContext(ctx); err != nil {
			db = "unreachable"
			status = http.StatusServiceUnavailable
		}
	}
	cache := "disabled"
	if h.Redis != nil {
		cache = "ok"
		if err := h.Redis(ctx); err != nil {
			cache = "unreachable"
		}
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	return c.JSON(status, echo.Map{
		"status":   overall,
		"project":  h.Project,
		"database": db,
		"redis":    cache,
	})
}

// Me returns the authenticated subject placed in the context by JWTAuth.
func Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"user_id": c.Get(middleware.ContextKeyUserID)})
}
