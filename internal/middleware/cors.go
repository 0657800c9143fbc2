package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// CORS returns echo's CORS middleware restricted to origins.  Credentials
// are allowed, so wildcard origins are never configured here.
func CORS(origins []string) echo.MiddlewareFunc {
	allowed := make([]string, len(origins))
	copy(allowed, origins)
	return echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     allowed,
		AllowCredentials: true,
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch,
			http.MethodPost, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization,
		},
	})
}
