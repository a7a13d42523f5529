package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"storefront-service/pkg/logger"
	"storefront-service/prometheus"
)

// AdminAuth guards mutating admin operations with a single static
// bearer secret. Browsing, checkout and favorite-toggle stay open on
// purpose; only routes wrapped in this middleware need the credential.
func AdminAuth(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			// Get the Authorization header
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing Authorization header")
				prometheus.RecordAuthFailure()
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
			}

			// Check if it's a Bearer token
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Warn("Invalid Authorization header format")
				prometheus.RecordAuthFailure()
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
			}

			// Exact match against the configured secret
			if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(token)) != 1 {
				log.Warn("Invalid admin token")
				prometheus.RecordAuthFailure()
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid admin token"})
			}

			// Credential is valid, proceed with the request
			return next(c)
		}
	}
}
