package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/boardroom-simulator/pkg/jwt"
)

const (
	// OperatorIDKey is the echo context key for the authenticated operator id
	OperatorIDKey = "operator_id"
	// OperatorClaimsKey is the echo context key for the full token claims
	OperatorClaimsKey = "operator_claims"
)

// EchoAuth returns an Echo middleware that validates the bearer token and
// sets the operator id and claims into the request context. Mutating routes
// are mounted behind it; read-only routes are not.
func EchoAuth(manager *jwt.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
			}

			claims, err := manager.ValidateAccessToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(OperatorIDKey, claims.OperatorID)
			c.Set(OperatorClaimsKey, claims)
			return next(c)
		}
	}
}

// extractToken pulls the bearer token from the Authorization header, falling
// back to the access_token cookie
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	return ""
}
