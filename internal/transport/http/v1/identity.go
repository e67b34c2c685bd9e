package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

// Identity returns middleware that resolves the submitting principal from the
// X-API-Key header using the configured key map. Requests without a
// resolvable principal get 401 before the handler runs. allowAnonymous must
// be enabled explicitly (local development); it attributes unresolvable
// requests to the anonymous principal instead of rejecting them.
func Identity(apiKeys map[string]string, allowAnonymous bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Request().Header.Get("X-API-Key")
			if principal, ok := apiKeys[key]; ok && key != "" {
				c.Set(principalKey, principal)
				return next(c)
			}
			if allowAnonymous {
				c.Set(principalKey, "anonymous")
				return next(c)
			}
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}
	}
}

// PrincipalFrom returns the principal the identity middleware resolved.
func PrincipalFrom(c echo.Context) string {
	if p, ok := c.Get(principalKey).(string); ok {
		return p
	}
	return "anonymous"
}
