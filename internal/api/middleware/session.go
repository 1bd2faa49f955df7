package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Akhilesh53/authcore/internal/core/ports"
)

// Session is the reusable guard for protected routes: it resolves the bearer
// token through the session manager and injects the authenticated identity
// into the request context. Anonymous or stale callers get a 401 before any
// handler runs.
func Session(sessions ports.SessionManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			userID, err := sessions.Resolve(c.Request().Context(), parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}

			c.Set("user_id", userID)
			c.Set("session_token", parts[1])

			return next(c)
		}
	}
}
