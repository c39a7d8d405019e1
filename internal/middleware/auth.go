// Package middleware provides shared request processing for handlers:
// bearer-token authorization, login rate limiting and response caching.
package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/loan-ledger/internal/apperr"
	"github.com/iliyamo/loan-ledger/internal/auth"
)

// BearerAuth returns middleware that runs every request through the access
// gate before the handler executes. On success the resolved user id is
// stored in the context under "user_id"; on failure the classified error is
// written and the chain stops.
func BearerAuth(gate *auth.Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := ""
			if h := c.Request().Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				raw = strings.TrimPrefix(h, "Bearer ")
			}
			userID, err := gate.Authorize(c.Request().Context(), raw)
			if err != nil {
				if apperr.KindOf(err) == apperr.KindInternal {
					c.Logger().Error(err)
				}
				return c.JSON(apperr.Status(err), apperr.BodyOf(err))
			}
			c.Set("user_id", userID)
			return next(c)
		}
	}
}

// currentUserID reads the identity stored by BearerAuth. Unauthenticated
// requests (e.g. login, which runs before the gate) report "anon".
func currentUserID(c echo.Context) string {
	if v, ok := c.Get("user_id").(string); ok && v != "" {
		return v
	}
	return "anon"
}
