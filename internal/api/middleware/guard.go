package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medisys/opd-console/internal/api/metrics"
	"github.com/medisys/opd-console/internal/core/domain"
	"github.com/medisys/opd-console/internal/core/ports"
)

// UserKey is the echo context key holding the authorized *domain.User.
const UserKey = "user"

// Guard lets the request through only when the stored session is allowed to
// see the view. Empty roles admit any authenticated user. Everything else is
// redirected to the login page, whether the session is missing or holds the
// wrong role.
func Guard(guard ports.AccessGuard, roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := guard.Evaluate(c.Request().Context(), roles...)
			metrics.GuardDecisionsTotal.WithLabelValues(d.State.String()).Inc()

			if !d.Allowed() {
				return c.Redirect(http.StatusFound, d.Redirect)
			}

			c.Set(UserKey, d.User)
			return next(c)
		}
	}
}

// CurrentUser returns the user Guard stored on c, if any.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	u, ok := c.Get(UserKey).(*domain.User)
	return u, ok && u != nil
}
