package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medisys/opd-console/internal/api/middleware"
	"github.com/medisys/opd-console/internal/core/domain"
)

// ctxUser returns the user placed on the context by the Guard middleware.
// A missing user means the route was registered without a guard.
func ctxUser(c echo.Context) (*domain.User, error) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, domain.ErrNoSession
	}
	return u, nil
}

// bindValid binds the request body into req and validates it.
func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

type messageResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}
