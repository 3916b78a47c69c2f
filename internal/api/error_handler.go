package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medisys/opd-console/internal/api/handler"
	"github.com/medisys/opd-console/internal/core/domain"
	"github.com/medisys/opd-console/internal/infrastructure/httpclient"
)

// PendingNavigation hands out the navigation a lower layer asked for.
type PendingNavigation interface {
	Consume() (string, bool)
}

// errorResponse is the canonical error envelope for all console errors.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Redirects to the login page when the backend expired the session.
//   - Passes backend statuses and messages through.
//   - Logs unexpected errors without leaking details to the operator.
func NewHTTPErrorHandler(nav PendingNavigation, loginPath string, log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ae *httpclient.AuthExpiredError
		if errors.As(err, &ae) {
			target := ae.Location
			if p, ok := nav.Consume(); ok {
				target = p
			}
			if target == "" {
				target = loginPath
			}
			_ = c.Redirect(http.StatusFound, target)
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var te *httpclient.TransportError
	if errors.As(err, &te) {
		log.Error().Err(te.Err).Str("backend", te.Addr).Str("url", te.URL).Msg("backend unreachable")
		return http.StatusBadGateway, errorResponse{Error: te.Error(), Code: te.Code()}
	}

	var se *httpclient.ServerError
	if errors.As(err, &se) {
		msg := se.Message
		if msg == "" {
			msg = http.StatusText(se.Status)
		}
		return se.Status, errorResponse{Error: msg}
	}

	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, errorResponse{Error: ve.Error()}
	}

	switch {
	case errors.Is(err, domain.ErrEmptyPrescription),
		errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrUnknownRole):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrNoSession):
		return http.StatusUnauthorized, errorResponse{Error: err.Error()}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
