package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medisys/opd-console/internal/api/metrics"
	"github.com/medisys/opd-console/internal/core/ports"
)

const HeaderRequestID = "X-Request-ID"

// WithRequestID stamps outbound requests with a fresh X-Request-ID unless
// one is already set.
func WithRequestID() Stage {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get(HeaderRequestID) != "" {
				return next.RoundTrip(req)
			}
			r := req.Clone(req.Context())
			r.Header.Set(HeaderRequestID, uuid.NewString())
			return next.RoundTrip(r)
		})
	}
}

// WithCredentials attaches "Authorization: Bearer <token>" when a token is
// stored. Without one the request goes out unauthenticated.
func WithCredentials(tokens ports.TokenSource) Stage {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(req *http.Request) (*http.Response, error) {
			tok, ok := tokens.GetToken(req.Context())
			if !ok {
				return next.RoundTrip(req)
			}
			r := req.Clone(req.Context())
			r.Header.Set("Authorization", "Bearer "+tok)
			return next.RoundTrip(r)
		})
	}
}

// TranslateTransportErrors turns "no response" failures into a
// *TransportError naming addr. Context cancellation is left alone.
func TranslateTransportErrors(addr string) Stage {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(req *http.Request) (*http.Response, error) {
			resp, err := next.RoundTrip(req)
			if err == nil {
				return resp, nil
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			return nil, &TransportError{Addr: addr, Method: req.Method, URL: req.URL.String(), Err: err}
		})
	}
}

// ExpireSessionOnUnauthorized handles a 401: the session is cleared, one
// navigation to loginPath is issued, and the call fails with
// *AuthExpiredError. Every other response passes through.
func ExpireSessionOnUnauthorized(sessions ports.SessionClearer, nav ports.Navigator, loginPath string, log zerolog.Logger) Stage {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(req *http.Request) (*http.Response, error) {
			resp, err := next.RoundTrip(req)
			if err != nil || resp.StatusCode != http.StatusUnauthorized {
				return resp, err
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()

			ctx := req.Context()
			if cerr := sessions.ClearSession(ctx); cerr != nil {
				log.Error().Err(cerr).Msg("failed to clear session after 401")
			}
			metrics.SessionExpiredTotal.Inc()
			nav.Navigate(ctx, loginPath)

			return nil, &AuthExpiredError{Location: loginPath, Method: req.Method, URL: req.URL.String()}
		})
	}
}

// WithLogging writes one debug line per exchange.
func WithLogging(log zerolog.Logger) Stage {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(req)

			ev := log.Debug()
			if err != nil {
				ev = log.Warn().Err(err)
			} else {
				ev = ev.Int("status", resp.StatusCode)
			}
			ev.Str("method", req.Method).
				Str("url", req.URL.Redacted()).
				Str("request_id", req.Header.Get(HeaderRequestID)).
				Dur("took", time.Since(start)).
				Msg("backend request")
			return resp, err
		})
	}
}

// WithMetrics records request counts and latency per method and status.
func WithMetrics() Stage {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(req)

			status := "error"
			if err == nil {
				status = strconv.Itoa(resp.StatusCode)
			} else {
				var te *TransportError
				if errors.As(err, &te) {
					metrics.TransportFailuresTotal.Inc()
				}
			}
			metrics.BackendRequestsTotal.WithLabelValues(req.Method, status).Inc()
			metrics.BackendRequestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
			return resp, err
		})
	}
}
