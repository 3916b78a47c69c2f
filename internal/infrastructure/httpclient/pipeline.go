// Package httpclient is the console's single way of talking to the backend:
// a JSON client over an http.RoundTripper wrapped in independent stages
// (credentials, request ids, logging, metrics, error translation).
package httpclient

import "net/http"

// Stage decorates a RoundTripper.
type Stage func(next http.RoundTripper) http.RoundTripper

// RoundTripFunc adapts a function to http.RoundTripper.
type RoundTripFunc func(*http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Chain wraps base with stages. The first stage is the outermost: it sees
// the request first and the response last.
func Chain(base http.RoundTripper, stages ...Stage) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	rt := base
	for i := len(stages) - 1; i >= 0; i-- {
		rt = stages[i](rt)
	}
	return rt
}
