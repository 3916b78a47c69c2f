package httpclient

import (
	"fmt"
	"net/http"
)

// CodeNetwork marks errors where no response reached the console.
const CodeNetwork = "ERR_NETWORK"

// TransportError is returned when the backend could not be reached at all
// (connection refused, DNS failure, reset before a response). The underlying
// error stays reachable through errors.As / errors.Unwrap.
type TransportError struct {
	Addr   string
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("unable to connect to the server at %s, please ensure the backend server is running", e.Addr)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Code is always CodeNetwork.
func (e *TransportError) Code() string { return CodeNetwork }

// AuthExpiredError is returned for a 401 on an authenticated client. By the
// time it is seen the session is cleared and navigation to Location has
// already been issued; callers only use it for transient messaging.
type AuthExpiredError struct {
	Location string
	Method   string
	URL      string
}

func (e *AuthExpiredError) Error() string {
	return "session expired, please log in again"
}

// StatusCode is always 401.
func (e *AuthExpiredError) StatusCode() int { return http.StatusUnauthorized }

// ServerError is any other non-2xx response, passed through unchanged.
type ServerError struct {
	Status  int
	Message string
	Body    []byte
	Method  string
	URL     string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Status, http.StatusText(e.Status))
}

// StatusCode returns the backend's status.
func (e *ServerError) StatusCode() int { return e.Status }
